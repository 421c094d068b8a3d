package ports

import (
	"context"

	"github.com/JEONG99/movieql-server/domain/core/entities"
)

// UserRepository defines read access to users
// Users are seeded at startup and never written through the API
type UserRepository interface {
	// ListUsers returns every user in insertion order
	ListUsers(ctx context.Context) ([]*entities.User, error)

	// FindUser returns the first user with the given id, or nil
	FindUser(ctx context.Context, id string) (*entities.User, error)
}

// TweetRepository defines the interface for tweet persistence
type TweetRepository interface {
	// ListTweets returns every tweet in insertion order
	ListTweets(ctx context.Context) ([]*entities.Tweet, error)

	// GetTweet returns the first tweet with the given id, or nil
	GetTweet(ctx context.Context, id string) (*entities.Tweet, error)

	// InsertTweet creates a tweet with a freshly generated id and appends it
	InsertTweet(ctx context.Context, text, userID string) (*entities.Tweet, error)

	// DeleteTweet removes the first tweet with the given id and reports whether one existed
	DeleteTweet(ctx context.Context, id string) (bool, error)
}

// MovieCatalog is the read-only movie listing backed by the upstream API
type MovieCatalog interface {
	ListMovies(ctx context.Context) ([]*entities.Movie, error)

	// GetMovie returns nil without error when the upstream has no such movie
	GetMovie(ctx context.Context, id string) (*entities.Movie, error)
}
