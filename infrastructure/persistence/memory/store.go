package memory

import (
	"context"
	"sync"

	"github.com/JEONG99/movieql-server/domain/core/entities"
)

// Store keeps users and tweets in ordered in-memory slices. Contents are lost
// on restart.
type Store struct {
	mu     sync.RWMutex
	users  []*entities.User
	tweets []*entities.Tweet
	ids    IDGenerator
}

// SeedUsers returns the users every fresh store starts with
func SeedUsers() []*entities.User {
	return []*entities.User{
		entities.NewUser("1", "BH", "Jeong"),
		entities.NewUser("2", "YW", "Oh"),
	}
}

// SeedTweets returns the tweets every fresh store starts with
func SeedTweets() []*entities.Tweet {
	return []*entities.Tweet{
		entities.NewTweet("1", "first tweet!", "2"),
		entities.NewTweet("2", "second tweet!", "1"),
	}
}

// NewStore creates a store holding the given users and tweets
func NewStore(users []*entities.User, tweets []*entities.Tweet, ids IDGenerator) *Store {
	if ids == nil {
		ids = NewSequenceGenerator(int64(len(tweets)) + 1)
	}
	return &Store{
		users:  append([]*entities.User(nil), users...),
		tweets: append([]*entities.Tweet(nil), tweets...),
		ids:    ids,
	}
}

// NewSeededStore creates a store holding the seed data
func NewSeededStore(ids IDGenerator) *Store {
	return NewStore(SeedUsers(), SeedTweets(), ids)
}

// ListUsers returns a snapshot of all users
func (s *Store) ListUsers(ctx context.Context) ([]*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]*entities.User(nil), s.users...), nil
}

// FindUser returns the first user with the given id
func (s *Store) FindUser(ctx context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, nil
}

// ListTweets returns a snapshot of all tweets
func (s *Store) ListTweets(ctx context.Context) ([]*entities.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]*entities.Tweet(nil), s.tweets...), nil
}

// GetTweet returns the first tweet with the given id
func (s *Store) GetTweet(ctx context.Context, id string) (*entities.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tweets[i], nil
	}
	return nil, nil
}

// InsertTweet appends a new tweet. The user id is not checked.
func (s *Store) InsertTweet(ctx context.Context, text, userID string) (*entities.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tweet := entities.NewTweet(s.ids.NextID(), text, userID)
	s.tweets = append(s.tweets, tweet)
	return tweet, nil
}

// DeleteTweet removes the first tweet with the given id
func (s *Store) DeleteTweet(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tweets = append(s.tweets[:i:i], s.tweets[i+1:]...)
	return true, nil
}

// TweetCount returns the number of stored tweets
func (s *Store) TweetCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tweets)
}

// indexOf must be called with the lock held
func (s *Store) indexOf(id string) int {
	for i, t := range s.tweets {
		if t.ID() == id {
			return i
		}
	}
	return -1
}
