package mocks

import (
	"context"

	"github.com/JEONG99/movieql-server/domain/core/entities"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindUser(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// MockTweetRepository is a mock implementation of ports.TweetRepository
type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) ListTweets(ctx context.Context) ([]*entities.Tweet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tweet), args.Error(1)
}

func (m *MockTweetRepository) GetTweet(ctx context.Context, id string) (*entities.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tweet), args.Error(1)
}

func (m *MockTweetRepository) InsertTweet(ctx context.Context, text, userID string) (*entities.Tweet, error) {
	args := m.Called(ctx, text, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tweet), args.Error(1)
}

func (m *MockTweetRepository) DeleteTweet(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockMovieCatalog is a mock implementation of ports.MovieCatalog
type MockMovieCatalog struct {
	mock.Mock
}

func (m *MockMovieCatalog) ListMovies(ctx context.Context) ([]*entities.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Movie), args.Error(1)
}

func (m *MockMovieCatalog) GetMovie(ctx context.Context, id string) (*entities.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Movie), args.Error(1)
}

// MockTweetMetrics is a mock implementation of the tweet mutation counters
type MockTweetMetrics struct {
	mock.Mock
}

func (m *MockTweetMetrics) TweetPosted()  { m.Called() }
func (m *MockTweetMetrics) TweetDeleted() { m.Called() }
