package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/JEONG99/movieql-server/application/commands"
	"github.com/JEONG99/movieql-server/application/commands/bus"
	"github.com/JEONG99/movieql-server/application/ports/mocks"
	"github.com/JEONG99/movieql-server/domain/core/entities"
	"github.com/JEONG99/movieql-server/infrastructure/persistence/memory"
	pkgerrors "github.com/JEONG99/movieql-server/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPostTweetHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := new(mocks.MockTweetRepository)
	metrics := new(mocks.MockTweetMetrics)
	created := entities.NewTweet("3", "hi", "1")
	repo.On("InsertTweet", ctx, "hi", "1").Return(created, nil)
	metrics.On("TweetPosted").Once()

	handler := NewPostTweetHandler(repo, metrics, zap.NewNop())

	// Act
	tweet, err := handler.Handle(ctx, commands.PostTweetCommand{Text: "hi", UserID: "1"})

	// Assert
	require.NoError(t, err)
	assert.Same(t, created, tweet)
	repo.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestPostTweetHandler_Handle_RepositoryError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := new(mocks.MockTweetRepository)
	metrics := new(mocks.MockTweetMetrics)
	repo.On("InsertTweet", ctx, "hi", "1").Return(nil, errors.New("full"))

	handler := NewPostTweetHandler(repo, metrics, zap.NewNop())

	// Act
	tweet, err := handler.Handle(ctx, commands.PostTweetCommand{Text: "hi", UserID: "1"})

	// Assert
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeInternal))
	assert.Equal(t, "failed to insert tweet", pkgerrors.GetAppError(err).Message)
	assert.ErrorContains(t, err, "full")
	assert.Nil(t, tweet)
	metrics.AssertNotCalled(t, "TweetPosted")
}

func TestDeleteTweetHandler_Handle(t *testing.T) {
	tests := []struct {
		name        string
		existed     bool
		wantCounter bool
	}{
		{"existing tweet", true, true},
		{"missing tweet", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			repo := new(mocks.MockTweetRepository)
			metrics := new(mocks.MockTweetMetrics)
			repo.On("DeleteTweet", ctx, "1").Return(tt.existed, nil)
			if tt.wantCounter {
				metrics.On("TweetDeleted").Once()
			}

			handler := NewDeleteTweetHandler(repo, metrics, zap.NewNop())

			// Act
			deleted, err := handler.Handle(ctx, commands.DeleteTweetCommand{ID: "1"})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.existed, deleted)
			metrics.AssertExpectations(t)
		})
	}
}

func TestCommandBus_PostThenDeleteAgainstStore(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.NewSeededStore(nil)
	metrics := new(mocks.MockTweetMetrics)
	metrics.On("TweetPosted")
	metrics.On("TweetDeleted")

	b := bus.NewCommandBus()
	require.NoError(t, RegisterCommandHandlers(b,
		NewPostTweetHandler(store, metrics, zap.NewNop()),
		NewDeleteTweetHandler(store, metrics, zap.NewNop()),
	))

	// Act
	posted, err := b.Send(ctx, commands.PostTweetCommand{Text: "hi", UserID: "1"})
	require.NoError(t, err)
	first, err := b.Send(ctx, commands.DeleteTweetCommand{ID: "1"})
	require.NoError(t, err)
	second, err := b.Send(ctx, commands.DeleteTweetCommand{ID: "1"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "3", posted.(*entities.Tweet).ID())
	assert.Equal(t, true, first)
	assert.Equal(t, false, second)
	assert.Equal(t, 2, store.TweetCount())
	metrics.AssertNumberOfCalls(t, "TweetDeleted", 1)
}
