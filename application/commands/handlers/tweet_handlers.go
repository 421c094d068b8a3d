package handlers

import (
	"context"
	"fmt"

	"github.com/JEONG99/movieql-server/application/commands"
	"github.com/JEONG99/movieql-server/application/commands/bus"
	"github.com/JEONG99/movieql-server/application/ports"
	"github.com/JEONG99/movieql-server/domain/core/entities"
	pkgerrors "github.com/JEONG99/movieql-server/pkg/errors"
	"go.uber.org/zap"
)

// TweetMetrics counts tweet mutations
type TweetMetrics interface {
	TweetPosted()
	TweetDeleted()
}

// PostTweetHandler handles tweet creation commands
type PostTweetHandler struct {
	tweets  ports.TweetRepository
	metrics TweetMetrics
	logger  *zap.Logger
}

// NewPostTweetHandler creates a new post tweet handler
func NewPostTweetHandler(tweets ports.TweetRepository, metrics TweetMetrics, logger *zap.Logger) *PostTweetHandler {
	return &PostTweetHandler{
		tweets:  tweets,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle executes the post tweet command
func (h *PostTweetHandler) Handle(ctx context.Context, cmd commands.PostTweetCommand) (*entities.Tweet, error) {
	tweet, err := h.tweets.InsertTweet(ctx, cmd.Text, cmd.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to insert tweet")
	}

	h.metrics.TweetPosted()
	h.logger.Debug("Tweet posted",
		zap.String("tweetID", tweet.ID()),
		zap.String("userID", tweet.UserID()),
	)
	return tweet, nil
}

// DeleteTweetHandler handles tweet deletion commands
type DeleteTweetHandler struct {
	tweets  ports.TweetRepository
	metrics TweetMetrics
	logger  *zap.Logger
}

// NewDeleteTweetHandler creates a new delete tweet handler
func NewDeleteTweetHandler(tweets ports.TweetRepository, metrics TweetMetrics, logger *zap.Logger) *DeleteTweetHandler {
	return &DeleteTweetHandler{
		tweets:  tweets,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle executes the delete tweet command
func (h *DeleteTweetHandler) Handle(ctx context.Context, cmd commands.DeleteTweetCommand) (bool, error) {
	deleted, err := h.tweets.DeleteTweet(ctx, cmd.ID)
	if err != nil {
		return false, pkgerrors.Wrapf(err, "failed to delete tweet %s", cmd.ID)
	}

	if deleted {
		h.metrics.TweetDeleted()
		h.logger.Debug("Tweet deleted", zap.String("tweetID", cmd.ID))
	}
	return deleted, nil
}

// RegisterCommandHandlers binds every command type to its handler on the bus
func RegisterCommandHandlers(b *bus.CommandBus, post *PostTweetHandler, del *DeleteTweetHandler) error {
	if err := b.Register(commands.PostTweetCommand{}, adapt(post.Handle)); err != nil {
		return err
	}
	return b.Register(commands.DeleteTweetCommand{}, adapt(del.Handle))
}

func adapt[C any, R any](fn func(context.Context, C) (R, error)) bus.CommandHandlerFunc {
	return func(ctx context.Context, cmd bus.Command) (interface{}, error) {
		c, ok := cmd.(C)
		if !ok {
			return nil, fmt.Errorf("unexpected command type %T", cmd)
		}
		return fn(ctx, c)
	}
}
