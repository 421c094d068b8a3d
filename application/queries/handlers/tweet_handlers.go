package handlers

import (
	"context"

	"github.com/JEONG99/movieql-server/application/ports"
	"github.com/JEONG99/movieql-server/application/queries"
	"github.com/JEONG99/movieql-server/domain/core/entities"
	pkgerrors "github.com/JEONG99/movieql-server/pkg/errors"
)

// TweetQueryHandler answers tweet queries from the tweet repository
type TweetQueryHandler struct {
	tweets ports.TweetRepository
}

// NewTweetQueryHandler creates a new tweet query handler
func NewTweetQueryHandler(tweets ports.TweetRepository) *TweetQueryHandler {
	return &TweetQueryHandler{tweets: tweets}
}

// HandleList executes ListTweetsQuery
func (h *TweetQueryHandler) HandleList(ctx context.Context, _ queries.ListTweetsQuery) ([]*entities.Tweet, error) {
	tweets, err := h.tweets.ListTweets(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list tweets")
	}
	return tweets, nil
}

// HandleGet executes GetTweetQuery
func (h *TweetQueryHandler) HandleGet(ctx context.Context, query queries.GetTweetQuery) (*entities.Tweet, error) {
	tweet, err := h.tweets.GetTweet(ctx, query.ID)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get tweet %s", query.ID)
	}
	return tweet, nil
}
