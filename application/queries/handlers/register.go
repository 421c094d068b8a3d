package handlers

import (
	"context"
	"fmt"

	"github.com/JEONG99/movieql-server/application/queries"
	"github.com/JEONG99/movieql-server/application/queries/bus"
)

// RegisterQueryHandlers binds every query type to its handler on the bus
func RegisterQueryHandlers(
	b *bus.QueryBus,
	users *UserQueryHandler,
	tweets *TweetQueryHandler,
	movies *MovieQueryHandler,
) error {
	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandlerFunc
	}{
		{queries.ListUsersQuery{}, adapt(users.HandleList)},
		{queries.GetUserQuery{}, adapt(users.HandleGet)},
		{queries.ListTweetsQuery{}, adapt(tweets.HandleList)},
		{queries.GetTweetQuery{}, adapt(tweets.HandleGet)},
		{queries.ListMoviesQuery{}, adapt(movies.HandleList)},
		{queries.GetMovieQuery{}, adapt(movies.HandleGet)},
	}

	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}

// adapt turns a typed handler method into a bus handler
func adapt[Q any, R any](fn func(context.Context, Q) (R, error)) bus.QueryHandlerFunc {
	return func(ctx context.Context, query bus.Query) (interface{}, error) {
		q, ok := query.(Q)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", query)
		}
		return fn(ctx, q)
	}
}
