package graphql

import (
	"context"

	"github.com/JEONG99/movieql-server/application/commands"
	commandbus "github.com/JEONG99/movieql-server/application/commands/bus"
	"github.com/JEONG99/movieql-server/application/queries"
	querybus "github.com/JEONG99/movieql-server/application/queries/bus"
	"github.com/JEONG99/movieql-server/domain/core/entities"
	graphql "github.com/graph-gophers/graphql-go"
)

// Resolver is the root resolver for both Query and Mutation
type Resolver struct {
	queries  *querybus.QueryBus
	commands *commandbus.CommandBus
}

// NewResolver creates the root resolver
func NewResolver(queries *querybus.QueryBus, commands *commandbus.CommandBus) *Resolver {
	return &Resolver{
		queries:  queries,
		commands: commands,
	}
}

// Query fields

func (r *Resolver) AllUsers(ctx context.Context) ([]*UserResolver, error) {
	result, err := r.queries.Ask(ctx, queries.ListUsersQuery{})
	if err != nil {
		return nil, resolverError(err)
	}
	users := result.([]*entities.User)

	out := make([]*UserResolver, len(users))
	for i, u := range users {
		out[i] = &UserResolver{user: u}
	}
	return out, nil
}

func (r *Resolver) AllTweets(ctx context.Context) ([]*TweetResolver, error) {
	result, err := r.queries.Ask(ctx, queries.ListTweetsQuery{})
	if err != nil {
		return nil, resolverError(err)
	}
	tweets := result.([]*entities.Tweet)

	out := make([]*TweetResolver, len(tweets))
	for i, t := range tweets {
		out[i] = &TweetResolver{tweet: t, queries: r.queries}
	}
	return out, nil
}

func (r *Resolver) Tweet(ctx context.Context, args struct{ ID graphql.ID }) (*TweetResolver, error) {
	result, err := r.queries.Ask(ctx, queries.GetTweetQuery{ID: string(args.ID)})
	if err != nil {
		return nil, resolverError(err)
	}
	tweet := result.(*entities.Tweet)
	if tweet == nil {
		return nil, nil
	}
	return &TweetResolver{tweet: tweet, queries: r.queries}, nil
}

func (r *Resolver) AllMovies(ctx context.Context) ([]*MovieResolver, error) {
	result, err := r.queries.Ask(ctx, queries.ListMoviesQuery{})
	if err != nil {
		return nil, resolverError(err)
	}
	movies := result.([]*entities.Movie)

	out := make([]*MovieResolver, 0, len(movies))
	for _, m := range movies {
		if m != nil {
			out = append(out, &MovieResolver{movie: m})
		}
	}
	return out, nil
}

func (r *Resolver) Movie(ctx context.Context, args struct{ ID string }) (*MovieResolver, error) {
	result, err := r.queries.Ask(ctx, queries.GetMovieQuery{ID: args.ID})
	if err != nil {
		return nil, resolverError(err)
	}
	movie := result.(*entities.Movie)
	if movie == nil {
		return nil, nil
	}
	return &MovieResolver{movie: movie}, nil
}

// Mutation fields

type postTweetArgs struct {
	Text   string
	UserID graphql.ID
}

func (r *Resolver) PostTweet(ctx context.Context, args postTweetArgs) (*TweetResolver, error) {
	result, err := r.commands.Send(ctx, commands.PostTweetCommand{
		Text:   args.Text,
		UserID: string(args.UserID),
	})
	if err != nil {
		return nil, resolverError(err)
	}
	return &TweetResolver{tweet: result.(*entities.Tweet), queries: r.queries}, nil
}

func (r *Resolver) DeleteTweet(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	result, err := r.commands.Send(ctx, commands.DeleteTweetCommand{ID: string(args.ID)})
	if err != nil {
		return false, resolverError(err)
	}
	return result.(bool), nil
}
