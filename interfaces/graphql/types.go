package graphql

import (
	"context"

	"github.com/JEONG99/movieql-server/application/queries"
	querybus "github.com/JEONG99/movieql-server/application/queries/bus"
	"github.com/JEONG99/movieql-server/domain/core/entities"
	graphql "github.com/graph-gophers/graphql-go"
)

// UserResolver resolves the User type
type UserResolver struct {
	user *entities.User
}

func (r *UserResolver) ID() graphql.ID    { return graphql.ID(r.user.ID()) }
func (r *UserResolver) FirstName() string { return r.user.FirstName() }
func (r *UserResolver) LastName() string  { return r.user.LastName() }
func (r *UserResolver) FullName() string  { return r.user.FullName() }

// TweetResolver resolves the Tweet type
type TweetResolver struct {
	tweet   *entities.Tweet
	queries *querybus.QueryBus
}

func (r *TweetResolver) ID() graphql.ID { return graphql.ID(r.tweet.ID()) }
func (r *TweetResolver) Text() string   { return r.tweet.Text() }

// Author looks the user up on every read; a dangling userId yields null.
func (r *TweetResolver) Author(ctx context.Context) (*UserResolver, error) {
	result, err := r.queries.Ask(ctx, queries.GetUserQuery{ID: r.tweet.UserID()})
	if err != nil {
		return nil, resolverError(err)
	}
	user := result.(*entities.User)
	if user == nil {
		return nil, nil
	}
	return &UserResolver{user: user}, nil
}

// MovieResolver resolves the Movie type field for field from the upstream record
type MovieResolver struct {
	movie *entities.Movie
}

func (r *MovieResolver) ID() int32                       { return r.movie.ID }
func (r *MovieResolver) URL() string                     { return r.movie.URL }
func (r *MovieResolver) ImdbCode() string                { return r.movie.ImdbCode }
func (r *MovieResolver) Title() string                   { return r.movie.Title }
func (r *MovieResolver) TitleEnglish() string            { return r.movie.TitleEnglish }
func (r *MovieResolver) TitleLong() string               { return r.movie.TitleLong }
func (r *MovieResolver) Slug() string                    { return r.movie.Slug }
func (r *MovieResolver) Year() int32                     { return r.movie.Year }
func (r *MovieResolver) Rating() float64                 { return r.movie.Rating }
func (r *MovieResolver) Runtime() float64                { return r.movie.Runtime }
func (r *MovieResolver) Summary() *string                { return r.movie.Summary }
func (r *MovieResolver) DescriptionFull() string         { return r.movie.DescriptionFull }
func (r *MovieResolver) Synopsis() *string               { return r.movie.Synopsis }
func (r *MovieResolver) YtTrailerCode() string           { return r.movie.YtTrailerCode }
func (r *MovieResolver) Language() string                { return r.movie.Language }
func (r *MovieResolver) BackgroundImage() string         { return r.movie.BackgroundImage }
func (r *MovieResolver) BackgroundImageOriginal() string { return r.movie.BackgroundImageOriginal }
func (r *MovieResolver) SmallCoverImage() string         { return r.movie.SmallCoverImage }
func (r *MovieResolver) MediumCoverImage() string        { return r.movie.MediumCoverImage }
func (r *MovieResolver) LargeCoverImage() string         { return r.movie.LargeCoverImage }

// Genres is never null; a missing upstream list resolves to an empty one.
func (r *MovieResolver) Genres() []*string {
	if r.movie.Genres == nil {
		return []*string{}
	}
	return r.movie.Genres
}
