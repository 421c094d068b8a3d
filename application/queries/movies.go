package queries

// ListMoviesQuery fetches the upstream movie listing
type ListMoviesQuery struct{}

// GetMovieQuery fetches one movie's details by its upstream id
type GetMovieQuery struct {
	ID string
}
