package handlers

import (
	"context"

	"github.com/JEONG99/movieql-server/application/ports"
	"github.com/JEONG99/movieql-server/application/queries"
	"github.com/JEONG99/movieql-server/domain/core/entities"
)

// MovieQueryHandler forwards movie queries to the upstream catalog. Errors
// pass through untouched so the caller still sees the catalog's error codes.
type MovieQueryHandler struct {
	catalog ports.MovieCatalog
}

// NewMovieQueryHandler creates a new movie query handler
func NewMovieQueryHandler(catalog ports.MovieCatalog) *MovieQueryHandler {
	return &MovieQueryHandler{catalog: catalog}
}

// HandleList executes ListMoviesQuery
func (h *MovieQueryHandler) HandleList(ctx context.Context, _ queries.ListMoviesQuery) ([]*entities.Movie, error) {
	return h.catalog.ListMovies(ctx)
}

// HandleGet executes GetMovieQuery
func (h *MovieQueryHandler) HandleGet(ctx context.Context, query queries.GetMovieQuery) (*entities.Movie, error) {
	return h.catalog.GetMovie(ctx, query.ID)
}
