package handlers

import (
	"context"

	"github.com/JEONG99/movieql-server/application/ports"
	"github.com/JEONG99/movieql-server/application/queries"
	"github.com/JEONG99/movieql-server/domain/core/entities"
	pkgerrors "github.com/JEONG99/movieql-server/pkg/errors"
)

// UserQueryHandler answers user queries from the user repository
type UserQueryHandler struct {
	users ports.UserRepository
}

// NewUserQueryHandler creates a new user query handler
func NewUserQueryHandler(users ports.UserRepository) *UserQueryHandler {
	return &UserQueryHandler{users: users}
}

// HandleList executes ListUsersQuery
func (h *UserQueryHandler) HandleList(ctx context.Context, _ queries.ListUsersQuery) ([]*entities.User, error) {
	users, err := h.users.ListUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list users")
	}
	return users, nil
}

// HandleGet executes GetUserQuery
func (h *UserQueryHandler) HandleGet(ctx context.Context, query queries.GetUserQuery) (*entities.User, error) {
	user, err := h.users.FindUser(ctx, query.ID)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to find user %s", query.ID)
	}
	return user, nil
}
