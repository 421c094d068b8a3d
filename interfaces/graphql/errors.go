package graphql

import (
	pkgerrors "github.com/JEONG99/movieql-server/pkg/errors"
)

// fieldError is what resolvers hand back to graphql-go. Its message is the
// AppError message without the cause chain, and its extensions carry the
// error type and code.
type fieldError struct {
	app *pkgerrors.AppError
}

func (e *fieldError) Error() string { return e.app.Message }

func (e *fieldError) Extensions() map[string]interface{} { return e.app.Extensions() }

func (e *fieldError) Unwrap() error { return e.app }

// resolverError finds the AppError in err's chain; anything else is reported
// as an internal error.
func resolverError(err error) error {
	app := pkgerrors.GetAppError(err)
	if app == nil {
		app = pkgerrors.NewInternalError("internal error").WithCause(err)
	}
	return &fieldError{app: app}
}
