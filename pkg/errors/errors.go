package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation ErrorType = "VALIDATION"

	// Application errors
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeTimeout     ErrorType = "TIMEOUT"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"

	// Infrastructure errors
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// Error codes attached to upstream failures.
const (
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamCircuitOpen = "UPSTREAM_CIRCUIT_OPEN"
	CodeUpstreamStatus      = "UPSTREAM_STATUS"
	CodeUpstreamFormat      = "UPSTREAM_FORMAT_ERROR"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Extensions is picked up by graphql-go and rendered under "extensions" in the
// error entry of the response.
func (e *AppError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"type": string(e.Type),
	}
	if e.Code != "" {
		ext["code"] = e.Code
	}
	for k, v := range e.Details {
		if _, taken := ext[k]; !taken {
			ext[k] = v
		}
	}
	return ext
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(operation string) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation '%s' timed out", operation),
	}
}

// NewUnavailableError creates a service unavailable error
func NewUnavailableError(service string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnavailable,
		Message: fmt.Sprintf("service '%s' is unavailable", service),
	}
}

// NewExternalError creates an external service error
func NewExternalError(service string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: fmt.Sprintf("external service '%s' error", service),
		Cause:   err,
	}
}

// NewUpstreamUnavailableError reports that an upstream could not be reached or
// answered with a server error.
func NewUpstreamUnavailableError(service string, err error) *AppError {
	return NewUnavailableError(service).
		WithCode(CodeUpstreamUnavailable).
		WithCause(err)
}

// NewUpstreamFormatError reports an upstream body that is not the expected JSON shape.
func NewUpstreamFormatError(service, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: fmt.Sprintf("external service '%s' returned an unexpected payload: %s", service, reason),
		Code:    CodeUpstreamFormat,
	}
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return IsType(err, ErrorTypeTimeout)
}

// IsUnavailable checks if an error is a service unavailable error
func IsUnavailable(err error) bool {
	return IsType(err, ErrorTypeUnavailable)
}

// IsExternal checks if an error is an external service error
func IsExternal(err error) bool {
	return IsType(err, ErrorTypeExternal)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// An AppError keeps its type and code; the copy gets the prefixed message
	if appErr := GetAppError(err); appErr != nil {
		wrapped := *appErr
		wrapped.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return &wrapped
	}

	// Otherwise create a new internal error
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
