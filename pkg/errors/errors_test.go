package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Creation(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode string
		wantMsg  string
	}{
		{
			name:     "upstream unavailable",
			err:      NewUpstreamUnavailableError("movies", cause),
			wantType: ErrorTypeUnavailable,
			wantCode: CodeUpstreamUnavailable,
			wantMsg:  "service 'movies' is unavailable",
		},
		{
			name:     "upstream format",
			err:      NewUpstreamFormatError("movies", "missing data.movies"),
			wantType: ErrorTypeExternal,
			wantCode: CodeUpstreamFormat,
			wantMsg:  "external service 'movies' returned an unexpected payload: missing data.movies",
		},
		{
			name:     "validation",
			err:      NewValidationError("invalid configuration"),
			wantType: ErrorTypeValidation,
			wantMsg:  "invalid configuration",
		},
		{
			name:     "timeout",
			err:      NewTimeoutError("list movies"),
			wantType: ErrorTypeTimeout,
			wantMsg:  "operation 'list movies' timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
		})
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := NewUpstreamUnavailableError("movies", errors.New("timeout"))
	assert.Equal(t, "UNAVAILABLE: service 'movies' is unavailable (caused by: timeout)", err.Error())

	plain := NewValidationError("bad input")
	assert.Equal(t, "VALIDATION: bad input", plain.Error())
}

func TestAppError_Extensions(t *testing.T) {
	err := NewUpstreamFormatError("movies", "not json").
		WithDetails(map[string]interface{}{
			"endpoint": "list_movies",
			"code":     "ignored",
		})

	ext := err.Extensions()

	assert.Equal(t, "EXTERNAL", ext["type"])
	assert.Equal(t, CodeUpstreamFormat, ext["code"], "details must not override the code")
	assert.Equal(t, "list_movies", ext["endpoint"])
}

func TestAppError_ExtensionsWithoutCode(t *testing.T) {
	ext := NewInternalError("boom").Extensions()

	_, hasCode := ext["code"]
	assert.False(t, hasCode)
	assert.Equal(t, "INTERNAL", ext["type"])
}

func TestGetAppError_ThroughWrapping(t *testing.T) {
	appErr := NewUpstreamUnavailableError("movies", errors.New("refused"))
	wrapped := fmt.Errorf("query handler failed: %w", appErr)

	got := GetAppError(wrapped)
	require.NotNil(t, got)
	assert.Same(t, appErr, got)
	assert.True(t, IsUnavailable(wrapped))
	assert.False(t, IsExternal(wrapped))
	assert.False(t, IsTimeout(wrapped))

	assert.Nil(t, GetAppError(errors.New("plain")))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))

	wrapped := Wrap(errors.New("disk full"), "saving tweet")
	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeInternal, appErr.Type)
	assert.Equal(t, "saving tweet", appErr.Message)
	assert.EqualError(t, errors.Unwrap(appErr), "disk full")
}

func TestWrapf_KeepsTypeAndCode(t *testing.T) {
	existing := NewTimeoutError("movies list_movies").WithCode(CodeUpstreamUnavailable)

	rewrapped := Wrapf(existing, "lookup %s", "10")

	got := GetAppError(rewrapped)
	require.NotNil(t, got)
	assert.True(t, IsTimeout(rewrapped))
	assert.Equal(t, CodeUpstreamUnavailable, got.Code)
	assert.Equal(t, "lookup 10: operation 'movies list_movies' timed out", got.Message)
	assert.Equal(t, "operation 'movies list_movies' timed out", existing.Message, "the original is left untouched")
}
