// Package errors defines the sentinel errors shared across the engine and
// their mapping to HTTP status codes at the transport boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidQuery     = errors.New("invalid query")
	ErrUnknownAlgorithm = errors.New("unknown scoring algorithm")
	ErrCorpusUnreadable = errors.New("corpus unreadable")
	ErrTimeout          = errors.New("operation timed out")
	ErrInternal         = errors.New("internal error")
)

// AppError attaches a human-readable message to a sentinel while keeping the
// sentinel reachable through errors.Is.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Newf wraps a sentinel with a formatted message.
func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// HTTPStatusCode maps an error to the HTTP status the transport should
// report. Validation errors are request-scoped 400s; everything unrecognised
// is a 500.
func HTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidQuery), errors.Is(err, ErrUnknownAlgorithm):
		return http.StatusBadRequest
	case errors.Is(err, ErrTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
