package errx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal engine error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// StoreErrorMessage describes conversation repository failures.
	StoreErrorMessage = "conversation store operation failed"
	// InvalidInputMessage describes caller input the engine refuses to process.
	InvalidInputMessage = "invalid input"
)

// AppError wraps an underlying error with an HTTP-style status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Invalid reports a caller error such as an empty conversation id.
func Invalid(format string, args ...any) *AppError {
	return New(fmt.Errorf(format, args...), http.StatusBadRequest, InvalidInputMessage)
}

// WrapRedis maps Redis errors to AppError with appropriate status codes.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(err, http.StatusNotFound, RedisNotFoundMessage)
	}
	return New(err, http.StatusBadGateway, RedisErrorMessage)
}

// WrapStore wraps a repository failure for the named operation.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var app *AppError
	if errors.As(err, &app) {
		return New(fmt.Errorf("%s: %w", op, err), app.Status, StoreErrorMessage)
	}
	return New(fmt.Errorf("%s: %w", op, err), http.StatusInternalServerError, StoreErrorMessage)
}

// Recover converts a value returned by recover() into an AppError.
// It returns nil when r is nil.
func Recover(r any) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(error); ok {
		return New(fmt.Errorf("panic: %w", err), http.StatusInternalServerError, SystemErrorMessage)
	}
	return New(fmt.Errorf("panic: %v", r), http.StatusInternalServerError, SystemErrorMessage)
}

// StatusOf returns the status carried by err, or 500 when err is not an AppError.
func StatusOf(err error) int {
	var app *AppError
	if errors.As(err, &app) {
		return app.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether the target matches the underlying error.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
