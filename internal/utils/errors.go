// internal/utils/errors.go
package utils

import (
	"errors"
	"fmt"
)

// Error kinds. Service errors wrap exactly one of these so handlers can map
// them to a status code with errors.Is. Anything else is an internal error.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
)

// AppError is a client-facing failure. Key is an i18n message key, rendered
// with Args in the caller's language.
type AppError struct {
	Kind error
	Key  string
	Args []interface{}
}

func (e *AppError) Error() string {
	if len(e.Args) > 0 {
		return fmt.Sprintf("%s: %s %v", e.Kind, e.Key, e.Args)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Key)
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func newAppError(kind error, key string, args []interface{}) error {
	return &AppError{Kind: kind, Key: key, Args: args}
}

func InvalidArgument(key string, args ...interface{}) error {
	return newAppError(ErrInvalidArgument, key, args)
}

func NotFound(key string, args ...interface{}) error {
	return newAppError(ErrNotFound, key, args)
}

func Unauthorized(key string, args ...interface{}) error {
	return newAppError(ErrUnauthorized, key, args)
}

func Forbidden(key string, args ...interface{}) error {
	return newAppError(ErrForbidden, key, args)
}

func Conflict(key string, args ...interface{}) error {
	return newAppError(ErrConflict, key, args)
}

// AsAppError returns the AppError in err's chain, if any.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
