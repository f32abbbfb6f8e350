package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Fatal error kinds. Only these abort a run; everything else degrades to
// a per-file or per-chunk skip.
var (
	ErrDocsDirNotFound   = errors.New("documents directory not found")
	ErrMissingSection    = errors.New("missing required configuration section")
	ErrModelUnconfigured = errors.New("model type not configured")
	ErrMissingCredential = errors.New("missing model credential")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsFatal reports whether err belongs to the fatal taxonomy that must
// abort the run instead of being contained at file or chunk level.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDocsDirNotFound) ||
		errors.Is(err, ErrMissingSection) ||
		errors.Is(err, ErrModelUnconfigured) ||
		errors.Is(err, ErrMissingCredential)
}
