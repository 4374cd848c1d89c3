package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/mweber/cadence/internal/logger"
)

// Error kinds surfaced by the analytics engine and the storage layer.
// Callers match them with errors.Is through the helpers below.
var (
	// ErrNotFound indicates a habit or user lookup failure, including
	// habits that exist but belong to a different owner.
	ErrNotFound = stderrors.New("not found")

	// ErrInvalidState indicates inputs that violate an engine
	// precondition, e.g. an as-of date before the habit's creation date
	// or a frequency outside the enumerated set.
	ErrInvalidState = stderrors.New("invalid state")

	// ErrValidation indicates malformed input rejected at the write
	// boundary, e.g. a rating outside [1,5] or a duplicate completion
	// date.
	ErrValidation = stderrors.New("validation failed")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// InvalidStatef wraps ErrInvalidState with a formatted message.
func InvalidStatef(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidState)
}

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return stderrors.Is(err, ErrNotFound) }

// IsInvalidState reports whether err is (or wraps) ErrInvalidState.
func IsInvalidState(err error) bool { return stderrors.Is(err, ErrInvalidState) }

// IsValidation reports whether err is (or wraps) ErrValidation.
func IsValidation(err error) bool { return stderrors.Is(err, ErrValidation) }

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
