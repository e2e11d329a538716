package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Common error types.
var (
	// Registry errors.
	ErrClassNameEmpty = fmt.Errorf("class name cannot be empty")
	ErrClassExists    = fmt.Errorf("class already defined")
	ErrClassNotFound  = fmt.Errorf("class not found")
	ErrForeignParent  = fmt.Errorf("parent class belongs to another registry")

	// Hook errors.
	ErrHookNil       = fmt.Errorf("hook cannot be nil")
	ErrInvalidPhase  = fmt.Errorf("invalid hook phase")
	ErrInvalidPeriod = fmt.Errorf("invalid hook period")
	ErrHookPanic     = fmt.Errorf("hook panicked")
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")

	// Field errors.
	ErrFieldNotFound = fmt.Errorf("field not set")
	ErrFieldType     = fmt.Errorf("field has unexpected type")

	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigVersion     = fmt.Errorf("unsupported manifest version")

	// Runner errors.
	ErrTestsFailed = fmt.Errorf("one or more tests failed")
	ErrNotRun      = fmt.Errorf("test not run")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// StackTracer is implemented by errors that carry a call stack.
type StackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// WithStack records the caller's stack on err unless err already carries one.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if StackOf(err) != nil {
		return err
	}
	return pkgerrors.WithStack(err)
}

// StackOf returns the first stack trace found in err's chain, or nil.
func StackOf(err error) pkgerrors.StackTrace {
	var st StackTracer
	if pkgerrors.As(err, &st) {
		return st.StackTrace()
	}
	return nil
}

// FromPanic turns a recovered panic value into an error wrapping
// ErrHookPanic. A panicked error stays reachable through errors.Is.
func FromPanic(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrHookPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrHookPanic, r)
}
