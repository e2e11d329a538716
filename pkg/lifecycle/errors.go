package lifecycle

import (
	"fmt"
	"io"
	"strings"

	"github.com/glorpus-work/suitehooks/pkg/errors"
	pkgerrors "github.com/pkg/errors"
)

// SuiteHookError reports a failed suite-level (all) hook.
type SuiteHookError struct {
	// Phase of the failed run.
	Phase Phase
	// Class whose instance ran the hooks.
	Class string
	// HookClass is the class that registered the failing hook.
	HookClass string
	// Hook names the failing hook (label or Class#Index).
	Hook string
	// Cause is the error returned by the hook, or the recovered panic.
	Cause error

	stack pkgerrors.StackTrace
}

func newSuiteHookError(class string, phase Phase, cb Callback, cause error) *SuiteHookError {
	return &SuiteHookError{
		Phase:     phase,
		Class:     class,
		HookClass: cb.Class,
		Hook:      cb.Name(),
		Cause:     cause,
		stack:     errors.StackOf(errors.WithStack(cause)),
	}
}

func (e *SuiteHookError) Error() string {
	return fmt.Sprintf("error running the %s(all) callback for %s: %v", e.Phase, e.Class, e.Cause)
}

func (e *SuiteHookError) Unwrap() error {
	return e.Cause
}

// StackTrace returns the stack of the failure, or where it was caught when
// the cause carried none.
func (e *SuiteHookError) StackTrace() pkgerrors.StackTrace {
	return e.stack
}

// Diagnostic renders the full report: header, cause type and message, stack.
func (e *SuiteHookError) Diagnostic() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error running the %s(all) callback for %s", e.Phase, e.Class)
	if e.HookClass != "" && e.HookClass != e.Class {
		fmt.Fprintf(&b, " (hook %s from %s)", e.Hook, e.HookClass)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%T: %v\n", e.Cause, e.Cause)
	if e.stack != nil {
		fmt.Fprintf(&b, "%+v\n", e.stack)
	}
	return b.String()
}

// Format prints the single-line message for %s and %v, and the diagnostic for %+v.
func (e *SuiteHookError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.Diagnostic())
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}
