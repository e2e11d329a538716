// Package lifecycle implements a registry of before/after hooks for test-case
// classes. Hooks are registered per class for every test (Each) or once per
// suite (All) and are gathered along the parent chain, root first.
package lifecycle

import (
	"fmt"

	"github.com/glorpus-work/suitehooks/pkg/errors"
)

// Phase says whether a hook runs before or after the tests.
type Phase string

// Supported phases.
const (
	Before Phase = "before"
	After  Phase = "after"
)

// Period says whether a hook runs around every test or once per suite.
type Period string

// Supported periods. The zero value is treated as Each.
const (
	Each Period = "each"
	All  Period = "all"
)

// Phases lists the phases in declaration order.
var Phases = []Phase{Before, After}

// Periods lists the periods in declaration order.
var Periods = []Period{Each, All}

// ParsePhase validates a phase name.
func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case Before, After:
		return Phase(s), nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidPhase, "%q", s)
	}
}

// ParsePeriod validates a period name. An empty string yields Each.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return Each, nil
	case Each, All:
		return Period(s), nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidPeriod, "%q", s)
	}
}

// Hook is a unit of setup or teardown behaviour. It runs with the test
// instance as its context and may read and assign the instance's fields.
type Hook func(inst *Instance) error

// Values maps field names to values published by suite-level hooks.
type Values map[string]any

// Slot identifies one of the four hook sequences of a class.
type Slot struct {
	Phase  Phase
	Period Period
}

func (s Slot) String() string {
	return fmt.Sprintf("%s(%s)", s.Phase, s.Period)
}

// Slots lists all four slots in a stable order.
func Slots() []Slot {
	slots := make([]Slot, 0, len(Phases)*len(Periods))
	for _, phase := range Phases {
		for _, period := range Periods {
			slots = append(slots, Slot{Phase: phase, Period: period})
		}
	}
	return slots
}

// Callback is a gathered hook together with where it was registered.
type Callback struct {
	Class string
	Slot  Slot
	Index int
	Label string
	Hook  Hook
}

// Name returns the label, or Class#Index when no label was given.
func (c Callback) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("%s#%d", c.Class, c.Index)
}

// HookOption customises a registration.
type HookOption func(*hookEntry)

// WithLabel attaches a descriptive label to a hook.
func WithLabel(label string) HookOption {
	return func(e *hookEntry) {
		e.label = label
	}
}

type hookEntry struct {
	hook  Hook
	label string
}
