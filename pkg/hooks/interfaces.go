//go:generate mockgen -destination=./mocks/hooks.go . Registrar

package hooks

import "github.com/glorpus-work/suitehooks/pkg/lifecycle"

// Registrar is the part of a lifecycle class the loaders need.
type Registrar interface {
	// Name returns the class name
	Name() string

	// Register appends a hook to one of the class's sequences
	Register(phase lifecycle.Phase, period lifecycle.Period, hook lifecycle.Hook, opts ...lifecycle.HookOption) error
}
