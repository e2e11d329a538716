package hooks

import (
	"github.com/glorpus-work/suitehooks/pkg/errors"
)

// ErrUnsupportedHookFile is returned when a hook file name does not name a slot.
func ErrUnsupportedHookFile(name string) error {
	return errors.Wrapf(errors.ErrHookLoad, "unsupported hook file name: %s", name)
}
