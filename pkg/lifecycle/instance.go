package lifecycle

import (
	"sort"

	"github.com/glorpus-work/suitehooks/pkg/errors"
)

// Instance is a single test-case instance. Hooks read and assign its fields.
// An instance is used by one goroutine at a time.
type Instance struct {
	class  *Class
	fields map[string]any

	// written records assigned names while suite hooks run; nil otherwise.
	written map[string]struct{}
}

// Class returns the class the instance was created from.
func (i *Instance) Class() *Class {
	return i.class
}

// Get returns the value of a field.
func (i *Instance) Get(name string) (any, bool) {
	v, ok := i.fields[name]
	return v, ok
}

// Has reports whether a field is set.
func (i *Instance) Has(name string) bool {
	_, ok := i.fields[name]
	return ok
}

// Set assigns a field, creating it if needed.
func (i *Instance) Set(name string, value any) {
	i.fields[name] = value
	if i.written != nil {
		i.written[name] = struct{}{}
	}
}

// Fields returns a copy of all fields.
func (i *Instance) Fields() Values {
	values := make(Values, len(i.fields))
	for k, v := range i.fields {
		values[k] = v
	}
	return values
}

// Names returns the names of all set fields, sorted.
func (i *Instance) Names() []string {
	names := make([]string, 0, len(i.fields))
	for name := range i.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field returns a field converted to T.
func Field[T any](inst *Instance, name string) (T, error) {
	var zero T
	v, ok := inst.Get(name)
	if !ok {
		return zero, errors.Wrapf(errors.ErrFieldNotFound, "%s", name)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errors.Wrapf(errors.ErrFieldType, "%s is %T, want %T", name, v, zero)
	}
	return typed, nil
}
