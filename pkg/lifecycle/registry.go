package lifecycle

import (
	"sort"
	"sync"

	"github.com/glorpus-work/suitehooks/internal/logger"
	"github.com/glorpus-work/suitehooks/pkg/errors"
)

// Registry owns a family of test-case classes, indexed by name.
type Registry struct {
	classes map[string]*Class
	mutex   sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string]*Class),
	}
}

// Define declares a class. A nil parent declares a root class. The new class
// starts with four empty hook sequences; parent hooks are reached through
// Gather, never copied.
func (r *Registry) Define(name string, parent *Class) (*Class, error) {
	if name == "" {
		return nil, errors.ErrClassNameEmpty
	}
	if parent != nil && parent.registry != r {
		return nil, errors.Wrapf(errors.ErrForeignParent, "parent %s of %s", parent.name, name)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.classes[name]; exists {
		return nil, errors.Wrapf(errors.ErrClassExists, "%s", name)
	}

	class := newClass(r, name, parent)
	r.classes[name] = class

	fields := logger.Fields{"class": name}
	if parent != nil {
		fields["parent"] = parent.name
	}
	logger.Debug("Defined test class", fields)

	return class, nil
}

// Class looks up a class by name.
func (r *Registry) Class(name string) (*Class, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	class, ok := r.classes[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrClassNotFound, "%s", name)
	}
	return class, nil
}

// Names returns all class names, sorted.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
