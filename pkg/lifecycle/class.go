package lifecycle

import (
	"sync"

	"github.com/glorpus-work/suitehooks/internal/logger"
	"github.com/glorpus-work/suitehooks/pkg/errors"
)

// Class is a test-case class: a named hook store with an optional parent.
type Class struct {
	name     string
	parent   *Class
	registry *Registry

	hooks map[Slot][]hookEntry
	mutex sync.RWMutex
}

func newClass(r *Registry, name string, parent *Class) *Class {
	hooks := make(map[Slot][]hookEntry, 4)
	for _, slot := range Slots() {
		hooks[slot] = []hookEntry{}
	}
	return &Class{
		name:     name,
		parent:   parent,
		registry: r,
		hooks:    hooks,
	}
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Parent returns the parent class, or nil for a root class.
func (c *Class) Parent() *Class {
	return c.parent
}

// Ancestry returns the chain from the root class down to c.
func (c *Class) Ancestry() []*Class {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Register appends hook to the class's own (phase, period) sequence.
// An empty period means Each.
func (c *Class) Register(phase Phase, period Period, hook Hook, opts ...HookOption) error {
	slot, err := slotFor(phase, period)
	if err != nil {
		return err
	}
	if hook == nil {
		return errors.Wrapf(errors.ErrHookNil, "%s hook for %s", slot, c.name)
	}

	entry := hookEntry{hook: hook}
	for _, opt := range opts {
		opt(&entry)
	}

	c.mutex.Lock()
	c.hooks[slot] = append(c.hooks[slot], entry)
	index := len(c.hooks[slot]) - 1
	c.mutex.Unlock()

	logger.Debug("Registered hook", logger.Fields{
		"class": c.name,
		"slot":  slot.String(),
		"index": index,
		"label": entry.label,
	})
	return nil
}

// Before registers a before hook for period.
func (c *Class) Before(period Period, hook Hook, opts ...HookOption) error {
	return c.Register(Before, period, hook, opts...)
}

// After registers an after hook for period.
func (c *Class) After(period Period, hook Hook, opts ...HookOption) error {
	return c.Register(After, period, hook, opts...)
}

// BeforeEach registers a hook run before every test.
func (c *Class) BeforeEach(hook Hook, opts ...HookOption) error {
	return c.Register(Before, Each, hook, opts...)
}

// BeforeAll registers a hook run once before the suite.
func (c *Class) BeforeAll(hook Hook, opts ...HookOption) error {
	return c.Register(Before, All, hook, opts...)
}

// AfterEach registers a hook run after every test.
func (c *Class) AfterEach(hook Hook, opts ...HookOption) error {
	return c.Register(After, Each, hook, opts...)
}

// AfterAll registers a hook run once after the suite.
func (c *Class) AfterAll(hook Hook, opts ...HookOption) error {
	return c.Register(After, All, hook, opts...)
}

// Gather returns the (phase, period) hooks of every class from the root
// ancestor down to c. Each level keeps its registration order. After hooks
// are gathered in the same direction as before hooks.
func (c *Class) Gather(phase Phase, period Period) ([]Callback, error) {
	slot, err := slotFor(phase, period)
	if err != nil {
		return nil, err
	}

	var callbacks []Callback
	for _, class := range c.Ancestry() {
		callbacks = append(callbacks, class.own(slot)...)
	}
	return callbacks, nil
}

// own returns a snapshot of the class's own hooks for slot.
func (c *Class) own(slot Slot) []Callback {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entries := c.hooks[slot]
	callbacks := make([]Callback, 0, len(entries))
	for i, entry := range entries {
		callbacks = append(callbacks, Callback{
			Class: c.name,
			Slot:  slot,
			Index: i,
			Label: entry.label,
			Hook:  entry.hook,
		})
	}
	return callbacks
}

// NewInstance creates a test instance of the class with no fields set.
func (c *Class) NewInstance() *Instance {
	return &Instance{
		class:  c,
		fields: make(map[string]any),
	}
}

func slotFor(phase Phase, period Period) (Slot, error) {
	if _, err := ParsePhase(string(phase)); err != nil {
		return Slot{}, err
	}
	p, err := ParsePeriod(string(period))
	if err != nil {
		return Slot{}, err
	}
	return Slot{Phase: phase, Period: p}, nil
}
