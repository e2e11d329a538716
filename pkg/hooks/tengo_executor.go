package hooks

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/glorpus-work/suitehooks/internal/logger"
	"github.com/glorpus-work/suitehooks/pkg/errors"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
)

// TengoExecutor runs Tengo scripts as lifecycle hooks. Instance fields are
// visible to the script as globals; globals the script creates or changes are
// written back as fields.
type TengoExecutor struct {
	modules   []string
	maxAllocs int64
}

// ExecutorOption customises a TengoExecutor.
type ExecutorOption func(*TengoExecutor)

// WithModules replaces the stdlib modules scripts may import.
func WithModules(modules ...string) ExecutorOption {
	return func(e *TengoExecutor) {
		e.modules = modules
	}
}

// WithMaxAllocs limits the number of objects a script may allocate.
func WithMaxAllocs(n int64) ExecutorOption {
	return func(e *TengoExecutor) {
		e.maxAllocs = n
	}
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor(opts ...ExecutorOption) *TengoExecutor {
	e := &TengoExecutor{
		modules:   DefaultModules,
		maxAllocs: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Hook wraps a script as a lifecycle hook registered under slot.
func (e *TengoExecutor) Hook(name string, slot lifecycle.Slot, source []byte) lifecycle.Hook {
	return func(inst *lifecycle.Instance) error {
		return e.Execute(name, slot, source, inst)
	}
}

// Body wraps a script as a test body.
func (e *TengoExecutor) Body(name string, source []byte) lifecycle.Hook {
	return e.Hook(name, lifecycle.Slot{Phase: testPhase, Period: lifecycle.Each}, source)
}

// Execute runs a script against inst.
func (e *TengoExecutor) Execute(name string, slot lifecycle.Slot, source []byte, inst *lifecycle.Instance) error {
	script := tengo.NewScript(source)
	script.SetMaxAllocs(e.maxAllocs)

	modules := stdlib.GetModuleMap(e.modules...)
	modules.AddBuiltinModule(hookModule, map[string]tengo.Object{
		"name":   &tengo.String{Value: name},
		"class":  &tengo.String{Value: inst.Class().Name()},
		"phase":  &tengo.String{Value: string(slot.Phase)},
		"period": &tengo.String{Value: string(slot.Period)},
	})
	script.SetImports(modules)

	// err is predeclared so scripts can assign it from any block.
	_ = script.Add(errVar, "")

	// Separate copies so in-place mutation of maps and arrays is detected.
	passed := make(map[string]tengo.Object)
	for _, field := range inst.Names() {
		if field == errVar || !isIdentifier(field) {
			continue
		}
		value, _ := inst.Get(field)
		original, err := tengo.FromInterface(value)
		if err != nil {
			logger.Debug("Field not visible to script", logger.Fields{
				"hook":  name,
				"field": field,
				"type":  fmt.Sprintf("%T", value),
			})
			continue
		}
		scriptValue, _ := tengo.FromInterface(value)
		if err := script.Add(field, scriptValue); err != nil {
			return fmt.Errorf("failed to add field '%s' to script %s: %w", field, name, err)
		}
		passed[field] = original
	}

	logger.Debug("Executing hook script", logger.Fields{
		"hook":  name,
		"class": inst.Class().Name(),
		"slot":  slot.String(),
	})

	compiled, err := script.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", name, errors.ErrHookExecution, err)
	}

	// Check for any returned error
	switch v := compiled.Get(errVar).Object().(type) {
	case *tengo.Error:
		msg, _ := tengo.ToString(v.Value)
		return fmt.Errorf("%s: %w: %s", name, errors.ErrHookScript, msg)
	case *tengo.String:
		if v.Value != "" {
			return fmt.Errorf("%s: %w: %s", name, errors.ErrHookScript, v.Value)
		}
	}

	for _, variable := range compiled.GetAll() {
		field := variable.Name()
		if field == errVar {
			continue
		}
		obj := variable.Object()
		original, wasPassed := passed[field]
		if wasPassed {
			if original.Equals(obj) {
				continue
			}
		} else if !publishable(obj) {
			continue
		}
		inst.Set(field, variable.Value())
	}

	return nil
}

// publishable filters out imported modules, functions and undefined values.
func publishable(obj tengo.Object) bool {
	if obj == nil || obj == tengo.UndefinedValue || obj.CanCall() {
		return false
	}
	_, isModule := obj.(*tengo.ImmutableMap)
	return !isModule
}
