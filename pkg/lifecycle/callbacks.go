package lifecycle

import (
	"sort"
	"strings"

	"github.com/glorpus-work/suitehooks/internal/logger"
	"github.com/glorpus-work/suitehooks/pkg/errors"
)

// Setup runs every gathered before(each) hook against the instance.
func (i *Instance) Setup() error {
	return i.RunEachCallbacks(Before)
}

// Teardown runs every gathered after(each) hook against the instance.
func (i *Instance) Teardown() error {
	return i.RunEachCallbacks(After)
}

// RunEachCallbacks runs the gathered (phase, each) hooks in order. The first
// hook error is returned as is and stops the run.
func (i *Instance) RunEachCallbacks(phase Phase) error {
	callbacks, err := i.class.Gather(phase, Each)
	if err != nil {
		return err
	}

	logger.Debug("Running hooks", logger.Fields{
		"class": i.class.name,
		"slot":  Slot{Phase: phase, Period: Each}.String(),
		"count": len(callbacks),
	})

	for _, cb := range callbacks {
		if err := cb.Hook(i); err != nil {
			return err
		}
	}
	return nil
}

// RunAllCallbacks runs the gathered (phase, all) hooks once against the
// instance and returns the fields they created. Fields that already existed
// are not returned even when a hook assigned them. A failing or panicking
// hook is reported as a *SuiteHookError.
func (i *Instance) RunAllCallbacks(phase Phase) (values Values, err error) {
	callbacks, err := i.class.Gather(phase, All)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(i.fields))
	for name := range i.fields {
		existing[name] = struct{}{}
	}

	i.written = make(map[string]struct{})
	defer func() { i.written = nil }()

	var current Callback
	defer func() {
		if r := recover(); r != nil {
			values = nil
			err = i.suiteFailure(phase, current, errors.FromPanic(r))
		}
	}()

	logger.Debug("Running suite hooks", logger.Fields{
		"class": i.class.name,
		"slot":  Slot{Phase: phase, Period: All}.String(),
		"count": len(callbacks),
	})

	for _, cb := range callbacks {
		current = cb
		if hookErr := cb.Hook(i); hookErr != nil {
			return nil, i.suiteFailure(phase, cb, hookErr)
		}
	}

	values = make(Values)
	var overwritten []string
	for name := range i.written {
		if _, ok := existing[name]; ok {
			overwritten = append(overwritten, name)
			continue
		}
		values[name] = i.fields[name]
	}

	if len(overwritten) > 0 {
		sort.Strings(overwritten)
		logger.Warn("Suite hooks assigned fields that already existed; they are not published", logger.Fields{
			"class":  i.class.name,
			"phase":  string(phase),
			"fields": strings.Join(overwritten, ","),
		})
	}

	return values, nil
}

// SetValuesFromCallbacks assigns every value as a field of the instance.
func (i *Instance) SetValuesFromCallbacks(values Values) {
	for name, value := range values {
		i.Set(name, value)
	}
}

func (i *Instance) suiteFailure(phase Phase, cb Callback, cause error) error {
	hookErr := newSuiteHookError(i.class.name, phase, cb, cause)
	logger.Error("Suite hook failed", logger.Fields{
		"class":      hookErr.Class,
		"phase":      string(phase),
		"hook":       cb.Name(),
		"hook_class": cb.Class,
		"error":      cause.Error(),
	})
	return hookErr
}
