package hooks

import (
	"strings"

	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
)

// HookFileExtension is the extension of hook script files.
const HookFileExtension = ".tengo"

// errVar is the script global that fails a hook when set.
const errVar = "err"

// hookModule is the builtin module describing the running hook.
const hookModule = "hook"

// testPhase is reported by the hook module while a test body runs.
const testPhase lifecycle.Phase = "test"

// DefaultModules are the Tengo stdlib modules scripts may import.
var DefaultModules = []string{"fmt", "math", "text", "times", "json", "rand", "enum"}

// ParseHookFileName extracts the slot from a hook script file name of the
// form <phase>-<period>[.<suffix>].tengo, e.g. "before-all.tengo" or
// "after-each.10-cleanup.tengo".
func ParseHookFileName(name string) (lifecycle.Slot, bool) {
	if !strings.HasSuffix(name, HookFileExtension) {
		return lifecycle.Slot{}, false
	}
	stem := strings.TrimSuffix(name, HookFileExtension)
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}

	phaseName, periodName, ok := strings.Cut(stem, "-")
	if !ok {
		return lifecycle.Slot{}, false
	}
	phase, err := lifecycle.ParsePhase(phaseName)
	if err != nil {
		return lifecycle.Slot{}, false
	}
	period, err := lifecycle.ParsePeriod(periodName)
	if err != nil || periodName == "" {
		return lifecycle.Slot{}, false
	}
	return lifecycle.Slot{Phase: phase, Period: period}, true
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
