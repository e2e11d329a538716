package hooks

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/glorpus-work/suitehooks/internal/logger"
	"github.com/glorpus-work/suitehooks/pkg/errors"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
	"github.com/mholt/archives"
)

// LoadHooksFromDir registers every hook script found directly in dir.
// Files are registered in lexical order; names that do not match
// <phase>-<period>[.<suffix>].tengo are skipped. A missing dir loads nothing.
func LoadHooksFromDir(reg Registrar, dir string, exec *TengoExecutor) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "failed to stat hooks directory %s", dir)
	}
	return LoadHooksFromFS(reg, os.DirFS(dir), ".", exec)
}

// LoadHooksFromArchive registers the hook scripts stored under dir inside a
// .tar.gz, .zip or other archive supported by mholt/archives.
func LoadHooksFromArchive(ctx context.Context, reg Registrar, archivePath, dir string, exec *TengoExecutor) (int, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return 0, errors.Wrapf(errors.ErrHookLoad, "hook bundle %s: %v", archivePath, err)
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open hook bundle %s", archivePath)
	}
	// Close the underlying archive filesystem when done (important on Windows)
	if closer, ok := fsys.(io.Closer); ok {
		defer closer.Close()
	}

	return LoadHooksFromFS(reg, fsys, dir, exec)
}

// LoadHooksFromFS registers the hook scripts found directly in dir of fsys.
func LoadHooksFromFS(reg Registrar, fsys fs.FS, dir string, exec *TengoExecutor) (int, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "failed to read hooks directory %s", dir)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		slot, ok := ParseHookFileName(entry.Name())
		if !ok {
			continue // Skip unsupported file types
		}

		hookPath := path.Join(dir, entry.Name())
		content, err := fs.ReadFile(fsys, hookPath)
		if err != nil {
			return loaded, errors.Wrapf(err, "error reading hook file %s", hookPath)
		}

		if err := register(reg, slot, entry.Name(), content, exec); err != nil {
			return loaded, err
		}
		loaded++
	}

	logger.Debug("Loaded hook scripts", logger.Fields{
		"class": reg.Name(),
		"dir":   dir,
		"count": loaded,
	})
	return loaded, nil
}

// LoadHookFile registers a single script file. When slot is nil the slot is
// taken from the file name.
func LoadHookFile(reg Registrar, file string, slot *lifecycle.Slot, exec *TengoExecutor) error {
	name := filepath.Base(file)
	target := slot
	if target == nil {
		parsed, ok := ParseHookFileName(name)
		if !ok {
			return ErrUnsupportedHookFile(name)
		}
		target = &parsed
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "error reading hook file %s", file)
	}
	return register(reg, *target, name, content, exec)
}

// RegisterScript registers inline script source under label.
func RegisterScript(reg Registrar, slot lifecycle.Slot, label string, source string, exec *TengoExecutor) error {
	return register(reg, slot, label, []byte(source), exec)
}

func register(reg Registrar, slot lifecycle.Slot, label string, content []byte, exec *TengoExecutor) error {
	hook := exec.Hook(label, slot, content)
	if err := reg.Register(slot.Phase, slot.Period, hook, lifecycle.WithLabel(label)); err != nil {
		return errors.Wrapf(err, "error adding hook %s to %s", label, reg.Name())
	}
	return nil
}

// HookTemplate generates a template for a hook script.
func HookTemplate(slot lifecycle.Slot) string {
	header := "// " + slot.String() + " hook for class <Class>\n"
	common := `// Instance fields are available as globals. Globals you create or change
// are stored back on the instance. Assign err = "message" to fail the hook.
// The builtin "hook" module exposes name, class, phase and period.
`

	switch slot {
	case lifecycle.Slot{Phase: lifecycle.Before, Period: lifecycle.Each}:
		return header + "// Runs before every test, parent classes first.\n" + common + `
// Example: derive per-test state from suite state
/*
counter := 0
user := {name: "alice", admin: false}
*/`

	case lifecycle.Slot{Phase: lifecycle.Before, Period: lifecycle.All}:
		return header + "// Runs once per suite. New globals are replayed onto every test.\n" +
			"// Scripts work on copies of fields: changing a shared map or array in one\n" +
			"// test does not change it for the next test. Go hooks share the object.\n" + common + `
// Example: seed shared state once
/*
fmt := import("fmt")
shared := {started: true}
fmt.println("suite starting for ", import("hook").class)
*/`

	case lifecycle.Slot{Phase: lifecycle.After, Period: lifecycle.Each}:
		return header + "// Runs after every test, parent classes first.\n" + common + `
// Example: verify an invariant after each test
/*
if counter < 0 {
    err = "counter went negative"
}
*/`

	case lifecycle.Slot{Phase: lifecycle.After, Period: lifecycle.All}:
		return header + "// Runs once after the suite.\n" + common + `
// Example: report suite state
/*
fmt := import("fmt")
fmt.println("suite finished")
*/`

	default:
		return "// Unknown hook slot: " + slot.String()
	}
}
