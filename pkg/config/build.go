package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/suitehooks/internal/logger"
	"github.com/glorpus-work/suitehooks/pkg/errors"
	"github.com/glorpus-work/suitehooks/pkg/hooks"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
	"github.com/glorpus-work/suitehooks/pkg/runner"
)

// Suites is a manifest turned into a populated registry.
type Suites struct {
	Registry *lifecycle.Registry
	// Order lists class names in manifest order.
	Order []string
	// Tests maps class names to their tests.
	Tests map[string][]runner.Test
}

// Executor returns the script executor configured by the settings.
func (s Settings) Executor() *hooks.TengoExecutor {
	var opts []hooks.ExecutorOption
	if len(s.Modules) > 0 {
		opts = append(opts, hooks.WithModules(s.Modules...))
	}
	if s.MaxAllocs > 0 {
		opts = append(opts, hooks.WithMaxAllocs(s.MaxAllocs))
	}
	return hooks.NewTengoExecutor(opts...)
}

// Build defines every class of the manifest and registers its hooks. Relative
// paths are resolved against baseDir. Per class, hooks are registered from
// the bundle first, then the hooks directory, then the inline declarations.
func Build(ctx context.Context, cfg *Config, baseDir string) (*Suites, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		cfg:     cfg,
		baseDir: baseDir,
		exec:    cfg.Settings.Executor(),
		suites: &Suites{
			Registry: lifecycle.NewRegistry(),
			Tests:    make(map[string][]runner.Test),
		},
		defined: make(map[string]*lifecycle.Class),
	}

	for _, class := range cfg.Classes {
		if _, err := b.define(class); err != nil {
			return nil, err
		}
	}

	for _, classCfg := range cfg.Classes {
		class := b.defined[classCfg.Name]
		if err := b.registerHooks(ctx, class, classCfg); err != nil {
			return nil, err
		}
		tests, err := b.tests(classCfg)
		if err != nil {
			return nil, err
		}
		b.suites.Order = append(b.suites.Order, classCfg.Name)
		b.suites.Tests[classCfg.Name] = tests
	}

	logger.Debug("Built suites from manifest", logger.Fields{"classes": len(cfg.Classes)})
	return b.suites, nil
}

type builder struct {
	cfg     *Config
	baseDir string
	exec    *hooks.TengoExecutor
	suites  *Suites
	defined map[string]*lifecycle.Class
}

// define declares a class after its parent, whatever the manifest order.
func (b *builder) define(classCfg *ClassConfig) (*lifecycle.Class, error) {
	if class, ok := b.defined[classCfg.Name]; ok {
		return class, nil
	}

	var parent *lifecycle.Class
	if classCfg.Parent != "" {
		var err error
		parent, err = b.define(b.cfg.GetClass(classCfg.Parent))
		if err != nil {
			return nil, err
		}
	}

	class, err := b.suites.Registry.Define(classCfg.Name, parent)
	if err != nil {
		return nil, err
	}
	b.defined[classCfg.Name] = class
	return class, nil
}

func (b *builder) registerHooks(ctx context.Context, class *lifecycle.Class, classCfg *ClassConfig) error {
	if bundle := b.cfg.Settings.Bundle; bundle != "" {
		if _, err := hooks.LoadHooksFromArchive(ctx, class, b.resolve(bundle), class.Name(), b.exec); err != nil {
			return err
		}
	}

	if dir := b.cfg.Settings.HooksDir; dir != "" {
		if _, err := hooks.LoadHooksFromDir(class, filepath.Join(b.resolve(dir), class.Name()), b.exec); err != nil {
			return err
		}
	}

	for i, hookCfg := range classCfg.Hooks {
		phase, _ := lifecycle.ParsePhase(hookCfg.Phase)
		period, _ := lifecycle.ParsePeriod(hookCfg.Period)
		slot := lifecycle.Slot{Phase: phase, Period: period}

		if hookCfg.File != "" {
			if err := hooks.LoadHookFile(class, b.resolve(hookCfg.File), &slot, b.exec); err != nil {
				return err
			}
			continue
		}

		label := hookCfg.Label
		if label == "" {
			label = fmt.Sprintf("%s:%s:%d", class.Name(), slot, i)
		}
		if err := hooks.RegisterScript(class, slot, label, hookCfg.Script, b.exec); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) tests(classCfg *ClassConfig) ([]runner.Test, error) {
	tests := make([]runner.Test, 0, len(classCfg.Tests))
	for _, testCfg := range classCfg.Tests {
		source := []byte(testCfg.Script)
		if testCfg.File != "" {
			content, err := os.ReadFile(b.resolve(testCfg.File))
			if err != nil {
				return nil, errors.Wrapf(err, "error reading test %s of %s", testCfg.Name, classCfg.Name)
			}
			source = content
		}
		tests = append(tests, runner.Test{
			Name: testCfg.Name,
			Body: b.exec.Body(testCfg.Name, source),
		})
	}
	return tests, nil
}

func (b *builder) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.baseDir, path)
}
