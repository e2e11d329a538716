package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glorpus-work/suitehooks/pkg/errors"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
	"github.com/glorpus-work/suitehooks/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func callbackNames(t *testing.T, class *lifecycle.Class, phase lifecycle.Phase, period lifecycle.Period) []string {
	t.Helper()
	callbacks, err := class.Gather(phase, period)
	require.NoError(t, err)
	names := make([]string, 0, len(callbacks))
	for _, cb := range callbacks {
		names = append(names, cb.Name())
	}
	return names
}

func TestBuild_InlineScripts(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	// hooks_dir does not exist under baseDir, which is not an error
	suites, err := Build(context.Background(), cfg, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"Child", "Base"}, suites.Order)
	assert.Equal(t, []string{"Base", "Child"}, suites.Registry.Names())

	child, err := suites.Registry.Class("Child")
	require.NoError(t, err)
	require.NotNil(t, child.Parent())
	assert.Equal(t, "Base", child.Parent().Name())

	assert.Equal(t, []string{"Base:before(each):0", "derive-b"},
		callbackNames(t, child, lifecycle.Before, lifecycle.Each))

	summary, err := runner.New(nil).Run(context.Background(), child, suites.Tests["Child"])
	require.NoError(t, err)
	assert.True(t, summary.OK())
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 0, summary.Failed)
}

func TestBuild_HooksDirAndFiles(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "hooks", "Suite", "before-all.tengo"), "shared := 42\n")
	writeFile(t, filepath.Join(base, "hooks", "Suite", "before-each.tengo"), "a := 1\n")
	writeFile(t, filepath.Join(base, "scripts", "derive.tengo"), "b := a + shared\n")
	writeFile(t, filepath.Join(base, "tests", "check.tengo"), `
if shared != 42 || a != 1 || b != 43 {
	err = "unexpected state"
}
`)

	manifest := `version: "1.0"
settings:
  hooks_dir: hooks
classes:
  - name: Suite
    hooks:
      - phase: before
        file: scripts/derive.tengo
    tests:
      - name: from-file
        file: tests/check.tengo
      - name: failing
        script: err = "nope"
`
	cfg, err := LoadConfigFromReader(strings.NewReader(manifest))
	require.NoError(t, err)

	suites, err := Build(context.Background(), cfg, base)
	require.NoError(t, err)

	class, err := suites.Registry.Class("Suite")
	require.NoError(t, err)

	// directory hooks come before inline declarations
	assert.Equal(t, []string{"before-each.tengo", "derive.tengo"},
		callbackNames(t, class, lifecycle.Before, lifecycle.Each))
	assert.Equal(t, []string{"before-all.tengo"},
		callbackNames(t, class, lifecycle.Before, lifecycle.All))

	summary, err := runner.New(nil).Run(context.Background(), class, suites.Tests["Suite"])
	require.NoError(t, err, "test failures are not suite failures")
	require.Len(t, summary.Results, 2)
	assert.NoError(t, summary.Results[0].Err)
	assert.ErrorIs(t, summary.Results[1].Err, errors.ErrHookScript)
	assert.Contains(t, summary.Results[1].Err.Error(), "nope")
	assert.False(t, summary.OK())
}

func TestBuild_Errors(t *testing.T) {
	t.Run("invalid manifest", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Classes = []*ClassConfig{{Name: "A", Parent: "Missing"}}

		_, err := Build(context.Background(), cfg, t.TempDir())
		assert.ErrorIs(t, err, errors.ErrConfigValidation)
	})

	t.Run("missing test file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Classes = []*ClassConfig{{
			Name:  "A",
			Tests: []TestConfig{{Name: "t", File: "nowhere.tengo"}},
		}}

		_, err := Build(context.Background(), cfg, t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading test t of A")
	})

	t.Run("missing bundle", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Settings.Bundle = "hooks.tar.gz"
		cfg.Classes = []*ClassConfig{{Name: "A"}}

		_, err := Build(context.Background(), cfg, t.TempDir())
		assert.ErrorIs(t, err, errors.ErrHookLoad)
	})
}
