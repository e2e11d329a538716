package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glorpus-work/suitehooks/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `version: "1.2"
settings:
  log_level: debug
  hooks_dir: hooks
classes:
  - name: Child
    parent: Base
    hooks:
      - phase: before
        script: b := a + 1
        label: derive-b
    tests:
      - name: sums
        script: |
          if b != 2 {
            err = "b should be 2"
          }
  - name: Base
    hooks:
      - phase: before
        period: each
        script: a := 1
`

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test default values
	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, "text", cfg.Settings.LogFormat)
	assert.Empty(t, cfg.Classes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	// Create a temporary manifest file
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "suites.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(sampleManifest), 0o644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Verify loaded values
	assert.Equal(t, "1.2", cfg.Version)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, "text", cfg.Settings.LogFormat, "defaults apply to omitted settings")
	assert.Equal(t, "hooks", cfg.Settings.HooksDir)
	require.Len(t, cfg.Classes, 2)

	child := cfg.GetClass("Child")
	require.NotNil(t, child)
	assert.Equal(t, "Base", child.Parent)
	require.Len(t, child.Hooks, 1)
	assert.Equal(t, "derive-b", child.Hooks[0].Label)
	assert.Empty(t, child.Hooks[0].Period)
	require.Len(t, child.Tests, 1)
	assert.Contains(t, child.Tests[0].Script, "b should be 2")

	assert.Nil(t, cfg.GetClass("Missing"))
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfigFromReader(strings.NewReader("classes: [unterminated"))
	assert.ErrorIs(t, err, errors.ErrConfigParse)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  error
		contains string
	}{
		{
			name:     "version too new",
			manifest: "version: \"2.0\"\n",
			wantErr:  errors.ErrConfigVersion,
		},
		{
			name:     "version not a version",
			manifest: "version: latest\n",
			wantErr:  errors.ErrConfigVersion,
		},
		{
			name:     "unknown parent",
			manifest: "classes:\n  - name: A\n    parent: Z\n",
			wantErr:  errors.ErrConfigValidation,
			contains: "unknown parent Z",
		},
		{
			name:     "duplicate class",
			manifest: "classes:\n  - name: A\n  - name: A\n",
			wantErr:  errors.ErrConfigValidation,
			contains: "declared twice",
		},
		{
			name:     "cycle",
			manifest: "classes:\n  - name: A\n    parent: B\n  - name: B\n    parent: A\n",
			wantErr:  errors.ErrConfigValidation,
			contains: "inheritance cycle",
		},
		{
			name:     "bad phase",
			manifest: "classes:\n  - name: A\n    hooks:\n      - phase: around\n        script: x := 1\n",
			wantErr:  errors.ErrInvalidPhase,
		},
		{
			name:     "bad period",
			manifest: "classes:\n  - name: A\n    hooks:\n      - phase: after\n        period: never\n        script: x := 1\n",
			wantErr:  errors.ErrInvalidPeriod,
		},
		{
			name:     "hook without source",
			manifest: "classes:\n  - name: A\n    hooks:\n      - phase: after\n",
			wantErr:  errors.ErrConfigValidation,
			contains: "exactly one of script or file",
		},
		{
			name:     "test without name",
			manifest: "classes:\n  - name: A\n    tests:\n      - script: x := 1\n",
			wantErr:  errors.ErrConfigValidation,
			contains: "name cannot be empty",
		},
		{
			name:     "duplicate test",
			manifest: "classes:\n  - name: A\n    tests:\n      - {name: t, script: x}\n      - {name: t, script: y}\n",
			wantErr:  errors.ErrConfigValidation,
			contains: "test t declared twice",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tc.manifest))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestToYAML(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	again, err := LoadConfigFromReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
