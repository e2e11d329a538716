// Package config loads suite manifests: YAML documents declaring test-case
// classes, their parents, their hooks and their tests. Hooks and tests are
// Tengo scripts given inline or as files; hook scripts may also come from a
// hooks directory or an archive bundle.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/glorpus-work/suitehooks/pkg/errors"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// Config represents a suite manifest.
type Config struct {
	// Version of the manifest format
	Version string `yaml:"version"`

	// General settings
	Settings Settings `yaml:"settings"`

	// Test-case classes, in declaration order
	Classes []*ClassConfig `yaml:"classes"`
}

// Settings represents general manifest settings.
type Settings struct {
	// Output settings
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json

	// Script sources
	HooksDir string `yaml:"hooks_dir,omitempty"` // <hooks_dir>/<class>/<phase>-<period>.tengo
	Bundle   string `yaml:"bundle,omitempty"`    // archive holding <class>/<phase>-<period>.tengo

	// Script engine settings
	Modules   []string `yaml:"modules,omitempty"`
	MaxAllocs int64    `yaml:"max_allocs,omitempty"`
}

// ClassConfig declares one test-case class.
type ClassConfig struct {
	Name   string       `yaml:"name"`
	Parent string       `yaml:"parent,omitempty"`
	Hooks  []HookConfig `yaml:"hooks,omitempty"`
	Tests  []TestConfig `yaml:"tests,omitempty"`
}

// HookConfig declares one hook. Exactly one of Script or File is set.
type HookConfig struct {
	Phase  string `yaml:"phase"`
	Period string `yaml:"period,omitempty"` // defaults to each
	Label  string `yaml:"label,omitempty"`
	Script string `yaml:"script,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// TestConfig declares one test. Exactly one of Script or File is set.
type TestConfig struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// Default configuration values.
const (
	// DefaultVersion is assumed when a manifest omits its version.
	DefaultVersion = "1.0"

	// SupportedVersions is the constraint manifest versions must satisfy.
	SupportedVersions = ">= 1.0, < 2.0"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns an empty manifest with default settings.
func DefaultConfig() *Config {
	return &Config{
		Version: DefaultVersion,
		Classes: []*ClassConfig{},
		Settings: Settings{
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// LoadConfig loads a manifest from a file.
func LoadConfig(path string) (*Config, error) {
	// Validate the config file path
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	// Ensure the path is clean and absolute
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open manifest: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads a manifest from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manifest data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	// Apply defaults and validate
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// ToYAML converts the manifest to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(YAMLIndent)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	return buf.Bytes(), nil
}

// GetClass returns the class declaration with the given name, or nil.
func (c *Config) GetClass(name string) *ClassConfig {
	for _, class := range c.Classes {
		if class.Name == name {
			return class
		}
	}
	return nil
}

// Validate checks if the manifest is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateVersion(c.Version); err != nil {
		return err
	}
	if err := validateClasses(c.Classes); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
	}
	return nil
}

func validateVersion(v string) error {
	parsed, err := version.NewVersion(v)
	if err != nil {
		return errors.Wrapf(errors.ErrConfigVersion, "%q: %v", v, err)
	}
	constraint := version.MustConstraints(version.NewConstraint(SupportedVersions))
	if !constraint.Check(parsed) {
		return errors.Wrapf(errors.ErrConfigVersion, "%s does not satisfy %s", v, SupportedVersions)
	}
	return nil
}

func validateClasses(classes []*ClassConfig) error {
	byName := make(map[string]*ClassConfig, len(classes))
	for i, class := range classes {
		if class == nil || class.Name == "" {
			return fmt.Errorf("class %d: name cannot be empty", i)
		}
		if _, dup := byName[class.Name]; dup {
			return fmt.Errorf("class %s declared twice", class.Name)
		}
		byName[class.Name] = class
	}

	for _, class := range classes {
		if class.Parent != "" {
			if _, ok := byName[class.Parent]; !ok {
				return fmt.Errorf("class %s: unknown parent %s", class.Name, class.Parent)
			}
		}
		if err := validateHooks(class); err != nil {
			return err
		}
		if err := validateTests(class); err != nil {
			return err
		}
	}

	// Walk each chain; revisiting a class means a cycle.
	for _, class := range classes {
		seen := map[string]bool{}
		for cur := class; cur != nil; cur = byName[cur.Parent] {
			if seen[cur.Name] {
				return fmt.Errorf("class %s: inheritance cycle through %s", class.Name, cur.Name)
			}
			seen[cur.Name] = true
			if cur.Parent == "" {
				break
			}
		}
	}
	return nil
}

func validateHooks(class *ClassConfig) error {
	for i, hook := range class.Hooks {
		if _, err := lifecycle.ParsePhase(hook.Phase); err != nil {
			return fmt.Errorf("class %s hook %d: %w", class.Name, i, err)
		}
		if _, err := lifecycle.ParsePeriod(hook.Period); err != nil {
			return fmt.Errorf("class %s hook %d: %w", class.Name, i, err)
		}
		if (hook.Script == "") == (hook.File == "") {
			return fmt.Errorf("class %s hook %d: exactly one of script or file must be set", class.Name, i)
		}
	}
	return nil
}

func validateTests(class *ClassConfig) error {
	names := make(map[string]bool, len(class.Tests))
	for i, test := range class.Tests {
		if test.Name == "" {
			return fmt.Errorf("class %s test %d: name cannot be empty", class.Name, i)
		}
		if names[test.Name] {
			return fmt.Errorf("class %s: test %s declared twice", class.Name, test.Name)
		}
		names[test.Name] = true
		if (test.Script == "") == (test.File == "") {
			return fmt.Errorf("class %s test %s: exactly one of script or file must be set", class.Name, test.Name)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = "text"
	}
	if c.Classes == nil {
		c.Classes = []*ClassConfig{}
	}
}
