package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/glorpus-work/suitehooks/internal/logger"
	"github.com/glorpus-work/suitehooks/pkg/config"
)

// These variables will be set by the main package
var (
	Verbose      *bool
	LogFormat    *string
	OutputFormat *string
)

// loadSuites loads the manifest at path, configures logging from its settings
// and the global flags, and builds the suites it declares.
func loadSuites(ctx context.Context, path string) (*config.Config, *config.Suites, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	initLogger(cfg.Settings)

	// Relative script paths are relative to the manifest
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid manifest path: %w", err)
	}

	suites, err := config.Build(ctx, cfg, filepath.Dir(absPath))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build suites: %w", err)
	}
	return cfg, suites, nil
}

// initLogger applies the manifest log settings, overridden by flags.
func initLogger(settings config.Settings) {
	level := settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	format := settings.LogFormat
	if LogFormat != nil && *LogFormat != "" {
		format = *LogFormat
	}
	logger.InitLogger(level, logger.ParseFormat(format))
}

func outputFormat() string {
	if OutputFormat != nil && *OutputFormat != "" {
		return *OutputFormat
	}
	return OutputTable
}
