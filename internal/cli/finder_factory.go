package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/pathfinder"
	"github.com/aretw0/pathfinder/internal/logging"
	"github.com/aretw0/pathfinder/pkg/config"
	"github.com/aretw0/pathfinder/pkg/domain"
)

// LoadConfig reads the config file named in opts and layers the flag values on top.
func LoadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	cfg.FilePaths = append(cfg.FilePaths, opts.Paths...)
	cfg.Suffixes = append(cfg.Suffixes, opts.Suffixes...)
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Watch {
		cfg.Watch = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// NewFinder initializes a Finder with standard CLI conventions.
// Extra hooks are merged after the debug hooks.
func NewFinder(opts Options, hooks domain.LifecycleHooks) (*pathfinder.Finder, *config.Config, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(level)
	if level <= slog.LevelDebug {
		hooks = createDebugHooks(logger).Merge(hooks)
	}

	finder, err := pathfinder.NewFromConfig(cfg,
		pathfinder.WithLogger(logger),
		pathfinder.WithLifecycleHooks(hooks),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing finder: %w", err)
	}
	return finder, cfg, nil
}
