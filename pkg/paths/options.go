package paths

import (
	"log/slog"

	"github.com/aretw0/pathfinder/pkg/domain"
)

// DefaultFilePathEnv is the environment variable read for search paths.
const DefaultFilePathEnv = "PATHFINDER_FILE_PATH"

// LogPathEnv overrides the directory returned by LogPath.
const LogPathEnv = "PATHFINDER_LOG_PATH"

// Option defines a functional option for configuring SystemPaths.
type Option func(*SystemPaths)

// WithFilePathEnv sets the environment variable that lists search paths.
func WithFilePathEnv(name string) Option {
	return func(s *SystemPaths) {
		s.filePathEnv = name
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SystemPaths) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *SystemPaths) {
		s.hooks = hooks
	}
}

// WithWorkingDir overrides the directory used for local lookups (default: os.Getwd).
func WithWorkingDir(dir string) Option {
	return func(s *SystemPaths) {
		s.workingDir = dir
	}
}

// WithMemo enables memoisation of successful lookups.
func WithMemo(enabled bool) Option {
	return func(s *SystemPaths) {
		s.memoEnabled = enabled
	}
}

// WithFilePaths adds search paths at construction, as AddFilePaths would.
func WithFilePaths(paths ...string) Option {
	return func(s *SystemPaths) {
		for _, p := range paths {
			s.addFilePathsLocked(p)
		}
	}
}

// WithSuffixes adds search path suffixes at construction.
func WithSuffixes(suffixes ...string) Option {
	return func(s *SystemPaths) {
		for _, suffix := range suffixes {
			s.addSuffixLocked(suffix)
		}
	}
}
