package pathfinder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/pathfinder/internal/logging"
	"github.com/aretw0/pathfinder/pkg/adapters/memory"
	"github.com/aretw0/pathfinder/pkg/adapters/redis"
	"github.com/aretw0/pathfinder/pkg/config"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/fingerprint"
	"github.com/aretw0/pathfinder/pkg/paths"
	"github.com/aretw0/pathfinder/pkg/ports"
)

// Finder is the high-level entry point for the library.
// It wires a resolver, a fingerprint cache and observability hooks together.
type Finder struct {
	paths        *paths.SystemPaths
	fingerprints *fingerprint.Fingerprinter
	cache        ports.DigestCache
	pathOpts     []paths.Option
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	watch        bool
	stopWatch    context.CancelFunc
}

// Option defines a functional option for configuring the Finder.
type Option func(*Finder)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Finder) {
		f.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finder) {
		f.logger = logger
	}
}

// WithCache injects the fingerprint cache. A nil cache disables caching.
func WithCache(cache ports.DigestCache) Option {
	return func(f *Finder) {
		f.cache = cache
	}
}

// WithPathOptions forwards options to the underlying resolver.
func WithPathOptions(opts ...paths.Option) Option {
	return func(f *Finder) {
		f.pathOpts = append(f.pathOpts, opts...)
	}
}

// WithWatch enables lookup memoisation invalidated by filesystem events.
func WithWatch(enabled bool) Option {
	return func(f *Finder) {
		f.watch = enabled
	}
}

// New initializes a Finder. Without options it reads PATHFINDER_FILE_PATH,
// keeps fingerprints in memory and logs through slog.Default().
func New(opts ...Option) (*Finder, error) {
	f := build(opts...)
	if f.watch {
		ctx, cancel := context.WithCancel(context.Background())
		if _, err := f.paths.Watch(ctx); err != nil {
			cancel()
			_ = f.closeCache()
			return nil, fmt.Errorf("failed to watch search paths: %w", err)
		}
		f.stopWatch = cancel
	}
	return f, nil
}

func build(opts ...Option) *Finder {
	f := &Finder{cache: memory.NewCache()}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}

	pathOpts := []paths.Option{
		paths.WithLogger(f.logger),
		paths.WithHooks(f.hooks),
	}
	if f.watch {
		pathOpts = append(pathOpts, paths.WithMemo(true))
	}
	f.paths = paths.New(append(pathOpts, f.pathOpts...)...)
	f.fingerprints = fingerprint.New(f.paths, f.cache,
		fingerprint.WithLogger(f.logger),
		fingerprint.WithHooks(f.hooks),
	)
	return f
}

// NewFromConfig initializes a Finder from a loaded configuration.
// Options are applied after the configuration, so they take precedence.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Finder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := []Option{
		WithLogger(logging.New(logging.ParseLevel(cfg.LogLevel))),
		WithWatch(cfg.Watch),
		WithPathOptions(
			paths.WithFilePathEnv(cfg.FilePathEnv),
			paths.WithFilePaths(cfg.FilePaths...),
			paths.WithSuffixes(cfg.Suffixes...),
			paths.WithMemo(cfg.Memo || cfg.Watch),
		),
	}

	switch cfg.Cache.Backend {
	case config.CacheNone:
		base = append(base, WithCache(nil))
	case config.CacheRedis:
		r := cfg.Cache.Redis
		base = append(base, WithCache(redis.New(r.Addr, r.Password, r.DB,
			redis.WithPrefix(r.Prefix),
			redis.WithTTL(r.TTL),
		)))
	}

	return New(append(base, opts...)...)
}

// Paths returns the underlying resolver.
func (f *Finder) Paths() *paths.SystemPaths {
	return f.paths
}

// Find resolves file. When searchLocalPath is true the working directory is tried first.
func (f *Finder) Find(ctx context.Context, file string, searchLocalPath bool) (string, error) {
	return f.paths.FindFileContext(ctx, file, searchLocalPath)
}

// FindPath returns the directory containing file.
func (f *Finder) FindPath(ctx context.Context, file string) (string, error) {
	return f.paths.FindFilePathContext(ctx, file)
}

// FindURI resolves a file:// URI or a URI handled by a registered callback.
func (f *Finder) FindURI(ctx context.Context, uri string) (string, error) {
	return f.paths.FindFileURIContext(ctx, uri)
}

// FilePaths returns the current search paths.
func (f *Finder) FilePaths() []string {
	return f.paths.FilePaths()
}

// SearchPathSuffixes returns the current search path suffixes.
func (f *Finder) SearchPathSuffixes() []string {
	return f.paths.SearchPathSuffixes()
}

// AddFilePaths appends entries of a path-list string to the search paths.
func (f *Finder) AddFilePaths(list string) {
	f.paths.AddFilePaths(list)
}

// AddSearchPathSuffix registers a suffix tried under every search path.
func (f *Finder) AddSearchPathSuffix(suffix string) {
	f.paths.AddSearchPathSuffix(suffix)
}

// Fingerprint resolves file and returns its content fingerprint.
func (f *Finder) Fingerprint(ctx context.Context, file string) (domain.Fingerprint, error) {
	return f.fingerprints.Fingerprint(ctx, file)
}

// Close stops the search path watcher and releases the cache.
func (f *Finder) Close() error {
	if f.stopWatch != nil {
		f.stopWatch()
	}
	return f.closeCache()
}

func (f *Finder) closeCache() error {
	if c, ok := f.cache.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
