// Package fingerprint produces content digests of files found through a
// search-path resolver, reusing cached digests while a file is unchanged.
package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/pathfinder/pkg/digest"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/ports"
)

// Resolver finds files by name. *paths.SystemPaths satisfies it.
type Resolver interface {
	FindFileContext(ctx context.Context, file string, searchLocalPath bool) (string, error)
}

// Fingerprinter computes and caches file fingerprints.
type Fingerprinter struct {
	resolver Resolver
	cache    ports.DigestCache
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option defines a functional option for configuring a Fingerprinter.
type Option func(*Fingerprinter)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fingerprinter) {
		f.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Fingerprinter) {
		f.hooks = hooks
	}
}

// New creates a Fingerprinter. cache may be nil to disable caching.
func New(resolver Resolver, cache ports.DigestCache, opts ...Option) *Fingerprinter {
	f := &Fingerprinter{
		resolver: resolver,
		cache:    cache,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Fingerprint resolves file (local search enabled) and returns its fingerprint.
func (f *Fingerprinter) Fingerprint(ctx context.Context, file string) (domain.Fingerprint, error) {
	p, err := f.resolver.FindFileContext(ctx, file, true)
	if err != nil {
		return domain.Fingerprint{}, err
	}
	return f.FingerprintPath(ctx, p)
}

// FingerprintPath returns the fingerprint of the file at p without resolving it.
func (f *Fingerprinter) FingerprintPath(ctx context.Context, p string) (domain.Fingerprint, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return domain.Fingerprint{}, fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		f.emit(ctx, domain.Fingerprint{Path: abs}, false, true)
		return domain.Fingerprint{}, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if info.IsDir() {
		f.emit(ctx, domain.Fingerprint{Path: abs}, false, true)
		return domain.Fingerprint{}, domain.NewException(abs+" is a directory", nil)
	}

	if fp, ok := f.cached(ctx, abs, info); ok {
		f.emit(ctx, fp, true, false)
		return fp, nil
	}

	sum, err := digest.SHA1File(abs)
	if err != nil {
		f.emit(ctx, domain.Fingerprint{Path: abs}, false, true)
		return domain.Fingerprint{}, err
	}

	fp := domain.Fingerprint{
		Path:    abs,
		Digest:  sum,
		Size:    info.Size(),
		ModTime: info.ModTime().UTC(),
	}

	if f.cache != nil {
		if err := f.cache.Put(ctx, fp); err != nil {
			f.logger.Warn("Failed to cache fingerprint", "path", abs, "error", err)
		}
	}

	f.emit(ctx, fp, false, false)
	return fp, nil
}

// Forget drops the cached fingerprint of p.
func (f *Fingerprinter) Forget(ctx context.Context, p string) error {
	if f.cache == nil {
		return nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	return f.cache.Delete(ctx, abs)
}

func (f *Fingerprinter) cached(ctx context.Context, abs string, info os.FileInfo) (domain.Fingerprint, bool) {
	if f.cache == nil {
		return domain.Fingerprint{}, false
	}

	fp, err := f.cache.Get(ctx, abs)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			f.logger.Warn("Fingerprint cache lookup failed", "path", abs, "error", err)
		}
		return domain.Fingerprint{}, false
	}
	if !fp.Matches(info.Size(), info.ModTime()) {
		f.logger.Debug("Stale fingerprint", "path", abs)
		return domain.Fingerprint{}, false
	}
	return fp, true
}

func (f *Fingerprinter) emit(ctx context.Context, fp domain.Fingerprint, hit, failed bool) {
	if f.hooks.OnFingerprint == nil {
		return
	}
	f.hooks.OnFingerprint(ctx, &domain.FingerprintEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFingerprint},
		Path:      fp.Path,
		Digest:    fp.Digest,
		Bytes:     fp.Size,
		CacheHit:  hit,
		IsError:   failed,
	})
}
