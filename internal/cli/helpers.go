package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/pathfinder/pkg/clock"
	"github.com/aretw0/pathfinder/pkg/digest"
	"github.com/aretw0/pathfinder/pkg/domain"
	"golang.org/x/term"
)

// Time units accepted by FormatTime.
const (
	UnitSeconds = "s"
	UnitMillis  = "ms"
	UnitMicros  = "us"
	UnitNanos   = "ns"
	UnitISO     = "iso"
)

// FormatTime renders the current time of c in the given unit.
func FormatTime(c clock.Clock, unit string) (string, error) {
	now := c.Now()
	switch strings.ToLower(unit) {
	case UnitSeconds:
		return fmt.Sprint(now.Unix()), nil
	case UnitMillis:
		return fmt.Sprint(now.UnixMilli()), nil
	case UnitMicros:
		return fmt.Sprint(now.UnixMicro()), nil
	case UnitNanos:
		return fmt.Sprint(now.UnixNano()), nil
	case UnitISO, "":
		return clock.FormatISO(now), nil
	default:
		return "", fmt.Errorf("unknown time unit %q (supported: s, ms, us, ns, iso)", unit)
	}
}

// HashReader writes the sha1sum-style line "<digest>  <name>" for r to w.
func HashReader(w io.Writer, r io.Reader, name string) error {
	sum, _, err := digest.SHA1Reader(r)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", name, err)
	}
	_, err = fmt.Fprintf(w, "%s  %s\n", sum, name)
	return err
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLookup: func(ctx context.Context, e *domain.LookupEvent) {
			if e.Found {
				logger.Debug("Lookup", "file", e.File, "path", e.Path, "source", e.Source, "duration", e.Duration)
			} else {
				logger.Debug("Lookup (Miss)", "file", e.File, "duration", e.Duration)
			}
		},
		OnFingerprint: func(ctx context.Context, e *domain.FingerprintEvent) {
			if e.IsError {
				logger.Debug("Fingerprint (Error)", "path", e.Path)
			} else {
				logger.Debug("Fingerprint", "path", e.Path, "digest", e.Digest, "cache_hit", e.CacheHit)
			}
		},
	}
}
