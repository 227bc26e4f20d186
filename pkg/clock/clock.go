// Package clock provides wall-clock accessors, context-aware sleeps and the
// unit conversion constants used across pathfinder.
package clock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	// NanoToSec is seconds in one nanosecond.
	NanoToSec = 1e-9
	// SecToNano is nanoseconds in one second.
	SecToNano = 1_000_000_000
	// MsToNano is nanoseconds in one millisecond.
	MsToNano = 1_000_000
	// UsToNano is nanoseconds in one microsecond.
	UsToNano = 1_000
	// SpeedOfLight in meters per second.
	SpeedOfLight = 299792458.0
)

// ISOLayout is the layout produced by SystemTimeISO: YYYY-MM-DDTHH:MM:SS.NNNNNNNNN.
const ISOLayout = "2006-01-02T15:04:05.000000000"

// Clock is a source of the current time.
type Clock interface {
	Now() time.Time
}

// System reads the operating system wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

type holder struct{ c Clock }

var std atomic.Pointer[holder]

func init() {
	std.Store(&holder{c: System{}})
}

// Default returns the clock read by the package-level SystemTime functions.
func Default() Clock {
	return std.Load().c
}

// SetDefault replaces the clock read by the package-level SystemTime functions
// and returns the previous one. A nil c restores System.
func SetDefault(c Clock) Clock {
	if c == nil {
		c = System{}
	}
	return std.Swap(&holder{c: c}).c
}

// SystemTime returns the current wall time.
func SystemTime() time.Time { return Default().Now() }

// SystemTimeS returns whole seconds since the Unix epoch.
func SystemTimeS() int64 { return Default().Now().Unix() }

// SystemTimeMs returns milliseconds since the Unix epoch.
func SystemTimeMs() int64 { return Default().Now().UnixMilli() }

// SystemTimeUs returns microseconds since the Unix epoch.
func SystemTimeUs() int64 { return Default().Now().UnixMicro() }

// SystemTimeNs returns nanoseconds since the Unix epoch.
func SystemTimeNs() int64 { return Default().Now().UnixNano() }

// SystemTimeISO returns the local wall time formatted with ISOLayout.
func SystemTimeISO() string {
	return FormatISO(Default().Now())
}

// FormatISO formats t in local time using ISOLayout.
func FormatISO(t time.Time) string {
	return t.Local().Format(ISOLayout)
}

// ParseISO parses a string produced by FormatISO, interpreting it in local time.
func ParseISO(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISOLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO time %q: %w", s, err)
	}
	return t, nil
}

// Sleep blocks for d or until ctx is done, whichever comes first.
// It returns ctx.Err() if the context ended the wait.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SleepS sleeps for s seconds.
func SleepS(ctx context.Context, s int64) error {
	return Sleep(ctx, time.Duration(s)*time.Second)
}

// SleepMs sleeps for ms milliseconds.
func SleepMs(ctx context.Context, ms int64) error {
	return Sleep(ctx, time.Duration(ms)*time.Millisecond)
}

// SleepUs sleeps for us microseconds.
func SleepUs(ctx context.Context, us int64) error {
	return Sleep(ctx, time.Duration(us)*time.Microsecond)
}

// SleepNs sleeps for ns nanoseconds.
func SleepNs(ctx context.Context, ns int64) error {
	return Sleep(ctx, time.Duration(ns))
}

// Seconds converts a nanosecond count to fractional seconds.
func Seconds(ns int64) float64 {
	return float64(ns) * NanoToSec
}
