package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLookup      EventType = "lookup"
	EventFingerprint EventType = "fingerprint"
)

// LookupSource names the search location that satisfied (or last failed) a lookup.
type LookupSource string

const (
	SourceNone        LookupSource = ""
	SourceAbsolute    LookupSource = "absolute"
	SourceLocal       LookupSource = "local"
	SourceSearchPath  LookupSource = "search_path"
	SourceSuffix      LookupSource = "suffix"
	SourceCallback    LookupSource = "callback"
	SourceURICallback LookupSource = "uri_callback"
	SourceMemo        LookupSource = "memo"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// LookupEvent is emitted after every resolver lookup.
type LookupEvent struct {
	EventBase
	File     string        `json:"file"`
	Path     string        `json:"path,omitempty"`
	Found    bool          `json:"found"`
	Source   LookupSource  `json:"source,omitempty"`
	Duration time.Duration `json:"duration"`
}

// FingerprintEvent is emitted after a file fingerprint is produced.
type FingerprintEvent struct {
	EventBase
	Path     string `json:"path"`
	Digest   string `json:"digest,omitempty"`
	Bytes    int64  `json:"bytes"`
	CacheHit bool   `json:"cache_hit"`
	IsError  bool   `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for library observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnLookup      func(context.Context, *LookupEvent)
	OnFingerprint func(context.Context, *FingerprintEvent)
}

// Merge returns hooks that invoke h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnLookup: func(ctx context.Context, e *LookupEvent) {
			if h.OnLookup != nil {
				h.OnLookup(ctx, e)
			}
			if other.OnLookup != nil {
				other.OnLookup(ctx, e)
			}
		},
		OnFingerprint: func(ctx context.Context, e *FingerprintEvent) {
			if h.OnFingerprint != nil {
				h.OnFingerprint(ctx, e)
			}
			if other.OnFingerprint != nil {
				other.OnFingerprint(ctx, e)
			}
		},
	}
}
