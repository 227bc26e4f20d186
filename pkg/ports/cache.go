package ports

import (
	"context"

	"github.com/aretw0/pathfinder/pkg/domain"
)

// DigestCache persists file fingerprints keyed by absolute path.
type DigestCache interface {
	// Get returns the fingerprint stored for path.
	// Returns domain.ErrCacheMiss if there is none.
	Get(ctx context.Context, path string) (domain.Fingerprint, error)

	// Put stores fp under fp.Path, replacing any previous entry.
	Put(ctx context.Context, fp domain.Fingerprint) error

	// Delete removes the entry for path. Deleting a missing entry is not an error.
	Delete(ctx context.Context, path string) error

	// List returns the cached paths in no particular order.
	List(ctx context.Context) ([]string, error)
}
