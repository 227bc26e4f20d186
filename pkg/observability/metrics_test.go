package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnLookup(ctx, &domain.LookupEvent{Found: true, Source: domain.SourceSuffix, Duration: time.Millisecond})
	hooks.OnLookup(ctx, &domain.LookupEvent{Found: false, Duration: time.Millisecond})
	hooks.OnLookup(ctx, &domain.LookupEvent{Found: true, Source: domain.SourceSuffix})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("hit", "suffix")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("miss", "none")))

	hooks.OnFingerprint(ctx, &domain.FingerprintEvent{Bytes: 100})
	hooks.OnFingerprint(ctx, &domain.FingerprintEvent{Bytes: 100, CacheHit: true})
	hooks.OnFingerprint(ctx, &domain.FingerprintEvent{IsError: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fingerprints.WithLabelValues("computed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fingerprints.WithLabelValues("cached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fingerprints.WithLabelValues("error")))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.HashedBytes))

	count, err := testutil.GatherAndCount(reg, "pathfinder_lookup_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)
	assert.Panics(t, func() { observability.NewMetrics(reg) })
}
