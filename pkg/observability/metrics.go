package observability

import (
	"context"

	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors registered by NewMetrics.
type Metrics struct {
	Lookups        *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	Fingerprints   *prometheus.CounterVec
	HashedBytes    prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// It panics if registration fails, as prometheus.MustRegister does.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathfinder_lookups_total",
				Help: "Total number of file lookups by result and source",
			},
			[]string{"result", "source"},
		),
		LookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathfinder_lookup_duration_seconds",
				Help:    "Duration of file lookups",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"result"},
		),
		Fingerprints: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathfinder_fingerprints_total",
				Help: "Total number of fingerprints by cache outcome",
			},
			[]string{"outcome"},
		),
		HashedBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pathfinder_hashed_bytes_total",
				Help: "Bytes read to compute digests",
			},
		),
	}
	reg.MustRegister(m.Lookups, m.LookupDuration, m.Fingerprints, m.HashedBytes)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLookup: func(_ context.Context, e *domain.LookupEvent) {
			result := "miss"
			if e.Found {
				result = "hit"
			}
			source := string(e.Source)
			if source == "" {
				source = "none"
			}
			m.Lookups.WithLabelValues(result, source).Inc()
			m.LookupDuration.WithLabelValues(result).Observe(e.Duration.Seconds())
		},
		OnFingerprint: func(_ context.Context, e *domain.FingerprintEvent) {
			switch {
			case e.IsError:
				m.Fingerprints.WithLabelValues("error").Inc()
			case e.CacheHit:
				m.Fingerprints.WithLabelValues("cached").Inc()
			default:
				m.Fingerprints.WithLabelValues("computed").Inc()
				m.HashedBytes.Add(float64(e.Bytes))
			}
		},
	}
}
