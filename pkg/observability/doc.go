/*
Package observability exposes pathfinder activity as Prometheus metrics.

Metrics are fed by domain.LifecycleHooks, so the resolver and fingerprinter
stay unaware of Prometheus:

	m := observability.NewMetrics(prometheus.NewRegistry())
	sp := paths.New(paths.WithHooks(m.Hooks()))
*/
package observability
