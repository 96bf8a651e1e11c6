/*
Package observability turns bridge lifecycle events into Prometheus
metrics.

Metrics owns the collectors and exposes them two ways: Hooks returns a
domain.LifecycleHooks set that records every message, drain, and
suppression attempt, and Handler serves the scrape endpoint. The hooks
are cheap enough to leave enabled in production.
*/
package observability
