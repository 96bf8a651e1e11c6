package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// Metrics holds the bridge's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	messagesIn    *prometheus.CounterVec
	messagesOut   *prometheus.CounterVec
	drainDuration *prometheus.HistogramVec
	drainErrors   *prometheus.CounterVec
	suppressions  *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		messagesIn: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fretbridge_messages_in_total",
				Help: "Inbound UI messages by action",
			},
			[]string{"action"},
		),
		messagesOut: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fretbridge_messages_out_total",
				Help: "Outbound UI messages by action",
			},
			[]string{"action"},
		),
		drainDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "fretbridge_drain_duration_seconds",
				Help: "Duration of mailbox drains by category",
			},
			[]string{"category"},
		),
		drainErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fretbridge_drain_errors_total",
				Help: "Failed mailbox drains by category",
			},
			[]string{"category"},
		),
		suppressions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fretbridge_timeline_suppressions_total",
				Help: "Timeline suppression attempts by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
	m.registry.MustRegister(
		m.messagesIn, m.messagesOut,
		m.drainDuration, m.drainErrors,
		m.suppressions,
	)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors. Compose with
// other hook sets before handing them to the bridge.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMessageIn: func(_ context.Context, e *domain.MessageEvent) {
			m.messagesIn.WithLabelValues(e.Action).Inc()
		},
		OnMessageOut: func(_ context.Context, e *domain.MessageEvent) {
			m.messagesOut.WithLabelValues(e.Action).Inc()
		},
		OnDrain: func(_ context.Context, e *domain.DrainEvent) {
			m.drainDuration.WithLabelValues(e.Category).Observe(e.Duration.Seconds())
			if e.IsError {
				m.drainErrors.WithLabelValues(e.Category).Inc()
			}
		},
		OnSuppress: func(_ context.Context, e *domain.SuppressEvent) {
			outcome := "ok"
			if e.IsError {
				outcome = "error"
			}
			m.suppressions.WithLabelValues(string(e.Kind), outcome).Inc()
		},
	}
}

// Handler serves the scrape endpoint for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for callers that add their own
// collectors next to the bridge's.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Merge combines hook sets so every non-nil callback fires. Later sets run
// after earlier ones.
func Merge(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var merged domain.LifecycleHooks
	for _, hooks := range sets {
		merged = merge2(merged, hooks)
	}
	return merged
}

func merge2(a, b domain.LifecycleHooks) domain.LifecycleHooks {
	out := a
	if b.OnMessageIn != nil {
		prev := out.OnMessageIn
		out.OnMessageIn = func(ctx context.Context, e *domain.MessageEvent) {
			if prev != nil {
				prev(ctx, e)
			}
			b.OnMessageIn(ctx, e)
		}
	}
	if b.OnMessageOut != nil {
		prev := out.OnMessageOut
		out.OnMessageOut = func(ctx context.Context, e *domain.MessageEvent) {
			if prev != nil {
				prev(ctx, e)
			}
			b.OnMessageOut(ctx, e)
		}
	}
	if b.OnDrain != nil {
		prev := out.OnDrain
		out.OnDrain = func(ctx context.Context, e *domain.DrainEvent) {
			if prev != nil {
				prev(ctx, e)
			}
			b.OnDrain(ctx, e)
		}
	}
	if b.OnSuppress != nil {
		prev := out.OnSuppress
		out.OnSuppress = func(ctx context.Context, e *domain.SuppressEvent) {
			if prev != nil {
				prev(ctx, e)
			}
			b.OnSuppress(ctx, e)
		}
	}
	return out
}
