package observability_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/observability"
)

func TestMetricsHooksRecord(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnMessageIn(ctx, &domain.MessageEvent{Action: "APPLY_PARAMS"})
	hooks.OnMessageIn(ctx, &domain.MessageEvent{Action: "APPLY_PARAMS"})
	hooks.OnMessageOut(ctx, &domain.MessageEvent{Action: "PUSH_MODEL_STATE"})
	hooks.OnDrain(ctx, &domain.DrainEvent{Category: "apply", Duration: 5 * time.Millisecond})
	hooks.OnDrain(ctx, &domain.DrainEvent{Category: "apply", IsError: true})
	hooks.OnSuppress(ctx, &domain.SuppressEvent{Kind: domain.KindGroup, Suppressed: true})
	hooks.OnSuppress(ctx, &domain.SuppressEvent{Kind: domain.KindFeature, IsError: true})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `fretbridge_messages_in_total{action="APPLY_PARAMS"} 2`)
	assert.Contains(t, body, `fretbridge_messages_out_total{action="PUSH_MODEL_STATE"} 1`)
	assert.Contains(t, body, `fretbridge_drain_errors_total{category="apply"} 1`)
	assert.Contains(t, body, `fretbridge_timeline_suppressions_total{kind="Group",outcome="ok"} 1`)
	assert.Contains(t, body, `fretbridge_timeline_suppressions_total{kind="Feature",outcome="error"} 1`)
	assert.True(t, strings.Contains(body, "fretbridge_drain_duration_seconds"))
}

func TestMergeCombinesHookSets(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnMessageIn: func(context.Context, *domain.MessageEvent) { order = append(order, "a") },
	}
	b := domain.LifecycleHooks{
		OnMessageIn: func(context.Context, *domain.MessageEvent) { order = append(order, "b") },
		OnDrain:     func(context.Context, *domain.DrainEvent) { order = append(order, "b-drain") },
	}

	merged := observability.Merge(a, b)
	merged.OnMessageIn(context.Background(), &domain.MessageEvent{})
	merged.OnDrain(context.Background(), &domain.DrainEvent{})

	assert.Equal(t, []string{"a", "b", "b-drain"}, order)
	assert.Nil(t, merged.OnMessageOut)
	assert.Nil(t, merged.OnSuppress)
}
