package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthierlabs/fretbridge/pkg/adapters/memory"
	"github.com/luthierlabs/fretbridge/pkg/bridge"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/reconcile"
)

func newTestServer(t *testing.T) (*Server, *memory.Document) {
	t.Helper()
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: domain.FingerprintParam, Expression: "1.0.0"}))
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: "NumFrets", Expression: "22"}))
	doc.SetTimeline(memory.NewTimeline(
		memory.Feature("BoardSketch", "adsk::fusion::Sketch"),
		memory.Feature("RadiusCut", "adsk::fusion::ExtrudeFeature"),
	))
	host := memory.NewHost(memory.WithActiveDocument(doc))
	return NewServer(bridge.New(host)), doc
}

func TestDispatchReadsBackModelState(t *testing.T) {
	s, _ := newTestServer(t)

	payload, err := s.dispatch(context.Background(), bridge.ActionGetModelState, nil, bridge.PushModelState)
	require.NoError(t, err)
	state := payload.(*reconcile.ModelState)
	assert.Equal(t, reconcile.ModeLive, state.Mode)
}

func TestDispatchDrainsMutations(t *testing.T) {
	s, doc := newTestServer(t)

	payload := map[string]any{
		"updates": map[string]string{"NumFrets": "24"},
		"creates": []map[string]string{},
	}
	result, err := s.dispatch(context.Background(), bridge.ActionApplyParams, payload, bridge.PushModelState)
	require.NoError(t, err)
	require.NotNil(t, result)

	p, ok := doc.Parameter("NumFrets")
	require.True(t, ok)
	assert.Equal(t, "24", p.Expression, "tool call drains its own mutation")
}

func TestDispatchTimelineBatch(t *testing.T) {
	s, doc := newTestServer(t)

	payload := map[string]any{
		"changes": []map[string]any{
			{"name": "RadiusCut", "type": "Feature", "suppressed": true},
		},
	}
	result, err := s.dispatch(context.Background(), bridge.ActionApplyTimeline, payload, bridge.TimelineOperationResult)
	require.NoError(t, err)

	batch := result.(domain.TimelineBatchResult)
	assert.True(t, batch.Success)
	assert.Equal(t, 1, batch.SuccessCount)

	entry, ok := doc.Timeline().EntryByName("RadiusCut")
	require.True(t, ok)
	assert.True(t, entry.Suppressed())
}

func TestDispatchReportsMissingResult(t *testing.T) {
	s, _ := newTestServer(t)

	// An unknown action produces no push under the wanted key.
	_, err := s.dispatch(context.Background(), "NO_SUCH_ACTION", nil, bridge.PushModelState)
	assert.Error(t, err)
}
