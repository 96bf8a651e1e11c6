package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthierlabs/fretbridge/pkg/adapters/memory"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/timeline"
)

func TestSuppressAndToggle(t *testing.T) {
	m := timeline.NewMachine()
	tl := fretboardTimeline()

	require.NoError(t, m.Suppress(tl, "RadiusCut"))
	entry, ok := m.FindByName(tl, "RadiusCut")
	require.True(t, ok)
	assert.True(t, entry.Suppressed())

	require.NoError(t, m.Unsuppress(tl, "RadiusCut"))
	assert.False(t, entry.Suppressed())

	state, err := m.Toggle(tl, "RadiusCut")
	require.NoError(t, err)
	assert.True(t, state)

	state, err = m.Toggle(tl, "RadiusCut")
	require.NoError(t, err)
	assert.False(t, state)

	assert.ErrorIs(t, m.Suppress(tl, "Ghost"), domain.ErrItemNotFound)
}

func TestEntityFallbackSuppression(t *testing.T) {
	stubborn := memory.Feature("StubbornCut", "adsk::fusion::ExtrudeFeature").FailSuppressWithEntity()
	tl := memory.NewTimeline(stubborn)

	m := timeline.NewMachine()
	require.NoError(t, m.Suppress(tl, "StubbornCut"))
	assert.True(t, stubborn.Suppressed())

	// No entity to fall back to: the direct error surfaces.
	broken := memory.Feature("BrokenCut", "adsk::fusion::ExtrudeFeature").FailSuppress()
	tl = memory.NewTimeline(broken)
	assert.Error(t, m.Suppress(tl, "BrokenCut"))
}

func TestGroupCascade(t *testing.T) {
	c1 := memory.Feature("Slot1", "adsk::fusion::ExtrudeFeature")
	c2 := memory.Feature("Slot2", "adsk::fusion::ExtrudeFeature")
	tl := memory.NewTimeline(memory.Group("Fret Slots", c1, c2))

	m := timeline.NewMachine()
	require.NoError(t, m.SetGroup(tl, "Fret Slots", true))

	header, _ := m.FindByName(tl, "Fret Slots")
	assert.True(t, header.Suppressed())
	assert.True(t, c1.Suppressed())
	assert.True(t, c2.Suppressed())

	require.NoError(t, m.SetGroup(tl, "Fret Slots", false))
	assert.False(t, c1.Suppressed())
	assert.False(t, c2.Suppressed())
}

func TestGroupCascadeChildFailuresStaySoft(t *testing.T) {
	children := []*memory.Entry{
		memory.Feature("S1", "adsk::fusion::ExtrudeFeature"),
		memory.Feature("S2", "adsk::fusion::ExtrudeFeature").FailSuppress(),
		memory.Feature("S3", "adsk::fusion::ExtrudeFeature"),
		memory.Feature("S4", "adsk::fusion::ExtrudeFeature").FailSuppress(),
		memory.Feature("S5", "adsk::fusion::ExtrudeFeature"),
	}
	tl := memory.NewTimeline(memory.Group("Slots", children...))

	m := timeline.NewMachine()
	result := m.ApplyBatch(tl, []domain.TimelineChange{
		{Name: "Slots", Kind: domain.KindGroup, Suppressed: true},
	})

	// The header succeeded, so the change succeeds; the two child failures
	// are log-only and never surface in the batch result.
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Empty(t, result.Failed)

	assert.True(t, children[0].Suppressed())
	assert.False(t, children[1].Suppressed())
	assert.True(t, children[2].Suppressed())
	assert.False(t, children[3].Suppressed())
	assert.True(t, children[4].Suppressed())
}

func TestGroupHeaderFailureIsReported(t *testing.T) {
	child := memory.Feature("S1", "adsk::fusion::ExtrudeFeature")
	header := memory.Group("Slots", child).FailSuppress()
	tl := memory.NewTimeline(header)

	m := timeline.NewMachine()
	result := m.ApplyBatch(tl, []domain.TimelineChange{
		{Name: "Slots", Kind: domain.KindGroup, Suppressed: true},
	})

	assert.False(t, result.Success)
	assert.Equal(t, []string{"Slots"}, result.Failed)
}

func TestApplyBatchMixedChanges(t *testing.T) {
	m := timeline.NewMachine()
	tl := fretboardTimeline()

	result := m.ApplyBatch(tl, []domain.TimelineChange{
		{Name: "BoardSketch", Kind: domain.KindFeature, Suppressed: true},
		{Name: "Ghost", Kind: domain.KindFeature, Suppressed: true},
		{Name: "Fret Slots", Kind: domain.KindGroup, Suppressed: true},
	})

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, []string{"Ghost"}, result.Failed)
	assert.Equal(t, "Applied 2 change(s) (1 failed)", result.Message)
}

func TestSetByPattern(t *testing.T) {
	m := timeline.NewMachine()
	tl := fretboardTimeline()

	count, err := m.SetByPattern(tl, "^slot[0-9]+$", true)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	summary := m.Summarize(tl)
	assert.Equal(t, 2, summary.SuppressedCount)
}

func TestSummarize(t *testing.T) {
	m := timeline.NewMachine()
	tl := fretboardTimeline()

	require.NoError(t, m.Suppress(tl, "Slot1"))
	require.NoError(t, m.Suppress(tl, "RadiusCut"))

	s := m.Summarize(tl)
	assert.Equal(t, 5, s.TotalItems)
	assert.Equal(t, 1, s.GroupCount)
	assert.Equal(t, 4, s.FeatureCount)
	assert.Equal(t, 2, s.SuppressedCount)
	assert.Equal(t, 3, s.ActiveCount)
}

func TestState(t *testing.T) {
	m := timeline.NewMachine()
	tl := fretboardTimeline()

	state, ok := m.State(tl, "Fret Slots")
	require.True(t, ok)
	assert.Equal(t, domain.KindGroup, state.Kind)
	assert.Equal(t, 2, state.GroupSize)

	state, ok = m.State(tl, "BoardSketch")
	require.True(t, ok)
	assert.Equal(t, domain.KindFeature, state.Kind)
	assert.Zero(t, state.GroupSize)

	_, ok = m.State(tl, "Ghost")
	assert.False(t, ok)
}
