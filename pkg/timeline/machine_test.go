package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthierlabs/fretbridge/pkg/adapters/memory"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/timeline"
)

func fretboardTimeline() *memory.Timeline {
	return memory.NewTimeline(
		memory.Feature("BoardSketch", "adsk::fusion::Sketch"),
		memory.Group("Fret Slots",
			memory.Feature("Slot1", "adsk::fusion::ExtrudeFeature"),
			memory.Feature("Slot2", "adsk::fusion::ExtrudeFeature"),
		),
		memory.Feature("RadiusCut", "adsk::fusion::LoftFeature"),
	)
}

func TestItemsResolvesGroupChildren(t *testing.T) {
	m := timeline.NewMachine()
	items := m.Items(fretboardTimeline())

	require.Len(t, items, 3)
	assert.Equal(t, "BoardSketch", items[0].Name)
	assert.Equal(t, domain.KindFeature, items[0].Kind)
	assert.Equal(t, "Sketch", items[0].Category)

	group := items[1]
	assert.Equal(t, domain.KindGroup, group.Kind)
	assert.Empty(t, group.Category)
	require.Len(t, group.Children, 2)
	assert.Equal(t, "Slot1", group.Children[0].Name)
	assert.Equal(t, "Extrude", group.Children[0].Category)

	// Group members never reappear as top-level items.
	assert.Equal(t, "RadiusCut", items[2].Name)
}

func TestCollapsedGroupFallsBackToIndex(t *testing.T) {
	tl := memory.NewTimeline(
		memory.Group("Inlays",
			memory.Feature("Dot1", "adsk::fusion::ExtrudeFeature"),
			memory.Feature("Dot2", "adsk::fusion::ExtrudeFeature"),
		).Collapse(),
	)

	m := timeline.NewMachine()
	items := m.Items(tl)

	require.Len(t, items, 1)
	require.Len(t, items[0].Children, 2)
	assert.Equal(t, "Dot1", items[0].Children[0].Name)
}

func TestCollapsedGroupFallsBackToRangeScan(t *testing.T) {
	tl := memory.NewTimeline(
		memory.Feature("BoardSketch", "adsk::fusion::Sketch"),
		memory.Group("Inlays",
			memory.Feature("Dot1", "adsk::fusion::ExtrudeFeature"),
			memory.Feature("Dot2", "adsk::fusion::ExtrudeFeature"),
		).Collapse(),
	).DisableGroupsIndex()

	m := timeline.NewMachine()
	items := m.Items(tl)

	require.Len(t, items, 2)
	group := items[1]
	require.Len(t, group.Children, 2)
	// The range scan excludes the header's own position.
	assert.Equal(t, "Dot1", group.Children[0].Name)
	assert.Equal(t, "Dot2", group.Children[1].Name)
}

func TestGroupIndexDisambiguatesSameNames(t *testing.T) {
	first := memory.Group("Frets", memory.Feature("F1", "adsk::fusion::ExtrudeFeature"))
	second := memory.Group("Frets", memory.Feature("F13", "adsk::fusion::ExtrudeFeature")).Collapse()
	tl := memory.NewTimeline(first, second)

	resolver := &timeline.GroupIndexResolver{}
	children, err := resolver.Resolve(tl, second)
	require.NoError(t, err)
	require.Len(t, children, 1)
	// The candidate whose [start, end] range covers the header's position
	// wins over the first same-named record.
	assert.Equal(t, "F13", children[0].Name())
}

func TestFindByNameSearchesChildren(t *testing.T) {
	m := timeline.NewMachine()
	tl := fretboardTimeline().DisableNameIndex()

	entry, ok := m.FindByName(tl, "Slot2")
	require.True(t, ok)
	assert.Equal(t, "Slot2", entry.Name())

	_, ok = m.FindByName(tl, "NoSuchItem")
	assert.False(t, ok)
}

func TestFindByPatternReturnsAllMatches(t *testing.T) {
	m := timeline.NewMachine()
	tl := fretboardTimeline()

	matches, err := m.FindByPattern(tl, "slot")
	require.NoError(t, err)
	// Case-insensitive, header and children alike.
	require.Len(t, matches, 3)

	matches, err = m.FindByPattern(tl, "^slot[0-9]+$")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	_, err = m.FindByPattern(tl, "([")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"adsk::fusion::Sketch":                    "Sketch",
		"adsk::fusion::ExtrudeFeature":            "Extrude",
		"adsk::fusion::FilletFeature":             "Fillet",
		"adsk::fusion::CircularPatternFeature":    "Pattern",
		"adsk::fusion::RectangularPatternFeature": "Pattern",
		"adsk::fusion::ConstructionPlane":         "Plane",
		"adsk::fusion::SomeFutureFeature":         "Feature",
		"BareTypeName":                            "Feature",
		"":                                        "Feature",
	}
	for objectType, want := range cases {
		assert.Equal(t, want, timeline.Classify(objectType), objectType)
	}
}
