package timeline

import (
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// Summarize counts timeline items. Group children count as features and
// contribute to the active/suppressed totals; the group header itself
// counts toward the group total only.
func (m *Machine) Summarize(tl ports.Timeline) domain.TimelineSummary {
	var s domain.TimelineSummary

	tally := func(suppressed bool) {
		if suppressed {
			s.SuppressedCount++
		} else {
			s.ActiveCount++
		}
	}

	for _, item := range m.Items(tl) {
		if item.Kind == domain.KindGroup {
			s.GroupCount++
			tally(item.Suppressed)
			for _, child := range item.Children {
				s.FeatureCount++
				tally(child.Suppressed)
			}
			continue
		}
		s.FeatureCount++
		tally(item.Suppressed)
	}

	s.TotalItems = s.GroupCount + s.FeatureCount
	return s
}

// ItemState is the detailed state of a single item.
type ItemState struct {
	Name       string          `json:"name"`
	Kind       domain.ItemKind `json:"type"`
	Suppressed bool            `json:"suppressed"`
	Index      int             `json:"index"`
	GroupSize  int             `json:"group_size,omitempty"`
}

// State returns the detailed state of a named item, including member count
// for groups.
func (m *Machine) State(tl ports.Timeline, name string) (*ItemState, bool) {
	entry, ok := m.FindByName(tl, name)
	if !ok {
		return nil, false
	}
	state := &ItemState{
		Name:       entry.Name(),
		Kind:       kindOf(entry),
		Suppressed: entry.Suppressed(),
		Index:      entry.Index(),
	}
	if entry.IsGroup() {
		state.GroupSize = len(m.resolveChildren(tl, entry))
	}
	return state, true
}
