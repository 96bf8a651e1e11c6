package timeline

import (
	"errors"
	"fmt"

	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// ChildResolver is one strategy for resolving a group's members. Strategies
// are tried in fixed priority order; the first success wins.
type ChildResolver interface {
	// Name identifies the strategy in logs.
	Name() string

	// Resolve returns the group's children. An error or empty result moves
	// the machine on to the next strategy.
	Resolve(tl ports.Timeline, group ports.TimelineEntry) ([]ports.TimelineEntry, error)
}

var errNotAGroup = errors.New("entry is not a group")

// DirectResolver iterates the group's own child collection. This is the
// host's primary interface and fails when the group is presented as
// collapsed or identity was lost after a re-query.
type DirectResolver struct{}

func (*DirectResolver) Name() string { return "direct" }

func (*DirectResolver) Resolve(_ ports.Timeline, group ports.TimelineEntry) ([]ports.TimelineEntry, error) {
	if !group.IsGroup() {
		return nil, errNotAGroup
	}
	return group.Children()
}

// GroupIndexResolver looks the group up in the host's separate
// groups-by-name index. Multiple same-named candidates are disambiguated by
// checking whether the original entry's position falls within the
// candidate's [start, end] range; without a match the first candidate is
// used.
type GroupIndexResolver struct{}

func (*GroupIndexResolver) Name() string { return "group_index" }

func (*GroupIndexResolver) Resolve(tl ports.Timeline, group ports.TimelineEntry) ([]ports.TimelineEntry, error) {
	if !group.IsGroup() {
		return nil, errNotAGroup
	}

	records, err := tl.Groups()
	if err != nil {
		return nil, fmt.Errorf("groups index: %w", err)
	}

	var matched ports.GroupRecord
	for _, candidate := range records {
		if candidate.Name() != group.Name() {
			continue
		}
		lo, hi := ordered(candidate.StartIndex(), candidate.EndIndex())
		if lo <= group.Index() && group.Index() <= hi {
			matched = candidate
			break
		}
		if matched == nil {
			matched = candidate
		}
	}
	if matched == nil {
		return nil, fmt.Errorf("group %q not present in index", group.Name())
	}
	return matched.Children()
}

// RangeScanResolver enumerates every top-level timeline position between
// the group's start and end index inclusive, excluding the position that is
// the group header itself. Last resort: it needs only raw position access.
type RangeScanResolver struct{}

func (*RangeScanResolver) Name() string { return "range_scan" }

func (*RangeScanResolver) Resolve(tl ports.Timeline, group ports.TimelineEntry) ([]ports.TimelineEntry, error) {
	if !group.IsGroup() {
		return nil, errNotAGroup
	}

	start, end := group.StartIndex(), group.EndIndex()
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("group %q has no position range", group.Name())
	}

	lo, hi := ordered(start, end)
	var children []ports.TimelineEntry
	for i := lo; i <= hi && i < tl.Count(); i++ {
		entry, err := tl.Entry(i)
		if err != nil {
			continue
		}
		if entry.IsGroup() && entry.Name() == group.Name() && entry.Index() == group.Index() {
			continue // the header itself
		}
		children = append(children, entry)
	}
	return children, nil
}

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
