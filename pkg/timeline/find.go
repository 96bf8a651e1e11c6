package timeline

import (
	"fmt"
	"regexp"

	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// FindByName locates a timeline entry by exact name, searching group
// children too. A direct name index is tried first when the host provides
// one; otherwise the scan covers top-level entries and one level of group
// membership.
func (m *Machine) FindByName(tl ports.Timeline, name string) (ports.TimelineEntry, bool) {
	if entry, ok := tl.EntryByName(name); ok {
		return entry, true
	}

	for i := 0; i < tl.Count(); i++ {
		entry, err := tl.Entry(i)
		if err != nil {
			continue
		}
		if entry.Name() == name {
			return entry, true
		}
		if entry.IsGroup() {
			for _, child := range m.resolveChildren(tl, entry) {
				if child.Name() == name {
					return child, true
				}
			}
			if entry.EndIndex() > i {
				i = entry.EndIndex()
			}
		}
	}
	return nil, false
}

// FindByPattern returns every entry whose name matches the pattern,
// case-insensitive, across top-level entries and group children. All
// matches are returned, not just the first.
func (m *Machine) FindByPattern(tl ports.Timeline, pattern string) ([]ports.TimelineEntry, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var matches []ports.TimelineEntry
	for i := 0; i < tl.Count(); i++ {
		entry, err := tl.Entry(i)
		if err != nil {
			continue
		}
		if re.MatchString(entry.Name()) {
			matches = append(matches, entry)
		}
		if entry.IsGroup() {
			for _, child := range m.resolveChildren(tl, entry) {
				if re.MatchString(child.Name()) {
					matches = append(matches, child)
				}
			}
			if entry.EndIndex() > i {
				i = entry.EndIndex()
			}
		}
	}
	return matches, nil
}
