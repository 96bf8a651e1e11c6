package memory

import (
	"fmt"
	"sync"

	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// Entry is one timeline position: a feature or a group header. Zero-value
// knobs give fully working host behavior; the Fail*/Collapse methods
// simulate the host quirks the membership fallback chain exists for.
type Entry struct {
	mu         sync.Mutex
	name       string
	index      int
	isGroup    bool
	suppressed bool
	objectType string
	children   []*Entry
	start, end int

	failSuppress bool
	entity       ports.Suppressible
	collapsed    bool
}

// Feature builds an unattached feature entry. Indices are assigned when
// the entry joins a timeline.
func Feature(name, objectType string) *Entry {
	return &Entry{name: name, objectType: objectType, start: -1, end: -1}
}

// Group builds a group header owning the given children.
func Group(name string, children ...*Entry) *Entry {
	return &Entry{name: name, isGroup: true, children: children}
}

func (e *Entry) Name() string  { return e.name }
func (e *Entry) Index() int    { return e.index }
func (e *Entry) IsGroup() bool { return e.isGroup }

func (e *Entry) Suppressed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suppressed
}

func (e *Entry) SetSuppressed(suppressed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failSuppress {
		return fmt.Errorf("timeline object %q rejected suppression write", e.name)
	}
	e.suppressed = suppressed
	return nil
}

func (e *Entry) Entity() ports.Suppressible { return e.entity }

func (e *Entry) ObjectType() string {
	if e.isGroup {
		return ""
	}
	return e.objectType
}

func (e *Entry) Children() ([]ports.TimelineEntry, error) {
	if !e.isGroup {
		return nil, fmt.Errorf("%q is not a group", e.name)
	}
	if e.collapsed {
		return nil, fmt.Errorf("group %q iteration failed (collapsed)", e.name)
	}
	return asPorts(e.children), nil
}

func (e *Entry) StartIndex() int { return e.start }
func (e *Entry) EndIndex() int   { return e.end }

// FailSuppress makes the direct suppression write fail with no entity to
// fall back to.
func (e *Entry) FailSuppress() *Entry {
	e.failSuppress = true
	e.entity = nil
	return e
}

// FailSuppressWithEntity makes the direct write fail while exposing a
// working underlying entity.
func (e *Entry) FailSuppressWithEntity() *Entry {
	e.failSuppress = true
	e.entity = &entityShim{e}
	return e
}

// Collapse makes the group's own child iteration fail, the way the host
// does when the group is presented as visually collapsed.
func (e *Entry) Collapse() *Entry {
	e.collapsed = true
	return e
}

// entityShim writes suppression through to the entry, bypassing the
// injected direct-write failure.
type entityShim struct {
	entry *Entry
}

func (s *entityShim) SetSuppressed(suppressed bool) error {
	s.entry.mu.Lock()
	defer s.entry.mu.Unlock()
	s.entry.suppressed = suppressed
	return nil
}

// Timeline is an in-memory ports.Timeline over a flat position sequence:
// group headers are immediately followed by their members, matching the
// host's expanded presentation.
type Timeline struct {
	flat        []*Entry
	headers     []*Entry
	noNameIndex bool
	noGroups    bool
}

// NewTimeline lays out the given top-level entries, assigning flat
// position indices and group ranges.
func NewTimeline(entries ...*Entry) *Timeline {
	tl := &Timeline{}
	for _, e := range entries {
		e.index = len(tl.flat)
		tl.flat = append(tl.flat, e)
		if !e.isGroup {
			continue
		}
		e.start = e.index
		tl.headers = append(tl.headers, e)
		for _, child := range e.children {
			child.index = len(tl.flat)
			tl.flat = append(tl.flat, child)
		}
		e.end = e.index + len(e.children)
	}
	return tl
}

// DisableNameIndex simulates a host without itemByName support.
func (t *Timeline) DisableNameIndex() *Timeline {
	t.noNameIndex = true
	return t
}

// DisableGroupsIndex simulates a host whose groups collection is
// unavailable, forcing the position-range fallback.
func (t *Timeline) DisableGroupsIndex() *Timeline {
	t.noGroups = true
	return t
}

func (t *Timeline) Count() int { return len(t.flat) }

func (t *Timeline) Entry(i int) (ports.TimelineEntry, error) {
	if i < 0 || i >= len(t.flat) {
		return nil, fmt.Errorf("timeline position %d out of range", i)
	}
	return t.flat[i], nil
}

func (t *Timeline) EntryByName(name string) (ports.TimelineEntry, bool) {
	if t.noNameIndex {
		return nil, false
	}
	for _, e := range t.flat {
		if e.name == name {
			return e, true
		}
	}
	return nil, false
}

func (t *Timeline) Groups() ([]ports.GroupRecord, error) {
	if t.noGroups {
		return nil, fmt.Errorf("groups collection unavailable")
	}
	records := make([]ports.GroupRecord, 0, len(t.headers))
	for _, h := range t.headers {
		records = append(records, &groupRecord{h})
	}
	return records, nil
}

// groupRecord exposes a header through the groups-by-name index surface.
// Unlike the header's own Children, the record iterates regardless of the
// collapse quirk; the index is a separate host collection.
type groupRecord struct {
	header *Entry
}

func (r *groupRecord) Name() string    { return r.header.name }
func (r *groupRecord) StartIndex() int { return r.header.start }
func (r *groupRecord) EndIndex() int   { return r.header.end }

func (r *groupRecord) Children() ([]ports.TimelineEntry, error) {
	return asPorts(r.header.children), nil
}

func asPorts(entries []*Entry) []ports.TimelineEntry {
	out := make([]ports.TimelineEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	return out
}
