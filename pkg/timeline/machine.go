package timeline

import (
	"log/slog"

	"github.com/luthierlabs/fretbridge/internal/logging"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// Machine mutates and inspects a document timeline. It holds no document
// state itself; every method takes the timeline port so the machine can be
// shared across documents.
type Machine struct {
	logger    *slog.Logger
	resolvers []ChildResolver
}

// Option configures the Machine.
type Option func(*Machine)

// WithLogger sets the structured logger for soft failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithResolvers overrides the group-membership strategies. Order is
// priority order; the first strategy that yields children wins.
func WithResolvers(resolvers ...ChildResolver) Option {
	return func(m *Machine) {
		m.resolvers = resolvers
	}
}

// NewMachine creates a Machine with the default three-tier membership
// resolution: direct iteration, groups-by-name index, position-range scan.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		logger: logging.NewNop(),
		resolvers: []ChildResolver{
			&DirectResolver{},
			&GroupIndexResolver{},
			&RangeScanResolver{},
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Items returns every timeline item, groups carrying their fully resolved
// children. Entries that fail to read are logged and skipped; the visual
// collapse state of a group never hides its members.
func (m *Machine) Items(tl ports.Timeline) []domain.TimelineItem {
	items := make([]domain.TimelineItem, 0, tl.Count())
	for i := 0; i < tl.Count(); i++ {
		entry, err := tl.Entry(i)
		if err != nil {
			m.logger.Warn("timeline entry unreadable", "index", i, "err", err)
			continue
		}
		items = append(items, m.snapshot(tl, entry))
		// Group members occupy the positions inside the header's range;
		// they were just captured as children, so skip past them.
		if entry.IsGroup() && entry.EndIndex() > i {
			i = entry.EndIndex()
		}
	}
	return items
}

// snapshot converts a port entry into the bridge-facing item, resolving
// group children through the strategy chain.
func (m *Machine) snapshot(tl ports.Timeline, entry ports.TimelineEntry) domain.TimelineItem {
	item := domain.TimelineItem{
		Name:       entry.Name(),
		Kind:       domain.KindFeature,
		Category:   Classify(entry.ObjectType()),
		Suppressed: entry.Suppressed(),
		Index:      entry.Index(),
	}
	if entry.IsGroup() {
		item.Kind = domain.KindGroup
		item.Category = ""
		for _, child := range m.resolveChildren(tl, entry) {
			item.Children = append(item.Children, domain.TimelineItem{
				Name:       child.Name(),
				Kind:       kindOf(child),
				Category:   categoryOf(child),
				Suppressed: child.Suppressed(),
				Index:      child.Index(),
			})
		}
	}
	return item
}

// resolveChildren walks the strategy chain in priority order; the first
// strategy returning a non-empty membership wins. An empty result after all
// tiers is returned as-is (the group may genuinely be empty).
func (m *Machine) resolveChildren(tl ports.Timeline, group ports.TimelineEntry) []ports.TimelineEntry {
	for _, r := range m.resolvers {
		children, err := r.Resolve(tl, group)
		if err != nil {
			m.logger.Debug("group membership strategy failed",
				"strategy", r.Name(), "group", group.Name(), "err", err)
			continue
		}
		if len(children) > 0 {
			return children
		}
	}
	return nil
}

func kindOf(e ports.TimelineEntry) domain.ItemKind {
	if e.IsGroup() {
		return domain.KindGroup
	}
	return domain.KindFeature
}

func categoryOf(e ports.TimelineEntry) string {
	if e.IsGroup() {
		return ""
	}
	return Classify(e.ObjectType())
}

// setSuppressed flips suppression on an entry, falling back to the
// underlying entity when the timeline object rejects the direct write.
func (m *Machine) setSuppressed(entry ports.TimelineEntry, suppressed bool) error {
	err := entry.SetSuppressed(suppressed)
	if err == nil {
		return nil
	}
	if entity := entry.Entity(); entity != nil {
		if entityErr := entity.SetSuppressed(suppressed); entityErr == nil {
			m.logger.Debug("suppression applied via entity fallback",
				"item", entry.Name(), "direct_err", err)
			return nil
		}
	}
	return err
}
