package ports

import (
	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// Document is the bridge's view of one open host document. All mutating
// methods may only be called from the document loop (see pkg/mailbox); the
// read methods are safe from any context the host allows.
type Document interface {
	// Name identifies the document for owner tracking.
	Name() string

	// Unit returns the document's default length unit.
	Unit() domain.Unit

	// SetUnit changes the document's default length unit.
	SetUnit(unit domain.Unit) error

	// Parameters lists every user parameter on the document.
	Parameters() ([]domain.LiveParameter, error)

	// Parameter looks up a single user parameter by name.
	Parameter(name string) (domain.LiveParameter, bool)

	// SetExpression updates the expression of an existing parameter.
	SetExpression(name, expression string) error

	// AddParameter creates a new user parameter.
	AddParameter(p domain.LiveParameter) error

	// RenameParameter changes a parameter's name, keeping its value.
	RenameParameter(oldName, newName string) error

	// SetComment replaces a parameter's comment field.
	SetComment(name, comment string) error

	// DeleteParameter removes a user parameter.
	DeleteParameter(name string) error

	// Timeline returns the document's construction history.
	Timeline() Timeline
}

// Timeline is the ordered sequence of construction steps.
type Timeline interface {
	// Count returns the number of top-level entries.
	Count() int

	// Entry returns the top-level entry at a position index.
	Entry(i int) (TimelineEntry, error)

	// EntryByName performs a direct name-index lookup if the host supports
	// one. ok is false both when the name is absent and when no index
	// exists; callers fall back to a scan either way.
	EntryByName(name string) (TimelineEntry, bool)

	// Groups returns the host's separate groups-by-name index. Same-named
	// groups may appear more than once.
	Groups() ([]GroupRecord, error)
}

// TimelineEntry is one feature or group header on the timeline.
type TimelineEntry interface {
	Name() string
	Index() int
	IsGroup() bool
	Suppressed() bool

	// SetSuppressed flips the entry's suppression state directly on the
	// timeline object.
	SetSuppressed(suppressed bool) error

	// Entity returns the underlying native object for fallback suppression,
	// or nil when the entry exposes none.
	Entity() Suppressible

	// ObjectType is the host-native type name of the underlying entity,
	// e.g. "adsk::fusion::ExtrudeFeature". Empty for groups.
	ObjectType() string

	// Children iterates the entry's own child collection. Only meaningful
	// for groups; the call may fail or return nothing when the host
	// presents the group as collapsed.
	Children() ([]TimelineEntry, error)

	// StartIndex and EndIndex bound the positions a group spans, header
	// included. Both are -1 for features.
	StartIndex() int
	EndIndex() int
}

// Suppressible is the minimal fallback surface for suppression when the
// timeline object itself rejects the direct write.
type Suppressible interface {
	SetSuppressed(suppressed bool) error
}

// GroupRecord is one candidate from the groups-by-name index.
type GroupRecord interface {
	Name() string
	StartIndex() int
	EndIndex() int
	Children() ([]TimelineEntry, error)
}
