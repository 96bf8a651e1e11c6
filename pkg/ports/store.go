package ports

import (
	"context"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// TemplateStore persists user templates as flat records keyed by a slug
// derived from the template name.
type TemplateStore interface {
	// Save writes a template and returns the identifier it was stored
	// under. When the derived slug is taken by a record with a different
	// name, an incrementing numeric suffix resolves the collision instead
	// of overwriting.
	Save(ctx context.Context, tpl domain.Template) (string, error)

	// Load retrieves a template by identifier. Returns
	// domain.ErrTemplateNotFound if absent and domain.ErrPathTraversal
	// before any resolution when the identifier carries path components.
	Load(ctx context.Context, id string) (*domain.Template, error)

	// Delete removes a template. Identifier validation matches Load;
	// deleting a missing record returns domain.ErrTemplateNotFound so the
	// caller can log the no-op.
	Delete(ctx context.Context, id string) error

	// List enumerates every stored template, sorted by name.
	List(ctx context.Context) ([]domain.Template, error)
}

// PresetLibrary is the read-only namespace of shipped presets. It shares
// the Load/List surface of TemplateStore but never mutates.
type PresetLibrary interface {
	Load(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
}
