package ports

import (
	"context"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// Host is the bridge's view of the application that owns documents.
type Host interface {
	// ActiveDocument returns the currently active document, or
	// domain.ErrNoActiveDocument.
	ActiveDocument() (Document, error)

	// Bootstrap materializes the unit-appropriate starting document and
	// activates it. Called on the document loop during a first apply; a
	// failure aborts the whole apply.
	Bootstrap(ctx context.Context, unit domain.Unit) (Document, error)

	// OpenURL opens a URL in the user's default browser.
	OpenURL(url string) error

	// OpenTemplatesFolder reveals the user-templates directory in the
	// platform file manager, creating it first if needed.
	OpenTemplatesFolder() error
}
