package domain

import (
	"errors"
	"fmt"
)

// ErrNoActiveDocument is returned when a request needs a host document but
// none is active. Handlers drop the request with a log entry.
var ErrNoActiveDocument = errors.New("no active document")

// ErrTemplateNotFound is returned when a template ID cannot be resolved in
// its namespace.
var ErrTemplateNotFound = errors.New("template not found")

// ErrPathTraversal is returned when a template ID contains path-separator
// components that would escape the store root.
var ErrPathTraversal = errors.New("template id rejected: path traversal")

// ErrMalformedRequest is returned when an inbound message body cannot be
// decoded. No partial processing happens on this path.
var ErrMalformedRequest = errors.New("malformed request")

// ErrItemNotFound is returned when a timeline item name cannot be located.
var ErrItemNotFound = errors.New("timeline item not found")

// BootstrapError is fatal to an Apply: the unit-appropriate starting
// document could not be materialized. The fingerprint is never set on this
// path and no updates are applied.
type BootstrapError struct {
	Unit Unit
	Err  error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("bootstrap failed for %s starting document: %v", e.Unit, e.Err)
}

func (e *BootstrapError) Unwrap() error { return e.Err }
