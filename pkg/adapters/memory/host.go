package memory

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// SeedFunc produces the user parameters a freshly materialized starting
// document carries for the given unit.
type SeedFunc func(unit domain.Unit) []domain.LiveParameter

// Host is an in-memory ports.Host.
type Host struct {
	mu           sync.Mutex
	active       *Document
	seed         SeedFunc
	bootstrapErr error
	openedURLs   []string
	folderOpens  int
}

// HostOption configures the Host.
type HostOption func(*Host)

// WithActiveDocument sets the initially active document.
func WithActiveDocument(doc *Document) HostOption {
	return func(h *Host) {
		h.active = doc
	}
}

// WithSeed sets the parameter seed applied by Bootstrap.
func WithSeed(seed SeedFunc) HostOption {
	return func(h *Host) {
		h.seed = seed
	}
}

// NewHost creates a Host. Without options there is no active document and
// Bootstrap materializes an empty one.
func NewHost(opts ...HostOption) *Host {
	h := &Host{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// FailBootstrap makes the next Bootstrap calls fail with err.
func (h *Host) FailBootstrap(err error) {
	h.mu.Lock()
	h.bootstrapErr = err
	h.mu.Unlock()
}

func (h *Host) ActiveDocument() (ports.Document, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return nil, domain.ErrNoActiveDocument
	}
	return h.active, nil
}

func (h *Host) Bootstrap(ctx context.Context, unit domain.Unit) (ports.Document, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.bootstrapErr != nil {
		return nil, h.bootstrapErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := NewDocument("Fretboard1", unit)
	if h.seed != nil {
		for _, p := range h.seed(unit) {
			doc.params[p.Name] = p
			doc.order = append(doc.order, p.Name)
		}
	}
	h.active = doc
	return doc, nil
}

func (h *Host) OpenURL(url string) error {
	h.mu.Lock()
	h.openedURLs = append(h.openedURLs, url)
	h.mu.Unlock()
	return nil
}

func (h *Host) OpenTemplatesFolder() error {
	h.mu.Lock()
	h.folderOpens++
	h.mu.Unlock()
	return nil
}

// OpenedURLs returns every URL passed to OpenURL, in order.
func (h *Host) OpenedURLs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.openedURLs...)
}

// TemplatesFolderOpens returns how many times the folder was revealed.
func (h *Host) TemplatesFolderOpens() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.folderOpens
}

// evaluate mimics the host's expression evaluation well enough for tests:
// the leading numeric token wins, anything else evaluates to zero.
func evaluate(expr string) float64 {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}
