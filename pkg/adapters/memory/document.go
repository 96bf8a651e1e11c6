package memory

import (
	"fmt"
	"sync"

	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// Document is an in-memory ports.Document. Parameters keep insertion
// order, matching how the host enumerates user parameters.
type Document struct {
	name string

	mu       sync.Mutex
	unit     domain.Unit
	order    []string
	params   map[string]domain.LiveParameter
	timeline *Timeline
}

// NewDocument creates an empty document in the given unit.
func NewDocument(name string, unit domain.Unit) *Document {
	return &Document{
		name:     name,
		unit:     unit,
		params:   make(map[string]domain.LiveParameter),
		timeline: NewTimeline(),
	}
}

func (d *Document) Name() string { return d.name }

func (d *Document) Unit() domain.Unit {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unit
}

func (d *Document) SetUnit(unit domain.Unit) error {
	if !unit.Valid() {
		return fmt.Errorf("unsupported unit %q", unit)
	}
	d.mu.Lock()
	d.unit = unit
	d.mu.Unlock()
	return nil
}

func (d *Document) Parameters() ([]domain.LiveParameter, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.LiveParameter, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.params[name])
	}
	return out, nil
}

func (d *Document) Parameter(name string) (domain.LiveParameter, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.params[name]
	return p, ok
}

func (d *Document) SetExpression(name, expression string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.params[name]
	if !ok {
		return fmt.Errorf("parameter %q: %w", name, domain.ErrItemNotFound)
	}
	p.Expression = expression
	p.Value = evaluate(expression)
	d.params[name] = p
	return nil
}

func (d *Document) AddParameter(p domain.LiveParameter) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dup := d.params[p.Name]; dup {
		return fmt.Errorf("parameter %q already exists", p.Name)
	}
	if p.Value == 0 {
		p.Value = evaluate(p.Expression)
	}
	d.order = append(d.order, p.Name)
	d.params[p.Name] = p
	return nil
}

func (d *Document) RenameParameter(oldName, newName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.params[oldName]
	if !ok {
		return fmt.Errorf("parameter %q: %w", oldName, domain.ErrItemNotFound)
	}
	if _, dup := d.params[newName]; dup {
		return fmt.Errorf("parameter %q already exists", newName)
	}
	p.Name = newName
	delete(d.params, oldName)
	d.params[newName] = p
	for i, n := range d.order {
		if n == oldName {
			d.order[i] = newName
			break
		}
	}
	return nil
}

func (d *Document) SetComment(name, comment string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.params[name]
	if !ok {
		return fmt.Errorf("parameter %q: %w", name, domain.ErrItemNotFound)
	}
	p.Comment = comment
	d.params[name] = p
	return nil
}

func (d *Document) DeleteParameter(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.params[name]; !ok {
		return fmt.Errorf("parameter %q: %w", name, domain.ErrItemNotFound)
	}
	delete(d.params, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

func (d *Document) Timeline() ports.Timeline { return d.timeline }

// SetTimeline replaces the document's timeline, for tests that author a
// specific construction history.
func (d *Document) SetTimeline(tl *Timeline) { d.timeline = tl }
