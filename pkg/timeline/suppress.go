package timeline

import (
	"fmt"

	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// Suppress sets a named item to the suppressed state.
func (m *Machine) Suppress(tl ports.Timeline, name string) error {
	return m.setByName(tl, name, true)
}

// Unsuppress returns a named item to the active state.
func (m *Machine) Unsuppress(tl ports.Timeline, name string) error {
	return m.setByName(tl, name, false)
}

// Toggle flips a named item's suppression state and returns the new state.
func (m *Machine) Toggle(tl ports.Timeline, name string) (bool, error) {
	entry, ok := m.FindByName(tl, name)
	if !ok {
		return false, fmt.Errorf("%w: %q", domain.ErrItemNotFound, name)
	}
	target := !entry.Suppressed()
	if err := m.setSuppressed(entry, target); err != nil {
		return false, err
	}
	return target, nil
}

func (m *Machine) setByName(tl ports.Timeline, name string, suppressed bool) error {
	entry, ok := m.FindByName(tl, name)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrItemNotFound, name)
	}
	return m.setSuppressed(entry, suppressed)
}

// SetByPattern applies the target state to every item matching a
// case-insensitive pattern and returns the number of items changed.
// Per-item failures are logged and skipped.
func (m *Machine) SetByPattern(tl ports.Timeline, pattern string, suppressed bool) (int, error) {
	matches, err := m.FindByPattern(tl, pattern)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range matches {
		if err := m.setSuppressed(entry, suppressed); err != nil {
			m.logger.Warn("pattern suppression failed",
				"item", entry.Name(), "suppressed", suppressed, "err", err)
			continue
		}
		count++
	}
	return count, nil
}

// SetGroup suppresses or unsuppresses a group header and cascades the same
// target state to every member. The header result alone is the returned
// error; child failures are best-effort, recorded only in logs, and never
// abort the remaining children.
func (m *Machine) SetGroup(tl ports.Timeline, name string, suppressed bool) error {
	entry, ok := m.FindByName(tl, name)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrItemNotFound, name)
	}
	if err := m.setSuppressed(entry, suppressed); err != nil {
		return err
	}

	for _, child := range m.resolveChildren(tl, entry) {
		if err := m.setSuppressed(child, suppressed); err != nil {
			m.logger.Warn("group cascade failed for child",
				"group", name, "child", child.Name(), "suppressed", suppressed, "err", err)
		}
	}
	return nil
}

// ApplyBatch performs a batch of suppression changes in submission order
// and aggregates one result. A failing change is added to Failed without
// aborting its siblings; for groups only the header outcome counts.
func (m *Machine) ApplyBatch(tl ports.Timeline, changes []domain.TimelineChange) domain.TimelineBatchResult {
	result := domain.TimelineBatchResult{Failed: []string{}}

	for _, change := range changes {
		var err error
		if change.Kind == domain.KindGroup {
			err = m.SetGroup(tl, change.Name, change.Suppressed)
		} else {
			err = m.setByName(tl, change.Name, change.Suppressed)
		}
		if err != nil {
			m.logger.Error("timeline change failed",
				"item", change.Name, "kind", change.Kind,
				"suppressed", change.Suppressed, "err", err)
			result.Failed = append(result.Failed, change.Name)
			continue
		}
		result.SuccessCount++
	}

	result.Success = len(result.Failed) == 0
	result.Message = fmt.Sprintf("Applied %d change(s)", result.SuccessCount)
	if len(result.Failed) > 0 {
		result.Message += fmt.Sprintf(" (%d failed)", len(result.Failed))
	}
	return result
}
