package bridge

import (
	"context"
	"sort"
	"time"

	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/mailbox"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// Run is the document loop: the only context that mutates the document.
// It blocks until ctx is canceled, waking on each mailbox tick and
// draining at most one pending operation per category.
func (b *Bridge) Run(ctx context.Context) error {
	b.logger.Info("document loop started")
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("document loop stopped")
			return ctx.Err()
		case <-b.queue.Tick():
			b.DrainPending(ctx)
		}
	}
}

// DrainPending consumes every occupied mailbox slot once, in drain order.
// Exported so host adapters that own their event loop (and tests) can
// drive the drain from their own tick.
func (b *Bridge) DrainPending(ctx context.Context) {
	for _, category := range mailbox.Categories() {
		payload, ok := b.queue.Take(category)
		if !ok {
			continue
		}
		start := time.Now()
		err := b.drain(ctx, category, payload)
		if err != nil {
			b.logger.Error("drain failed", "category", category.String(), "err", err)
		}
		if b.hooks.OnDrain != nil {
			b.hooks.OnDrain(ctx, &domain.DrainEvent{
				Timestamp: start,
				Category:  category.String(),
				Duration:  time.Since(start),
				IsError:   err != nil,
			})
		}
	}
}

func (b *Bridge) drain(ctx context.Context, category mailbox.Category, payload any) error {
	switch category {
	case mailbox.Apply:
		req, ok := payload.(ApplyRequest)
		if !ok {
			return domain.ErrMalformedRequest
		}
		return b.drainApply(ctx, req)
	case mailbox.Timeline:
		req, ok := payload.(TimelineChangesRequest)
		if !ok {
			return domain.ErrMalformedRequest
		}
		return b.drainTimeline(ctx, req)
	case mailbox.UnitSwitch:
		req, ok := payload.(UnitSwitchRequest)
		if !ok {
			return domain.ErrMalformedRequest
		}
		return b.drainUnitSwitch(ctx, req)
	}
	return nil
}

// drainApply applies parameter updates and creates. A document with zero
// user parameters first gets the unit-appropriate starting document
// materialized and the fingerprint set; if that bootstrap fails the whole
// apply is abandoned with nothing written.
func (b *Bridge) drainApply(ctx context.Context, req ApplyRequest) error {
	doc, err := b.host.ActiveDocument()
	if err != nil {
		b.logger.Warn("apply dropped", "err", err)
		return nil
	}

	params, err := doc.Parameters()
	if err != nil {
		return err
	}
	if len(params) == 0 {
		doc, err = b.bootstrap(ctx, doc.Unit())
		if err != nil {
			// Fatal to the apply: no fingerprint, no partial state. The
			// refresh below shows the UI an unchanged document.
			b.logger.Error("apply abandoned", "err", err)
			b.pushModelState(ctx)
			return err
		}
	}

	applied, failed := 0, 0
	for _, name := range sortedKeys(req.Updates) {
		if _, ok := doc.Parameter(name); !ok {
			b.logger.Warn("update skipped, parameter absent", "name", name)
			failed++
			continue
		}
		if err := doc.SetExpression(name, req.Updates[name]); err != nil {
			b.logger.Error("update failed", "name", name, "err", err)
			failed++
			continue
		}
		applied++
	}

	for _, create := range req.Creates {
		if create.Name == "" {
			continue
		}
		err := doc.AddParameter(domain.LiveParameter{
			Name:       create.Name,
			Expression: create.Expression,
			Comment:    create.Description,
		})
		if err != nil {
			b.logger.Error("create failed", "name", create.Name, "err", err)
			failed++
			continue
		}
		applied++
	}

	b.logger.Info("apply finished", "applied", applied, "failed", failed)
	b.pushModelState(ctx)
	return nil
}

// bootstrap materializes the starting document and sets the fingerprint,
// in that order. The new document becomes the channel owner.
func (b *Bridge) bootstrap(ctx context.Context, unit domain.Unit) (ports.Document, error) {
	doc, err := b.host.Bootstrap(ctx, unit)
	if err != nil {
		return nil, &domain.BootstrapError{Unit: unit, Err: err}
	}

	version := "unknown"
	if s, err := b.schemas.Get(); err == nil {
		version = s.SchemaVersion
	}
	err = doc.AddParameter(domain.LiveParameter{
		Name:       domain.FingerprintParam,
		Expression: version,
		Comment:    "Managed fretboard document",
	})
	if err != nil {
		return nil, &domain.BootstrapError{Unit: unit, Err: err}
	}

	b.mu.Lock()
	b.ownerDoc = doc.Name()
	b.mu.Unlock()
	b.logger.Info("starting document materialized", "unit", string(unit), "document", doc.Name())
	return doc, nil
}

func (b *Bridge) drainTimeline(ctx context.Context, req TimelineChangesRequest) error {
	doc, err := b.host.ActiveDocument()
	if err != nil {
		b.logger.Warn("timeline batch dropped", "err", err)
		return nil
	}

	b.logger.Info("applying timeline changes", "count", len(req.Changes))
	result := b.machine.ApplyBatch(doc.Timeline(), req.Changes)

	if b.hooks.OnSuppress != nil {
		failed := make(map[string]bool, len(result.Failed))
		for _, name := range result.Failed {
			failed[name] = true
		}
		for _, change := range req.Changes {
			b.hooks.OnSuppress(ctx, &domain.SuppressEvent{
				Timestamp:  time.Now(),
				Item:       change.Name,
				Kind:       change.Kind,
				Suppressed: change.Suppressed,
				IsError:    failed[change.Name],
			})
		}
	}

	b.send(ctx, TimelineOperationResult, result)
	return nil
}

func (b *Bridge) drainUnitSwitch(ctx context.Context, req UnitSwitchRequest) error {
	doc, err := b.host.ActiveDocument()
	if err != nil {
		b.logger.Warn("unit switch dropped", "err", err)
		return nil
	}

	target := domain.Unit(req.Unit)
	if !target.Valid() {
		target = doc.Unit().Toggle()
	}
	if err := doc.SetUnit(target); err != nil {
		return err
	}
	b.logger.Info("document unit changed", "unit", string(target))

	b.pushModelState(ctx)
	b.pushTemplates(ctx)
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
