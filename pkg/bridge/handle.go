package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/mailbox"
	"github.com/luthierlabs/fretbridge/pkg/reconcile"
	"github.com/luthierlabs/fretbridge/pkg/timeline"
)

// HandleMessage dispatches one inbound UI message. It runs on the channel
// context: read requests are answered synchronously, mutating requests are
// submitted to the mailbox and return immediately. Failures never
// propagate; they are logged and, where the protocol has one, reported as
// a structured payload.
func (b *Bridge) HandleMessage(ctx context.Context, action string, data []byte) {
	b.logger.Debug("message in", "action", action, "bytes", len(data))
	if b.hooks.OnMessageIn != nil {
		b.hooks.OnMessageIn(ctx, &domain.MessageEvent{
			Timestamp: time.Now(),
			Type:      domain.EventMessageIn,
			Action:    action,
			Bytes:     len(data),
		})
	}

	switch action {
	case ActionReady:
		b.onReady(ctx)
	case ActionGetModelState:
		b.pushModelState(ctx)
	case ActionApplyParams:
		b.onApplyParams(ctx, data)
	case ActionCancel:
		b.onCancel()
	case ActionOpenURL:
		b.onOpenURL(data)
	case ActionOpenTemplatesFolder:
		if err := b.host.OpenTemplatesFolder(); err != nil {
			b.logger.Error("failed to open templates folder", "err", err)
		}
	case ActionSwitchUnits:
		b.onSwitchUnits(data)
	case ActionGetTemplates:
		b.pushTemplates(ctx)
	case ActionSaveTemplate:
		b.onSaveTemplate(ctx, data)
	case ActionDeleteTemplate:
		b.onDeleteTemplate(ctx, data)
	case ActionLoadTemplate:
		b.onLoadTemplate(ctx, data)
	case ActionSetParamCategory:
		b.onSetParamCategory(ctx, data)
	case ActionEditParam:
		b.onEditParam(ctx, data)
	case ActionDeleteParam:
		b.onDeleteParam(ctx, data)
	case ActionGetTimelineItems:
		b.pushTimelineItems(ctx)
	case ActionApplyTimeline:
		b.onApplyTimeline(data)
	case ActionGetTimelineSummary:
		b.pushTimelineSummary(ctx)
	case actionResponse:
		// Channel-internal acknowledgment.
	default:
		b.logger.Warn("unknown action", "action", action)
	}
}

func (b *Bridge) onReady(ctx context.Context) {
	b.mu.Lock()
	b.uiReady = true
	stashed := b.stashed
	b.stashed = nil
	b.mu.Unlock()

	if stashed != nil {
		b.send(ctx, PushModelState, stashed)
	}
}

func (b *Bridge) onCancel() {
	b.mu.Lock()
	b.active = false
	b.mu.Unlock()
	b.logger.Info("channel closed by UI")
}

func (b *Bridge) onApplyParams(ctx context.Context, data []byte) {
	req, err := decodeApply(data)
	if err != nil {
		b.logger.Error("bad apply payload", "err", err)
		return
	}

	// Tell the UI we're working before the document loop picks this up.
	b.send(ctx, Computing, struct{}{})
	b.queue.Submit(mailbox.Apply, req)
}

func (b *Bridge) onSwitchUnits(data []byte) {
	var req UnitSwitchRequest
	if len(data) > 0 {
		if err := decode(data, &req); err != nil {
			// Malformed unit request falls back to toggle behavior.
			b.logger.Warn("bad unit switch payload, toggling", "err", err)
			req = UnitSwitchRequest{}
		}
	}
	if u := domain.Unit(req.Unit); !u.Valid() {
		req.Unit = ""
	}
	b.queue.Submit(mailbox.UnitSwitch, req)
}

func (b *Bridge) onApplyTimeline(data []byte) {
	var req TimelineChangesRequest
	if err := decode(data, &req); err != nil {
		b.logger.Error("bad timeline batch payload", "err", err)
		return
	}
	b.queue.Submit(mailbox.Timeline, req)
}

func (b *Bridge) onOpenURL(data []byte) {
	var req OpenURLRequest
	if err := decode(data, &req); err != nil {
		b.logger.Error("bad open-url payload", "err", err)
		return
	}
	if req.URL == "" {
		return
	}
	if err := b.host.OpenURL(req.URL); err != nil {
		b.logger.Error("failed to open url", "url", req.URL, "err", err)
		return
	}
	b.logger.Info("opened url", "url", req.URL)
}

// buildModelState runs the read path for a document: live payload when the
// fingerprint is present, schema defaults otherwise.
func (b *Bridge) buildModelState(doc docReader) (*reconcile.ModelState, error) {
	s, err := b.schemas.Get()
	if err != nil {
		// No schema, no UI: never substitute a partial payload.
		return nil, err
	}

	unit := doc.Unit()
	if _, hasFingerprint := doc.Parameter(domain.FingerprintParam); hasFingerprint {
		live, err := doc.Parameters()
		if err != nil {
			return nil, err
		}
		state := reconcile.BuildLivePayload(s, unit, live)
		return &state, nil
	}
	state := reconcile.BuildSchemaPayload(s, unit)
	return &state, nil
}

// docReader is the read-only slice of ports.Document the payload builders
// need.
type docReader interface {
	Unit() domain.Unit
	Parameters() ([]domain.LiveParameter, error)
	Parameter(name string) (domain.LiveParameter, bool)
}

func (b *Bridge) pushModelState(ctx context.Context) {
	doc, err := b.host.ActiveDocument()
	if err != nil {
		b.logger.Warn("model state request dropped", "err", err)
		return
	}
	state, err := b.buildModelState(doc)
	if err != nil {
		b.logger.Error("failed to build model state", "err", err)
		return
	}
	b.send(ctx, PushModelState, state)
}

func (b *Bridge) pushTimelineItems(ctx context.Context) {
	doc, err := b.host.ActiveDocument()
	if err != nil {
		b.logger.Warn("timeline request dropped", "err", err)
		return
	}
	items := b.machine.Items(doc.Timeline())
	b.send(ctx, PushTimelineItems, map[string]any{"items": items})
	b.logger.Debug("sent timeline items", "count", len(items))
}

func (b *Bridge) pushTimelineSummary(ctx context.Context) {
	doc, err := b.host.ActiveDocument()
	if err != nil {
		b.logger.Warn("timeline summary request dropped", "err", err)
		return
	}
	b.send(ctx, PushTimelineSummary, b.machine.Summarize(doc.Timeline()))
}

// State exposes the per-item timeline state query.
func (b *Bridge) State(name string) (*timeline.ItemState, error) {
	doc, err := b.host.ActiveDocument()
	if err != nil {
		return nil, err
	}
	state, ok := b.machine.State(doc.Timeline(), name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrItemNotFound, name)
	}
	return state, nil
}
