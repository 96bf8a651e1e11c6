package bridge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/luthierlabs/fretbridge/internal/logging"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/mailbox"
	"github.com/luthierlabs/fretbridge/pkg/ports"
	"github.com/luthierlabs/fretbridge/pkg/reconcile"
	"github.com/luthierlabs/fretbridge/pkg/schema"
	"github.com/luthierlabs/fretbridge/pkg/timeline"
)

// Bridge mediates between one UI channel and the host's active document.
type Bridge struct {
	host      ports.Host
	schemas   *schema.Store
	templates ports.TemplateStore
	presets   ports.PresetLibrary
	machine   *timeline.Machine
	queue     *mailbox.Queue
	logger    *slog.Logger
	hooks     domain.LifecycleHooks

	mu       sync.Mutex
	channel  Channel
	active   bool
	uiReady  bool
	stashed  *reconcile.ModelState
	ownerDoc string
}

// Option configures the Bridge.
type Option func(*Bridge)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithSchemaStore sets the schema store. Default is the embedded schema.
func WithSchemaStore(store *schema.Store) Option {
	return func(b *Bridge) {
		b.schemas = store
	}
}

// WithTemplateStore sets the user-template store.
func WithTemplateStore(store ports.TemplateStore) Option {
	return func(b *Bridge) {
		b.templates = store
	}
}

// WithPresetLibrary sets the read-only preset namespace.
func WithPresetLibrary(presets ports.PresetLibrary) Option {
	return func(b *Bridge) {
		b.presets = presets
	}
}

// WithTimelineMachine sets the timeline machine, for callers that
// customize membership resolution.
func WithTimelineMachine(m *timeline.Machine) Option {
	return func(b *Bridge) {
		b.machine = m
	}
}

// WithHooks sets lifecycle hooks for observability.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bridge) {
		b.hooks = hooks
	}
}

// New creates a Bridge against the given host. Without options it uses the
// embedded schema, a nop logger, no presets, and no template store.
func New(host ports.Host, opts ...Option) *Bridge {
	b := &Bridge{
		host:    host,
		schemas: schema.NewStore(""),
		queue:   mailbox.New(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.machine == nil {
		b.machine = timeline.NewMachine(timeline.WithLogger(b.logger))
	}
	return b
}

// Queue exposes the mailbox, mainly for tests asserting slot semantics.
func (b *Bridge) Queue() *mailbox.Queue { return b.queue }

// Attach connects the UI channel. The channel is not considered loaded
// until it sends the ready handshake; payloads built before that are
// stashed and flushed on ready.
func (b *Bridge) Attach(ch Channel) {
	b.mu.Lock()
	b.channel = ch
	b.active = true
	b.uiReady = false
	b.mu.Unlock()
}

// Open records the owning document and builds the initial model state.
// When the channel has already completed the ready handshake the payload
// is pushed immediately, otherwise it waits for ready.
func (b *Bridge) Open(ctx context.Context) error {
	doc, err := b.host.ActiveDocument()
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.ownerDoc = doc.Name()
	b.active = true
	ready := b.uiReady
	b.mu.Unlock()

	if ready {
		b.pushModelState(ctx)
		return nil
	}

	state, err := b.buildModelState(doc)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.stashed = state
	b.mu.Unlock()
	return nil
}

// DocumentActivated is called by the host adapter when the active document
// changes. Switching away from the owner deactivates the channel.
func (b *Bridge) DocumentActivated(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ownerDoc != "" && name != b.ownerDoc && b.active {
		b.active = false
		b.logger.Info("channel deactivated, another document is active",
			"owner", b.ownerDoc, "active", name)
	}
}

// send pushes one outbound message, skipping when no channel is attached
// or it was deactivated.
func (b *Bridge) send(ctx context.Context, action string, payload any) {
	b.mu.Lock()
	ch := b.channel
	active := b.active
	b.mu.Unlock()

	if ch == nil || !active {
		b.logger.Debug("outbound message dropped, channel inactive", "action", action)
		return
	}
	if err := ch.Send(action, payload); err != nil {
		b.logger.Error("channel send failed", "action", action, "err", err)
		return
	}
	if b.hooks.OnMessageOut != nil {
		b.hooks.OnMessageOut(ctx, &domain.MessageEvent{
			Timestamp: time.Now(),
			Type:      domain.EventMessageOut,
			Action:    action,
		})
	}
}
