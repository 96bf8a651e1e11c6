package bridge_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthierlabs/fretbridge/pkg/adapters/memory"
	"github.com/luthierlabs/fretbridge/pkg/bridge"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/mailbox"
	"github.com/luthierlabs/fretbridge/pkg/reconcile"
)

// recorder is a Channel that keeps every outbound message.
type recorder struct {
	mu   sync.Mutex
	msgs []sent
}

type sent struct {
	action  string
	payload any
}

func (r *recorder) Send(action string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, sent{action: action, payload: payload})
	return nil
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.action
	}
	return out
}

// last returns the most recent message with the given action.
func (r *recorder) last(action string) (sent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].action == action {
			return r.msgs[i], true
		}
	}
	return sent{}, false
}

func (r *recorder) count(action string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m.action == action {
			n++
		}
	}
	return n
}

// readyBridge builds a bridge over the given host with an attached,
// ready channel.
func readyBridge(t *testing.T, host *memory.Host, opts ...bridge.Option) (*bridge.Bridge, *recorder) {
	t.Helper()
	b := bridge.New(host, opts...)
	ch := &recorder{}
	b.Attach(ch)
	b.HandleMessage(context.Background(), bridge.ActionReady, nil)
	return b, ch
}

func seedParams(unit domain.Unit) []domain.LiveParameter {
	scale := "25.5 in"
	if unit == domain.UnitMetric {
		scale = "648 mm"
	}
	return []domain.LiveParameter{
		{Name: "ScaleLengthTreble", Expression: scale},
		{Name: "NumFrets", Expression: "22"},
	}
}

func TestApplyCoalescesToLatest(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: domain.FingerprintParam, Expression: "1.0.0"}))
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: "NumFrets", Expression: "22"}))
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, ch := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionApplyParams,
		[]byte(`{"updates":{"NumFrets":"20"}}`))
	b.HandleMessage(context.Background(), bridge.ActionApplyParams,
		[]byte(`{"updates":{"NumFrets":"24"}}`))

	b.DrainPending(context.Background())

	p, ok := doc.Parameter("NumFrets")
	require.True(t, ok)
	assert.Equal(t, "24", p.Expression, "only the latest submitted apply runs")
	assert.False(t, b.Queue().Pending(mailbox.Apply))

	// Both submissions announced work, but only one drain pushed state.
	assert.Equal(t, 2, ch.count(bridge.Computing))
	assert.Equal(t, 1, ch.count(bridge.PushModelState))
}

func TestFirstApplyBootstrapsAndSetsFingerprint(t *testing.T) {
	doc := memory.NewDocument("Empty1", domain.UnitMetric)
	host := memory.NewHost(memory.WithActiveDocument(doc), memory.WithSeed(seedParams))
	b, ch := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionApplyParams,
		[]byte(`{"updates":{"NumFrets":"24"}}`))
	b.DrainPending(context.Background())

	active, err := host.ActiveDocument()
	require.NoError(t, err)
	assert.Equal(t, "Fretboard1", active.Name())
	assert.Equal(t, domain.UnitMetric, active.Unit())

	fp, ok := active.Parameter(domain.FingerprintParam)
	require.True(t, ok, "fingerprint set during bootstrap")
	assert.NotEmpty(t, fp.Expression)

	nf, ok := active.Parameter("NumFrets")
	require.True(t, ok)
	assert.Equal(t, "24", nf.Expression)

	msg, ok := ch.last(bridge.PushModelState)
	require.True(t, ok)
	state, ok := msg.payload.(*reconcile.ModelState)
	require.True(t, ok)
	assert.Equal(t, reconcile.ModeLive, state.Mode)
	assert.True(t, state.HasFingerprint)
	assert.Equal(t, domain.UnitMetric, state.DocumentUnit)
}

func TestBootstrapFailureAbortsApply(t *testing.T) {
	doc := memory.NewDocument("Empty1", domain.UnitImperial)
	host := memory.NewHost(memory.WithActiveDocument(doc))
	host.FailBootstrap(errors.New("host busy"))
	b, ch := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionApplyParams,
		[]byte(`{"updates":{"NumFrets":"24"}}`))
	b.DrainPending(context.Background())

	params, err := doc.Parameters()
	require.NoError(t, err)
	assert.Empty(t, params, "nothing written when bootstrap fails")

	msg, ok := ch.last(bridge.PushModelState)
	require.True(t, ok)
	state := msg.payload.(*reconcile.ModelState)
	assert.Equal(t, reconcile.ModeSchema, state.Mode)
	assert.False(t, state.HasFingerprint)
}

func TestLegacyFlatApplyPayload(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitImperial)
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: domain.FingerprintParam, Expression: "1.0.0"}))
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: "NutWidth", Expression: "1.69 in"}))
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, _ := readyBridge(t, host)

	// Flat mapping, no updates/creates envelope.
	b.HandleMessage(context.Background(), bridge.ActionApplyParams,
		[]byte(`{"NutWidth":"1.75 in"}`))
	b.DrainPending(context.Background())

	p, ok := doc.Parameter("NutWidth")
	require.True(t, ok)
	assert.Equal(t, "1.75 in", p.Expression)
}

func TestApplyCreatesParameters(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: domain.FingerprintParam, Expression: "1.0.0"}))
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, _ := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionApplyParams,
		[]byte(`{"updates":{},"creates":[{"name":"Custom1","expression":"3 mm","description":"binding"}]}`))
	b.DrainPending(context.Background())

	p, ok := doc.Parameter("Custom1")
	require.True(t, ok)
	assert.Equal(t, "3 mm", p.Expression)
	assert.Equal(t, "binding", p.Comment)
}

func TestUnitSwitchToggles(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitImperial)
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, ch := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionSwitchUnits, nil)
	b.DrainPending(context.Background())

	assert.Equal(t, domain.UnitMetric, doc.Unit())
	assert.Equal(t, 1, ch.count(bridge.PushModelState))
	assert.Equal(t, 1, ch.count(bridge.PushTemplates))

	b.HandleMessage(context.Background(), bridge.ActionSwitchUnits,
		[]byte(`{"unit":"in"}`))
	b.DrainPending(context.Background())
	assert.Equal(t, domain.UnitImperial, doc.Unit())
}

func TestUnitSwitchCoalesces(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitImperial)
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, _ := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionSwitchUnits,
		[]byte(`{"unit":"mm"}`))
	b.HandleMessage(context.Background(), bridge.ActionSwitchUnits,
		[]byte(`{"unit":"in"}`))
	b.DrainPending(context.Background())

	assert.Equal(t, domain.UnitImperial, doc.Unit(), "latest request wins")
	assert.False(t, b.Queue().Pending(mailbox.UnitSwitch))
}

func TestTimelineBatchDrain(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	doc.SetTimeline(memory.NewTimeline(
		memory.Feature("BoardSketch", "adsk::fusion::Sketch"),
		memory.Group("Fret Slots",
			memory.Feature("Slot1", "adsk::fusion::ExtrudeFeature"),
			memory.Feature("Slot2", "adsk::fusion::ExtrudeFeature"),
		),
		memory.Feature("RadiusCut", "adsk::fusion::ExtrudeFeature"),
	))
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, ch := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionApplyTimeline,
		[]byte(`{"changes":[
			{"name":"RadiusCut","type":"Feature","suppressed":true},
			{"name":"Fret Slots","type":"Group","suppressed":true}
		]}`))
	b.DrainPending(context.Background())

	msg, ok := ch.last(bridge.TimelineOperationResult)
	require.True(t, ok)
	result := msg.payload.(domain.TimelineBatchResult)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Empty(t, result.Failed)
}

func TestReadyFlushesStashedState(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b := bridge.New(host)
	ch := &recorder{}
	b.Attach(ch)

	require.NoError(t, b.Open(context.Background()))
	assert.Empty(t, ch.actions(), "nothing pushed before ready")

	b.HandleMessage(context.Background(), bridge.ActionReady, nil)
	assert.Equal(t, 1, ch.count(bridge.PushModelState))

	// A second ready has nothing stashed and pushes nothing.
	b.HandleMessage(context.Background(), bridge.ActionReady, nil)
	assert.Equal(t, 1, ch.count(bridge.PushModelState))
}

func TestCancelStopsOutboundPushes(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, ch := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionCancel, nil)
	b.HandleMessage(context.Background(), bridge.ActionGetModelState, nil)
	assert.Equal(t, 0, ch.count(bridge.PushModelState))
}

func TestDocumentActivatedDeactivatesOnOwnerMismatch(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, ch := readyBridge(t, host)
	require.NoError(t, b.Open(context.Background()))

	b.DocumentActivated("SomeOtherDoc")
	b.HandleMessage(context.Background(), bridge.ActionGetModelState, nil)
	got := ch.count(bridge.PushModelState)
	assert.Equal(t, 1, got, "only the push from Open, none after deactivation")
}

func TestOpenURL(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, _ := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionOpenURL,
		[]byte(`{"url":"https://example.com/docs"}`))
	b.HandleMessage(context.Background(), bridge.ActionOpenURL, []byte(`{"url":""}`))

	assert.Equal(t, []string{"https://example.com/docs"}, host.OpenedURLs())
}

func TestDeleteParamRefusesFingerprint(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: domain.FingerprintParam, Expression: "1.0.0"}))
	host := memory.NewHost(memory.WithActiveDocument(doc))
	b, _ := readyBridge(t, host)

	b.HandleMessage(context.Background(), bridge.ActionDeleteParam,
		[]byte(`{"name":"FretboardMakerVersion"}`))

	_, ok := doc.Parameter(domain.FingerprintParam)
	assert.True(t, ok, "fingerprint is never deleted")
}

func TestSaveAndLoadTemplate(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: domain.FingerprintParam, Expression: "1.0.0"}))
	host := memory.NewHost(memory.WithActiveDocument(doc))
	store := memory.NewTemplateStore()
	b, ch := readyBridge(t, host, bridge.WithTemplateStore(store))

	b.HandleMessage(context.Background(), bridge.ActionSaveTemplate,
		[]byte(`{"name":"My Jazz Box","description":"short scale","parameters":{"ScaleLengthTreble":"628 mm"}}`))

	msg, ok := ch.last(bridge.PushTemplates)
	require.True(t, ok)
	list := msg.payload.(bridge.TemplateList)
	require.Len(t, list.UserTemplates, 1)
	assert.Equal(t, "my_jazz_box", list.UserTemplates[0].ID)
	assert.Equal(t, "My Jazz Box", list.UserTemplates[0].Name)

	b.HandleMessage(context.Background(), bridge.ActionLoadTemplate,
		[]byte(`{"id":"my_jazz_box"}`))
	stateMsg, ok := ch.last(bridge.PushModelState)
	require.True(t, ok)
	state := stateMsg.payload.(reconcile.ModelState)
	assert.Equal(t, reconcile.ModeTemplate, state.Mode)
	assert.Equal(t, "My Jazz Box", state.TemplateName)
}

func TestDeleteTemplateRejectsTraversal(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	host := memory.NewHost(memory.WithActiveDocument(doc))
	store := memory.NewTemplateStore()
	_, err := store.Save(context.Background(), domain.Template{Name: "Keep Me"})
	require.NoError(t, err)
	b, ch := readyBridge(t, host, bridge.WithTemplateStore(store))

	before := ch.count(bridge.PushTemplates)
	b.HandleMessage(context.Background(), bridge.ActionDeleteTemplate,
		[]byte(`{"id":"../../evil"}`))
	assert.Equal(t, before, ch.count(bridge.PushTemplates), "traversal rejected without a refresh")

	templates, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, templates, 1)

	b.HandleMessage(context.Background(), bridge.ActionDeleteTemplate,
		[]byte(`{"id":"keep_me"}`))
	templates, err = store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestHooksObserveTraffic(t *testing.T) {
	doc := memory.NewDocument("Fretboard1", domain.UnitMetric)
	require.NoError(t, doc.AddParameter(domain.LiveParameter{Name: domain.FingerprintParam, Expression: "1.0.0"}))
	host := memory.NewHost(memory.WithActiveDocument(doc))

	var mu sync.Mutex
	var in, out, drains int
	hooks := domain.LifecycleHooks{
		OnMessageIn: func(_ context.Context, _ *domain.MessageEvent) {
			mu.Lock()
			in++
			mu.Unlock()
		},
		OnMessageOut: func(_ context.Context, _ *domain.MessageEvent) {
			mu.Lock()
			out++
			mu.Unlock()
		},
		OnDrain: func(_ context.Context, ev *domain.DrainEvent) {
			mu.Lock()
			drains++
			mu.Unlock()
			assert.Equal(t, "apply", ev.Category)
			assert.False(t, ev.IsError)
		},
	}
	b, _ := readyBridge(t, host, bridge.WithHooks(hooks))

	b.HandleMessage(context.Background(), bridge.ActionApplyParams,
		[]byte(`{"updates":{}}`))
	b.DrainPending(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, in, "ready and apply")
	assert.Equal(t, 1, drains)
	assert.Greater(t, out, 0)
}
