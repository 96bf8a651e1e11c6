package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/luthierlabs/fretbridge"
	"github.com/luthierlabs/fretbridge/internal/presentation/tui"
	"github.com/luthierlabs/fretbridge/pkg/bridge"
)

// RunOptions configures the stdio session.
type RunOptions struct {
	// Interactive picks the human-facing text mode with rendered output
	// and short commands. Off, the session speaks JSON lines both ways.
	Interactive bool
	In          io.Reader
	Out         io.Writer
}

// Run drives a stdio session against the app: the document loop runs in
// the background while stdin commands are dispatched to the bridge.
// Returns when stdin closes or ctx is canceled.
func Run(ctx context.Context, app *fretbridge.App, opts RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		app.Run(ctx)
	}()

	b := app.Bridge
	if opts.Interactive {
		tui.PrintBanner()
		b.Attach(newTextChannel(opts.Out))
	} else {
		b.Attach(newJSONChannel(opts.Out))
	}

	b.HandleMessage(ctx, bridge.ActionReady, nil)
	if err := b.Open(ctx); err != nil {
		app.Logger().Warn("no active document at session start", "err", err)
	}

	scanner := bufio.NewScanner(opts.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if opts.Interactive {
			if quit := dispatchCommand(ctx, b, opts.Out, line); quit {
				break
			}
		} else {
			dispatchEnvelope(ctx, b, line)
		}
		if ctx.Err() != nil {
			break
		}
	}

	cancel()
	<-loopDone
	return scanner.Err()
}

// dispatchEnvelope handles one JSON-lines frame: {"action":..., "payload":...}.
func dispatchEnvelope(ctx context.Context, b *bridge.Bridge, line string) {
	var env struct {
		Action  string          `json:"action"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal([]byte(line), &env); err != nil || env.Action == "" {
		return
	}
	b.HandleMessage(ctx, env.Action, env.Payload)
}

// dispatchCommand maps an interactive command to a bridge action.
// Returns true when the session should end.
func dispatchCommand(ctx context.Context, b *bridge.Bridge, out io.Writer, line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	send := func(action string, payload any) {
		var body []byte
		if payload != nil {
			body, _ = json.Marshal(payload)
		}
		b.HandleMessage(ctx, action, body)
	}

	switch cmd {
	case "q", "quit", "exit":
		return true
	case "state":
		send(bridge.ActionGetModelState, nil)
	case "templates":
		send(bridge.ActionGetTemplates, nil)
	case "timeline":
		send(bridge.ActionGetTimelineItems, nil)
	case "summary":
		send(bridge.ActionGetTimelineSummary, nil)
	case "units":
		if rest == "" {
			send(bridge.ActionSwitchUnits, nil)
		} else {
			send(bridge.ActionSwitchUnits, map[string]string{"unit": rest})
		}
	case "apply":
		updates := map[string]string{}
		for _, pair := range strings.Split(rest, ",") {
			name, expr, ok := strings.Cut(pair, "=")
			if !ok {
				fmt.Fprintf(out, "usage: apply Name=expr[,Name=expr]\n")
				return false
			}
			updates[strings.TrimSpace(name)] = strings.TrimSpace(expr)
		}
		send(bridge.ActionApplyParams, map[string]any{"updates": updates})
	case "save":
		if rest == "" {
			fmt.Fprintf(out, "usage: save <name>\n")
			return false
		}
		send(bridge.ActionSaveTemplate, map[string]string{"name": rest})
	case "load":
		send(bridge.ActionLoadTemplate, map[string]string{"id": rest})
	case "delete":
		send(bridge.ActionDeleteTemplate, map[string]string{"id": rest})
	case "suppress", "unsuppress":
		if rest == "" {
			fmt.Fprintf(out, "usage: %s <item name>\n", cmd)
			return false
		}
		send(bridge.ActionApplyTimeline, map[string]any{
			"changes": []map[string]any{
				{"name": rest, "type": "Feature", "suppressed": cmd == "suppress"},
			},
		})
	case "help":
		fmt.Fprint(out, helpText)
	default:
		fmt.Fprintf(out, "unknown command %q, try 'help'\n", cmd)
	}
	return false
}

const helpText = `commands:
  state                     show the parameter state
  templates                 list presets and saved templates
  timeline                  list timeline items
  summary                   timeline counts
  units [mm|in]             switch document units (toggle without arg)
  apply Name=expr[,...]     apply parameter expressions
  save <name>               save current values as a template
  load <id>                 load a template
  delete <id>               delete a template
  suppress <item>           suppress a timeline feature
  unsuppress <item>         unsuppress a timeline feature
  quit                      end the session
`

// jsonChannel emits outbound bridge messages as JSON lines.
type jsonChannel struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func newJSONChannel(out io.Writer) *jsonChannel {
	return &jsonChannel{enc: json.NewEncoder(out)}
}

func (c *jsonChannel) Send(action string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(map[string]any{"action": action, "payload": payload})
}
