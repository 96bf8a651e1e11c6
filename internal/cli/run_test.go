package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthierlabs/fretbridge"
	"github.com/luthierlabs/fretbridge/pkg/schema"
)

func newTestApp(t *testing.T) *fretbridge.App {
	t.Helper()
	host := NewSimulatorHost(schema.NewStore(""))
	app, err := fretbridge.New(host, fretbridge.WithTemplatesDir(t.TempDir()))
	require.NoError(t, err)
	return app
}

func TestRunJSONLinesSession(t *testing.T) {
	app := newTestApp(t)

	in := strings.NewReader(
		`{"action":"GET_MODEL_STATE"}` + "\n" +
			`{"action":"GET_TIMELINE_SUMMARY"}` + "\n")
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, Run(ctx, app, RunOptions{In: in, Out: &out}))

	var actions []string
	dec := json.NewDecoder(&out)
	for dec.More() {
		var env struct {
			Action string `json:"action"`
		}
		require.NoError(t, dec.Decode(&env))
		actions = append(actions, env.Action)
	}
	// Open pushes the initial state, then the two explicit requests.
	assert.Equal(t, []string{"PUSH_MODEL_STATE", "PUSH_MODEL_STATE", "PUSH_TIMELINE_SUMMARY"}, actions)
}

func TestRunInteractiveCommands(t *testing.T) {
	app := newTestApp(t)

	in := strings.NewReader("help\nbogus\napply NumFrets\nq\n")
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, Run(ctx, app, RunOptions{Interactive: true, In: in, Out: &out}))

	text := out.String()
	assert.Contains(t, text, "commands:")
	assert.Contains(t, text, `unknown command "bogus"`)
	assert.Contains(t, text, "usage: apply Name=expr")
}

func TestSimulatorSeedsSchemaDefaults(t *testing.T) {
	schemas := schema.NewStore("")
	seed := schemaSeed(schemas)

	params := seed("mm")
	require.NotEmpty(t, params)

	names := make(map[string]string, len(params))
	for _, p := range params {
		names[p.Name] = p.Expression
	}
	assert.Contains(t, names, "ScaleLengthTreble")
	assert.Contains(t, names, "NumFrets")
}
