package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/luthierlabs/fretbridge/internal/presentation/tui"
	"github.com/luthierlabs/fretbridge/pkg/bridge"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/reconcile"
)

// textChannel renders outbound bridge messages for a human terminal.
type textChannel struct {
	mu     sync.Mutex
	out    io.Writer
	render func(string) (string, error)
}

func newTextChannel(out io.Writer) *textChannel {
	return &textChannel{out: out, render: tui.NewRenderer()}
}

func (c *textChannel) Send(action string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch action {
	case bridge.Computing:
		fmt.Fprintln(c.out, "working...")
		return nil
	case bridge.PushModelState:
		return c.printMarkdown(modelStateMarkdown(payload))
	case bridge.PushTemplates:
		return c.printMarkdown(templatesMarkdown(payload))
	case bridge.PushTimelineItems:
		return c.printMarkdown(timelineMarkdown(payload))
	case bridge.PushTimelineSummary:
		return c.printMarkdown(summaryMarkdown(payload))
	case bridge.TimelineOperationResult:
		return c.printMarkdown(batchResultMarkdown(payload))
	default:
		raw, _ := json.Marshal(payload)
		fmt.Fprintf(c.out, "%s: %s\n", action, raw)
		return nil
	}
}

func (c *textChannel) printMarkdown(md string) error {
	rendered, err := c.render(md)
	if err != nil {
		fmt.Fprintln(c.out, md)
		return nil
	}
	fmt.Fprint(c.out, rendered)
	return nil
}

// reshape round-trips a payload through JSON into a typed view: pushes
// arrive as several concrete types but share the wire shape.
func reshape(payload, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func modelStateMarkdown(payload any) string {
	var state reconcile.ModelState
	if err := reshape(payload, &state); err != nil {
		return "could not decode model state"
	}

	md := fmt.Sprintf("# Fretboard (%s mode, %s)\n\n", state.Mode, state.DocumentUnit)
	if state.TemplateName != "" {
		md += fmt.Sprintf("Template: **%s**\n\n", state.TemplateName)
	}
	for _, group := range state.Groups {
		md += fmt.Sprintf("## %s\n\n", group.Label)
		md += "| Parameter | Value |\n|---|---|\n"
		for _, row := range group.Parameters {
			value := row.Expression
			if value == "" {
				value = row.Default
			}
			md += fmt.Sprintf("| %s | %s |\n", row.Label, value)
		}
		md += "\n"
	}
	if len(state.ExtraParams) > 0 {
		md += "## Custom parameters\n\n| Parameter | Value |\n|---|---|\n"
		for _, row := range state.ExtraParams {
			md += fmt.Sprintf("| %s | %s |\n", row.Name, row.Expression)
		}
		md += "\n"
	}
	if len(state.Missing) > 0 {
		md += fmt.Sprintf("Missing from document: %v\n", state.Missing)
	}
	return md
}

func templatesMarkdown(payload any) string {
	var list bridge.TemplateList
	if err := reshape(payload, &list); err != nil {
		return "could not decode template list"
	}

	md := "# Templates\n\n## Presets\n\n"
	for _, entry := range list.Presets {
		md += fmt.Sprintf("- **%s** (`%s`) %s\n", entry.Name, entry.ID, entry.Description)
	}
	md += "\n## Saved\n\n"
	if len(list.UserTemplates) == 0 {
		md += "_none_\n"
	}
	for _, entry := range list.UserTemplates {
		md += fmt.Sprintf("- **%s** (`%s`) %s\n", entry.Name, entry.ID, entry.Description)
	}
	return md
}

func timelineMarkdown(payload any) string {
	var items struct {
		Items []domain.TimelineItem `json:"items"`
	}
	if err := reshape(payload, &items); err != nil {
		return "could not decode timeline"
	}

	md := "# Timeline\n\n"
	for _, item := range items.Items {
		md += itemLine(item, 0)
	}
	return md
}

func itemLine(item domain.TimelineItem, depth int) string {
	mark := " "
	if item.Suppressed {
		mark = "x"
	}
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	line := fmt.Sprintf("%s- [%s] %s (%s)\n", indent, mark, item.Name, item.Kind)
	for _, child := range item.Children {
		line += itemLine(child, depth+1)
	}
	return line
}

func summaryMarkdown(payload any) string {
	var s domain.TimelineSummary
	if err := reshape(payload, &s); err != nil {
		return "could not decode summary"
	}
	return fmt.Sprintf(
		"# Timeline summary\n\n- total: %d\n- active: %d\n- suppressed: %d\n- groups: %d\n- features: %d\n",
		s.TotalItems, s.ActiveCount, s.SuppressedCount, s.GroupCount, s.FeatureCount)
}

func batchResultMarkdown(payload any) string {
	var r domain.TimelineBatchResult
	if err := reshape(payload, &r); err != nil {
		return "could not decode batch result"
	}
	md := fmt.Sprintf("**%s**\n", r.Message)
	for _, name := range r.Failed {
		md += fmt.Sprintf("- failed: %s\n", name)
	}
	return md
}
