// Package mcp exposes bridge operations as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/luthierlabs/fretbridge/pkg/bridge"
)

// Version identifies the MCP server implementation to clients.
const Version = "1.0.0"

// Server wraps one bridge and exposes it as an MCP server. Unlike the
// HTTP adapter it owns the drain: every mutating tool call submits,
// drains, and then reads back, so tool results are always post-mutation.
type Server struct {
	bridge    *bridge.Bridge
	collector *collector
	mcpServer *server.MCPServer
}

// collector is the bridge.Channel for tool calls: it keeps the latest
// payload per action so handlers can answer synchronously.
type collector struct {
	mu     sync.Mutex
	latest map[string]any
}

func (c *collector) Send(action string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest[action] = payload
	return nil
}

func (c *collector) take(action string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.latest[action]
	delete(c.latest, action)
	return payload, ok
}

// NewServer creates an MCP server over the bridge and attaches its
// collector as the UI channel.
func NewServer(b *bridge.Bridge) *Server {
	s := &Server{
		bridge:    b,
		collector: &collector{latest: make(map[string]any)},
		mcpServer: server.NewMCPServer("fretbridge-mcp", Version),
	}
	b.Attach(s.collector)
	b.HandleMessage(context.Background(), bridge.ActionReady, nil)
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// dispatch sends one inbound action, drains any queued mutation, and
// returns the latest payload pushed under wantAction.
func (s *Server) dispatch(ctx context.Context, action string, payload any, wantAction string) (any, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}

	s.bridge.HandleMessage(ctx, action, body)
	s.bridge.DrainPending(ctx)

	result, ok := s.collector.take(wantAction)
	if !ok {
		return nil, fmt.Errorf("no %s produced for %s", wantAction, action)
	}
	return result, nil
}

func toolResult(payload any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerTools() {
	// TOOL: get_model_state
	s.mcpServer.AddTool(mcp.NewTool("get_model_state",
		mcp.WithDescription("Get the fretboard parameter state: schema defaults when no managed document exists, live document values otherwise."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state, err := s.dispatch(ctx, bridge.ActionGetModelState, nil, bridge.PushModelState)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toolResult(state)
	})

	// TOOL: apply_parameters
	s.mcpServer.AddTool(mcp.NewTool("apply_parameters",
		mcp.WithDescription("Apply parameter expression updates to the document, materializing the starting document first when none exists."),
		mcp.WithString("updates", mcp.Required(), mcp.Description("JSON object mapping parameter names to expressions, e.g. {\"NumFrets\":\"24\"}")),
		mcp.WithString("creates", mcp.Description("JSON array of parameters to create: [{\"name\":...,\"expression\":...,\"description\":...}]")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		updates := map[string]string{}
		if raw, ok := args["updates"].(string); ok && raw != "" {
			if err := json.Unmarshal([]byte(raw), &updates); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid updates: %v", err)), nil
			}
		}
		creates := []map[string]string{}
		if raw, ok := args["creates"].(string); ok && raw != "" {
			if err := json.Unmarshal([]byte(raw), &creates); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid creates: %v", err)), nil
			}
		}

		payload := map[string]any{"updates": updates, "creates": creates}
		state, err := s.dispatch(ctx, bridge.ActionApplyParams, payload, bridge.PushModelState)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toolResult(state)
	})

	// TOOL: get_timeline
	s.mcpServer.AddTool(mcp.NewTool("get_timeline",
		mcp.WithDescription("List the document's timeline features and groups, with suppression state and resolved group children."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		items, err := s.dispatch(ctx, bridge.ActionGetTimelineItems, nil, bridge.PushTimelineItems)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toolResult(items)
	})

	// TOOL: apply_timeline_changes
	s.mcpServer.AddTool(mcp.NewTool("apply_timeline_changes",
		mcp.WithDescription("Apply a batch of suppression changes. Group changes cascade to members; member failures are tolerated."),
		mcp.WithString("changes", mcp.Required(), mcp.Description("JSON array: [{\"name\":...,\"type\":\"Feature\"|\"Group\",\"suppressed\":bool}]")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, ok := request.GetArguments()["changes"].(string)
		if !ok || raw == "" {
			return mcp.NewToolResultError("changes is required"), nil
		}
		var changes []map[string]any
		if err := json.Unmarshal([]byte(raw), &changes); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid changes: %v", err)), nil
		}

		payload := map[string]any{"changes": changes}
		result, err := s.dispatch(ctx, bridge.ActionApplyTimeline, payload, bridge.TimelineOperationResult)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toolResult(result)
	})

	// TOOL: get_timeline_summary
	s.mcpServer.AddTool(mcp.NewTool("get_timeline_summary",
		mcp.WithDescription("Count timeline items: totals, active, suppressed, groups, features."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := s.dispatch(ctx, bridge.ActionGetTimelineSummary, nil, bridge.PushTimelineSummary)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toolResult(summary)
	})

	// TOOL: list_templates
	s.mcpServer.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List factory presets and user templates, names resolved for the document unit."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := s.dispatch(ctx, bridge.ActionGetTemplates, nil, bridge.PushTemplates)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toolResult(list)
	})
}
