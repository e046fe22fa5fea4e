// Package airbnbagent exposes accommodation search as an A2A agent backed
// by MCP tool servers.
package airbnbagent

import (
	"context"
	"fmt"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"

	"travel-planner/internal/mcp"
	"travel-planner/internal/server"
)

// searchTool is the tool name the agent calls on its MCP servers.
const searchTool = "airbnb_search"

// Executor answers accommodation searches extracted from the task message.
type Executor struct {
	tools mcp.Client
}

// NewExecutor creates an executor calling tools through the given client.
func NewExecutor(tools mcp.Client) *Executor {
	return &Executor{tools: tools}
}

// Execute implements a2asrv.AgentExecutor.
func (e *Executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	if reqCtx.Message == nil {
		return fmt.Errorf("message not provided")
	}
	query := server.MessageText(reqCtx.Message)

	return server.RunTextTask(ctx, reqCtx, queue, func(ctx context.Context) (string, error) {
		return e.answer(ctx, query)
	})
}

// answer resolves the query to a search result.
func (e *Executor) answer(ctx context.Context, query string) (string, error) {
	params, err := parseSearch(query)
	if err != nil {
		return "", err
	}

	result, err := e.tools.CallTool(ctx, searchTool, params.toolArgs())
	if err != nil {
		return "", fmt.Errorf("accommodation search failed: %w", err)
	}
	if result.IsError {
		return "", fmt.Errorf("accommodation search failed: %s", result.Text())
	}

	if text := result.Text(); text != "" {
		return text, nil
	}
	return "No accommodations found for this search.", nil
}

// Cancel implements a2asrv.AgentExecutor.
func (e *Executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	return server.WriteCanceled(ctx, reqCtx, queue)
}

// Card describes the agent for discovery at the well-known path.
func Card(baseURL string) *a2a.AgentCard {
	return &a2a.AgentCard{
		Name:               "Airbnb Agent",
		Description:        "Helps with searching accommodation",
		URL:                baseURL,
		Version:            "1.0.0",
		ProtocolVersion:    "0.3.0",
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Capabilities: a2a.AgentCapabilities{
			Streaming: true,
		},
		Skills: []a2a.AgentSkill{{
			ID:          "airbnb_search",
			Name:        "Search airbnb accommodation",
			Description: "Searches for Airbnb accommodations that are fully available between check-in and checkout dates",
			Tags:        []string{"airbnb accommodation"},
			Examples:    []string{"Please find a room in LA, CA, 2025-04-15 to 2025-04-18, 2 adults"},
		}},
		PreferredTransport: a2a.TransportProtocolJSONRPC,
	}
}

var _ a2asrv.AgentExecutor = (*Executor)(nil)
