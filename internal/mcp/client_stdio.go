package mcp

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

const stdioStartTimeout = 30 * time.Second

// StdioClient runs an MCP server as a subprocess and talks to it over
// stdio through the mcp-go transport.
type StdioClient struct {
	command string
	args    []string
	client  *mcpclient.Client
	tools   []Tool
	mu      sync.Mutex
	started bool
}

// NewStdioClient creates a new stdio MCP client. The subprocess is not
// launched until Start.
func NewStdioClient(command string, args []string) *StdioClient {
	return &StdioClient{command: command, args: args}
}

// Start launches the MCP server subprocess, initializes the connection,
// and loads the available tools.
func (c *StdioClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	client, err := mcpclient.NewStdioMCPClient(c.command, os.Environ(), c.args...)
	if err != nil {
		return fmt.Errorf("failed to create MCP client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), stdioStartTimeout)
	defer cancel()

	if err := client.Start(ctx); err != nil {
		client.Close()
		return fmt.Errorf("failed to start MCP server: %w", err)
	}

	if _, err := client.Initialize(ctx, newInitializeRequest()); err != nil {
		client.Close()
		return fmt.Errorf("failed to initialize MCP connection: %w", err)
	}

	tools, err := loadTools(ctx, client)
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to load MCP tools: %w", err)
	}

	c.client = client
	c.tools = tools
	c.started = true
	return nil
}

// Stop terminates the MCP server subprocess.
func (c *StdioClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}

	c.started = false
	return c.client.Close()
}

// Tools returns the available tools from the MCP server.
func (c *StdioClient) Tools() []Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tools
}

// GetTool returns a specific tool by name.
func (c *StdioClient) GetTool(name string) *Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tools {
		if t.Name == name {
			return &t
		}
	}
	return nil
}

// CallTool executes a tool with the given arguments.
func (c *StdioClient) CallTool(ctx context.Context, name string, args map[string]any) (*CallToolResult, error) {
	req := mcpgo.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.client.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("MCP tool call failed: %w", err)
	}

	return adaptCallToolResult(result), nil
}

var _ Client = (*StdioClient)(nil)
