package mcp

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

const (
	httpClientTimeout = 30 * time.Second
	connectRetryDelay = 500 * time.Millisecond
	connectMaxRetries = 20 // 20 * 500ms = 10s max wait
)

// HTTPClient communicates with an MCP server over Streamable HTTP.
type HTTPClient struct {
	url     string
	client  *mcpclient.Client
	tools   []Tool
	mu      sync.Mutex
	started bool
}

// NewHTTPClient creates a new HTTP MCP client.
func NewHTTPClient(url string) *HTTPClient {
	return &HTTPClient{url: url}
}

// Start connects to the MCP server and loads tools.
// It retries the connection to handle startup race conditions (e.g., Docker Compose).
func (c *HTTPClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	var lastErr error
	for attempt := range connectMaxRetries {
		if err := c.connect(); err != nil {
			lastErr = err
			if attempt < connectMaxRetries-1 {
				log.Printf("MCP connection attempt %d/%d failed: %v, retrying in %v",
					attempt+1, connectMaxRetries, err, connectRetryDelay)
				time.Sleep(connectRetryDelay)
			}
			continue
		}
		c.started = true
		return nil
	}

	return fmt.Errorf("failed to connect to MCP server after %d attempts: %w", connectMaxRetries, lastErr)
}

// connect attempts a single connection to the MCP server.
func (c *HTTPClient) connect() error {
	t, err := transport.NewStreamableHTTP(c.url)
	if err != nil {
		return fmt.Errorf("transport error: %w", err)
	}
	client := mcpclient.NewClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), httpClientTimeout)
	defer cancel()

	if _, err := client.Initialize(ctx, newInitializeRequest()); err != nil {
		client.Close()
		return fmt.Errorf("failed to initialize MCP connection: %w", err)
	}

	tools, err := loadTools(ctx, client)
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to load tools: %w", err)
	}

	c.client = client
	c.tools = tools
	return nil
}

// Stop closes the connection to the MCP server.
func (c *HTTPClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}

	c.started = false
	return c.client.Close()
}

// Tools returns the available tools.
func (c *HTTPClient) Tools() []Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tools
}

// GetTool returns a specific tool by name.
func (c *HTTPClient) GetTool(name string) *Tool {
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
func (c *HTTPClient) CallTool(ctx context.Context, name string, args map[string]any) (*CallToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, httpClientTimeout)
	defer cancel()

	req := mcpgo.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.client.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("MCP tool call failed: %w", err)
	}

	return adaptCallToolResult(result), nil
}

var _ Client = (*HTTPClient)(nil)
