// Package mcp wraps the mcp-go client transports behind one Client
// interface so agents can consume tools without caring whether the
// server runs as a subprocess or behind an HTTP endpoint.
package mcp

import (
	"context"
	"fmt"
	"sort"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// Client is the interface for MCP communication.
type Client interface {
	Start() error
	Stop() error
	Tools() []Tool
	GetTool(name string) *Tool
	CallTool(ctx context.Context, name string, args map[string]any) (*CallToolResult, error)
}

// ClientConfig holds configuration for creating an MCP client.
type ClientConfig struct {
	URL     string   `yaml:"url"`     // Streamable HTTP endpoint
	Command string   `yaml:"command"` // stdio subprocess command
	Args    []string `yaml:"args"`    // stdio subprocess args
}

// NewClient creates a Client based on config.
// If URL is set, uses HTTP transport. If Command is set, uses stdio.
// If neither is set, returns a no-op client (for agents without tools).
func NewClient(cfg ClientConfig) Client {
	if cfg.URL != "" {
		return NewHTTPClient(cfg.URL)
	}
	if cfg.Command != "" {
		return NewStdioClient(cfg.Command, cfg.Args)
	}
	return &NopClient{}
}

// NewMultiClient creates one Client spanning every configured server.
// Server names are sorted so tool aggregation order is deterministic.
func NewMultiClient(servers map[string]ClientConfig) (Client, error) {
	if len(servers) == 0 {
		return &NopClient{}, nil
	}

	names := make([]string, 0, len(servers))
	for name, cfg := range servers {
		if cfg.URL == "" && cfg.Command == "" {
			return nil, fmt.Errorf("mcp server %q: url or command required", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	clients := make([]NamedClient, 0, len(names))
	for _, name := range names {
		clients = append(clients, NamedClient{Name: name, Client: NewClient(servers[name])})
	}
	return NewCompositeClient(clients), nil
}

// NopClient is a no-op MCP client for agents that don't use MCP tools.
type NopClient struct{}

func (c *NopClient) Start() error         { return nil }
func (c *NopClient) Stop() error          { return nil }
func (c *NopClient) Tools() []Tool        { return nil }
func (c *NopClient) GetTool(string) *Tool { return nil }
func (c *NopClient) CallTool(context.Context, string, map[string]any) (*CallToolResult, error) {
	return nil, fmt.Errorf("no MCP server configured")
}

// newInitializeRequest builds the initialize request both transports send.
func newInitializeRequest() mcpgo.InitializeRequest {
	req := mcpgo.InitializeRequest{}
	req.Params.ProtocolVersion = mcpgo.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcpgo.Implementation{
		Name:    "travel-planner",
		Version: "1.0.0",
	}
	req.Params.Capabilities = mcpgo.ClientCapabilities{}
	return req
}
