package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// NamedClient pairs a Client with the server name it was configured under.
type NamedClient struct {
	Name   string
	Client Client
}

// CompositeClient presents several MCP servers as one Client. Tools from
// every server share a single namespace, and CallTool routes each call to
// the server that registered the tool.
type CompositeClient struct {
	mu      sync.Mutex
	subs    []NamedClient
	tools   []Tool
	owner   map[string]NamedClient
	started bool
}

// NewCompositeClient wraps the given named clients. Nothing connects until
// Start is called.
func NewCompositeClient(subs []NamedClient) *CompositeClient {
	return &CompositeClient{
		subs:  subs,
		owner: make(map[string]NamedClient),
	}
}

// Start connects every sub-client and merges their tool lists. It is
// all-or-nothing: a start failure or a duplicate tool name stops everything
// already started and returns the error.
func (c *CompositeClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	for i, sub := range c.subs {
		if err := sub.Client.Start(); err != nil {
			c.unwindLocked(i)
			return fmt.Errorf("start MCP server %q: %w", sub.Name, err)
		}
		for _, t := range sub.Client.Tools() {
			if prev, taken := c.owner[t.Name]; taken {
				c.unwindLocked(i + 1)
				return fmt.Errorf("duplicate tool name %q from MCP servers %q and %q", t.Name, prev.Name, sub.Name)
			}
			t.Server = sub.Name
			c.owner[t.Name] = sub
			c.tools = append(c.tools, t)
		}
	}

	c.started = true
	return nil
}

// unwindLocked stops the first n sub-clients in reverse order and clears
// any partially merged state. Caller holds mu.
func (c *CompositeClient) unwindLocked(n int) {
	for i := n - 1; i >= 0; i-- {
		c.subs[i].Client.Stop()
	}
	c.tools = nil
	c.owner = make(map[string]NamedClient)
}

// Stop stops every sub-client and joins their errors.
func (c *CompositeClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}
	c.started = false

	var errs []error
	for i := len(c.subs) - 1; i >= 0; i-- {
		if err := c.subs[i].Client.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.subs[i].Name, err))
		}
	}
	return errors.Join(errs...)
}

// Tools returns the merged tool list.
func (c *CompositeClient) Tools() []Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tools
}

// GetTool returns a merged tool by name, or nil if no server registered it.
func (c *CompositeClient) GetTool(name string) *Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tools {
		if c.tools[i].Name == name {
			return &c.tools[i]
		}
	}
	return nil
}

// CallTool routes the call to the server that registered the tool.
func (c *CompositeClient) CallTool(ctx context.Context, name string, args map[string]any) (*CallToolResult, error) {
	c.mu.Lock()
	sub, ok := c.owner[name]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return sub.Client.CallTool(ctx, name, args)
}

var _ Client = (*CompositeClient)(nil)
