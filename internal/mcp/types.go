package mcp

import "strings"

// Tool describes an MCP tool as the agents consume it, independent of
// which transport delivered it.
type Tool struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	InputSchema     InputSchema `json:"inputSchema"`
	DestructiveHint bool        `json:"destructiveHint,omitempty"`
	Server          string      `json:"server,omitempty"`
}

// InputSchema defines the JSON schema for tool inputs.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property defines a property in the input schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// CallToolResult is the outcome of a tool call.
type CallToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock represents a piece of content in the result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Text joins all text content blocks into a single string.
func (r *CallToolResult) Text() string {
	var b strings.Builder
	for _, block := range r.Content {
		if block.Type != "text" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block.Text)
	}
	return b.String()
}
