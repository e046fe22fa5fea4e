package mcp

import (
	"context"

	mcpclient "github.com/mark3labs/mcp-go/client"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// loadTools fetches the tool list from a connected mcp-go client and
// converts it to the local Tool type.
func loadTools(ctx context.Context, client *mcpclient.Client) ([]Tool, error) {
	result, err := client.ListTools(ctx, mcpgo.ListToolsRequest{})
	if err != nil {
		return nil, err
	}

	tools := make([]Tool, 0, len(result.Tools))
	for _, t := range result.Tools {
		tools = append(tools, adaptTool(t))
	}
	return tools, nil
}

// adaptTool converts an mcp-go Tool to the local Tool type.
func adaptTool(t mcpgo.Tool) Tool {
	tool := Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: adaptInputSchema(t.InputSchema),
	}

	// ReadOnlyHint=true always means non-destructive. Per the MCP spec,
	// destructiveHint defaults to true when unset, so a tool is only
	// marked destructive when explicitly annotated.
	if t.Annotations.ReadOnlyHint != nil && *t.Annotations.ReadOnlyHint {
		tool.DestructiveHint = false
	} else if t.Annotations.DestructiveHint != nil {
		tool.DestructiveHint = *t.Annotations.DestructiveHint
	}

	return tool
}

// adaptInputSchema converts an mcp-go ToolInputSchema to InputSchema.
func adaptInputSchema(schema mcpgo.ToolInputSchema) InputSchema {
	is := InputSchema{
		Type:     schema.Type,
		Required: schema.Required,
	}

	if schema.Properties != nil {
		is.Properties = make(map[string]Property)
		for name, prop := range schema.Properties {
			p := Property{}
			if propMap, ok := prop.(map[string]any); ok {
				if t, ok := propMap["type"].(string); ok {
					p.Type = t
				}
				if d, ok := propMap["description"].(string); ok {
					p.Description = d
				}
			}
			is.Properties[name] = p
		}
	}

	return is
}

// adaptCallToolResult converts an mcp-go CallToolResult to the local type.
func adaptCallToolResult(result *mcpgo.CallToolResult) *CallToolResult {
	r := &CallToolResult{
		IsError: result.IsError,
	}

	for _, content := range result.Content {
		if tc, ok := mcpgo.AsTextContent(content); ok {
			r.Content = append(r.Content, ContentBlock{
				Type: "text",
				Text: tc.Text,
			})
		}
	}

	return r
}
