package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// APISpec represents the API specification.
type APISpec struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Version     string     `json:"version"`
	Endpoints   []Endpoint `json:"endpoints"`
}

// Endpoint represents an API endpoint specification.
type Endpoint struct {
	Method      string              `json:"method"`
	Path        string              `json:"path"`
	Summary     string              `json:"summary"`
	Description string              `json:"description"`
	Request     *RequestSpec        `json:"request,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

// RequestSpec represents request body specification.
type RequestSpec struct {
	ContentType string           `json:"content_type"`
	Schema      map[string]Field `json:"schema"`
	Example     any              `json:"example,omitempty"`
}

// Response represents a response specification.
type Response struct {
	Description string `json:"description"`
	Example     any    `json:"example,omitempty"`
}

// Field represents a schema field.
type Field struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// getAPISpec returns the API specification.
func getAPISpec() APISpec {
	return APISpec{
		Title:       "Travel Planner API",
		Description: "Routes trip queries to specialized A2A agents (weather forecasts, Airbnb accommodation search), aggregates their answers into a plan, and stores the plan for later retrieval.",
		Version:     "1.0.0",
		Endpoints: []Endpoint{
			{
				Method:      "GET",
				Path:        "/health",
				Summary:     "Health Check",
				Description: "Returns the health status of the API server.",
				Responses: map[string]Response{
					"200": {
						Description: "Server is healthy",
						Example:     map[string]string{"status": "ok"},
					},
				},
			},
			{
				Method:      "GET",
				Path:        "/agents",
				Summary:     "List Agents",
				Description: "Returns the downstream agents the planner routes to, with their base URLs and routing keywords.",
				Responses: map[string]Response{
					"200": {
						Description: "Configured agents",
						Example: map[string]any{
							"agents": []map[string]any{
								{"name": "weather", "url": "http://localhost:9201", "keywords": []string{"weather", "forecast"}},
								{"name": "airbnb", "url": "http://localhost:9202", "keywords": []string{"airbnb", "room", "stay"}},
							},
						},
					},
				},
			},
			{
				Method:      "POST",
				Path:        "/plan",
				Summary:     "Create Plan",
				Description: "Sends the query to every agent whose keywords match, waits for all answers, and returns the stored plan. A query matching no agent is rejected; an agent failure fails the whole plan.",
				Request: &RequestSpec{
					ContentType: "application/json",
					Schema: map[string]Field{
						"query": {Type: "string", Description: "The trip question to plan for", Required: true},
					},
					Example: map[string]string{"query": "Find a room in Paris and tell me the weather forecast"},
				},
				Responses: map[string]Response{
					"201": {
						Description: "Plan created and stored",
						Example: map[string]any{
							"plan": map[string]any{
								"id":    "plan-uuid",
								"query": "Find a room in Paris and tell me the weather forecast",
								"sections": []map[string]string{
									{"agent": "weather", "text": "Partly cloudy, highs near 22C."},
									{"agent": "airbnb", "text": "Found 3 listings in Paris..."},
								},
								"created_at": "2025-06-01T12:00:00Z",
							},
						},
					},
					"400": {
						Description: "Missing query or no agent matches it",
						Example:     map[string]string{"error": "no agent matches the query"},
					},
					"502": {
						Description: "A downstream agent failed",
						Example:     map[string]string{"error": "agent \"weather\": task failed: service unavailable"},
					},
				},
			},
			{
				Method:      "GET",
				Path:        "/plans/:id",
				Summary:     "Get Plan",
				Description: "Returns a previously created plan by ID.",
				Responses: map[string]Response{
					"200": {
						Description: "The stored plan",
						Example: map[string]any{
							"plan": map[string]any{"id": "plan-uuid", "query": "...", "sections": []any{}},
						},
					},
					"404": {
						Description: "No plan under that ID",
						Example:     map[string]string{"error": "plan not found"},
					},
				},
			},
			{
				Method:      "DELETE",
				Path:        "/plans/:id",
				Summary:     "Delete Plan",
				Description: "Removes a stored plan. Deleting an absent plan succeeds.",
				Responses: map[string]Response{
					"204": {
						Description: "Plan removed",
					},
				},
			},
		},
	}
}

// handleDocsJSON returns the API specification as JSON.
func handleDocsJSON(c *fiber.Ctx) error {
	return c.JSON(getAPISpec())
}

// handleDocsHTML renders the API specification as a documentation page.
func handleDocsHTML(c *fiber.Ctx) error {
	spec := getAPISpec()

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>` + spec.Title + `</title>
<style>
body { font-family: Georgia, serif; max-width: 860px; margin: 40px auto; padding: 0 20px; color: #222; }
h1 { border-bottom: 3px solid #222; padding-bottom: 8px; }
h2 { margin-top: 36px; }
.method { display: inline-block; font-family: monospace; font-weight: bold; padding: 2px 8px; border: 1px solid #222; margin-right: 8px; }
.path { font-family: monospace; font-size: 1.1em; }
table { border-collapse: collapse; width: 100%; margin: 12px 0; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; font-size: 0.95em; }
th { background: #f4f4f4; }
.req { color: #b00; font-size: 0.85em; }
.desc { color: #555; }
</style>
</head>
<body>
<h1>` + spec.Title + ` <small>v` + spec.Version + `</small></h1>
<p class="desc">` + spec.Description + `</p>
<p>Machine-readable version: <a href="/docs/json">/docs/json</a></p>
`)

	for _, ep := range spec.Endpoints {
		b.WriteString(`<h2><span class="method">` + ep.Method + `</span><span class="path">` + ep.Path + `</span></h2>`)
		b.WriteString(`<p class="desc">` + ep.Description + `</p>`)

		if ep.Request != nil {
			b.WriteString(`<table><tr><th>Field</th><th>Type</th><th>Description</th></tr>`)
			for name, field := range ep.Request.Schema {
				required := ""
				if field.Required {
					required = ` <span class="req">required</span>`
				}
				b.WriteString(`<tr><td><code>` + name + `</code>` + required + `</td><td>` + field.Type + `</td><td>` + field.Description + `</td></tr>`)
			}
			b.WriteString(`</table>`)
		}

		b.WriteString(`<table><tr><th>Status</th><th>Meaning</th></tr>`)
		for code, resp := range ep.Responses {
			b.WriteString(`<tr><td><code>` + code + `</code></td><td>` + resp.Description + `</td></tr>`)
		}
		b.WriteString(`</table>`)
	}

	b.WriteString(`</body>
</html>`)

	c.Type("html")
	return c.SendString(b.String())
}
