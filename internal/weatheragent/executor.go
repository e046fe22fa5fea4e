// Package weatheragent exposes US weather forecasts as an A2A agent.
package weatheragent

import (
	"context"
	"fmt"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"

	"travel-planner/internal/server"
)

// Forecaster is the weather lookup surface the executor needs.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lon float64) (string, error)
	ForecastByCity(ctx context.Context, city, state string) (string, error)
}

// Executor answers forecast requests extracted from the task message.
type Executor struct {
	weather Forecaster
}

// NewExecutor creates an executor backed by the given weather client.
func NewExecutor(weather Forecaster) *Executor {
	return &Executor{weather: weather}
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

// answer resolves the query to a forecast.
func (e *Executor) answer(ctx context.Context, query string) (string, error) {
	loc, err := parseLocation(query)
	if err != nil {
		return "", err
	}
	if loc.coords {
		return e.weather.Forecast(ctx, loc.lat, loc.lon)
	}
	return e.weather.ForecastByCity(ctx, loc.city, loc.state)
}

// Cancel implements a2asrv.AgentExecutor.
func (e *Executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	return server.WriteCanceled(ctx, reqCtx, queue)
}

// Card describes the agent for discovery at the well-known path.
func Card(baseURL string) *a2a.AgentCard {
	return &a2a.AgentCard{
		Name:               "Weather Agent",
		Description:        "Helps with weather",
		URL:                baseURL,
		Version:            "1.0.0",
		ProtocolVersion:    "0.3.0",
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Capabilities: a2a.AgentCapabilities{
			Streaming: true,
		},
		Skills: []a2a.AgentSkill{{
			ID:          "weather_search",
			Name:        "Search weather",
			Description: "Helps with weather in city, or states",
			Tags:        []string{"weather"},
			Examples:    []string{"weather in LA, CA"},
		}},
		PreferredTransport: a2a.TransportProtocolJSONRPC,
	}
}

var _ a2asrv.AgentExecutor = (*Executor)(nil)
