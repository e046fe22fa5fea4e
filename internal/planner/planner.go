// Package planner routes trip queries to downstream A2A agents, collects
// their answers, and persists the assembled plans.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"travel-planner/internal/config"
	"travel-planner/internal/recordstore"
)

// ErrNoRoute means no configured agent matched the query.
var ErrNoRoute = errors.New("no agent matches the query")

// Section is one agent's contribution to a plan.
type Section struct {
	Agent string `json:"agent"`
	Text  string `json:"text"`
}

// Plan is the assembled answer for one query.
type Plan struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"created_at"`
}

// Planner fans queries out to the matching A2A agents and stores the
// resulting plans. Agent connections are dialed on first use and reused
// across plans.
type Planner struct {
	agents       []config.Agent
	records      recordstore.Store
	codec        recordstore.Codec
	timeout      time.Duration
	pollInterval time.Duration

	mu    sync.Mutex
	conns map[string]messageClient
	dial  dialFunc
}

// New creates a Planner from cfg. The record store connection is
// established lazily on first use.
func New(cfg *config.Planner) (*Planner, error) {
	records, err := recordstore.New(cfg.Store)
	if err != nil {
		return nil, err
	}
	return &Planner{
		agents:       cfg.Agents,
		records:      records,
		codec:        recordstore.JSONCodec{},
		timeout:      cfg.RequestTimeout(),
		pollInterval: 500 * time.Millisecond,
		conns:        make(map[string]messageClient),
		dial:         dialAgent,
	}, nil
}

// Agents returns the configured downstream agents.
func (p *Planner) Agents() []config.Agent {
	return p.agents
}

// Plan sends query to every matching agent, waits for all of them, and
// persists the assembled plan. Queries no agent matches fail with
// ErrNoRoute; any agent failure fails the whole plan.
func (p *Planner) Plan(ctx context.Context, query string) (*Plan, error) {
	matched := p.route(query)
	if len(matched) == 0 {
		return nil, ErrNoRoute
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	sections := make([]Section, len(matched))
	g, gctx := errgroup.WithContext(ctx)
	for i, agent := range matched {
		g.Go(func() error {
			text, err := p.ask(gctx, agent, query)
			if err != nil {
				return fmt.Errorf("agent %q: %w", agent.Name, err)
			}
			sections[i] = Section{Agent: agent.Name, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := &Plan{
		ID:        uuid.NewString(),
		Query:     query,
		Sections:  sections,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := p.codec.Marshal(plan)
	if err != nil {
		return nil, err
	}
	if err := p.records.Save(ctx, plan.ID, payload); err != nil {
		return nil, err
	}

	slog.Info("plan created", "plan", plan.ID, "agents", len(sections))
	return plan, nil
}

// GetPlan loads a stored plan. Absence surfaces recordstore.ErrNotFound.
func (p *Planner) GetPlan(ctx context.Context, id string) (*Plan, error) {
	payload, err := p.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	plan := &Plan{}
	if err := p.codec.Unmarshal(payload, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a stored plan. Deleting an absent id is not an error.
func (p *Planner) DeletePlan(ctx context.Context, id string) error {
	return p.records.Delete(ctx, id)
}

// route returns the agents whose keywords appear in query, in
// configuration order. Matching is case-insensitive.
func (p *Planner) route(query string) []config.Agent {
	q := strings.ToLower(query)
	var matched []config.Agent
	for _, agent := range p.agents {
		for _, keyword := range agent.Keywords {
			if strings.Contains(q, strings.ToLower(keyword)) {
				matched = append(matched, agent)
				break
			}
		}
	}
	return matched
}

// Close releases the agent connections and the record store.
func (p *Planner) Close() {
	p.mu.Lock()
	conns := p.conns
	p.conns = make(map[string]messageClient)
	p.mu.Unlock()

	for name, conn := range conns {
		if err := conn.Destroy(); err != nil {
			slog.Warn("failed to close agent connection", "agent", name, "error", err)
		}
	}
	p.records.Close()
}
