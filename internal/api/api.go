// Package api exposes the planner over REST.
package api

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"travel-planner/internal/config"
	"travel-planner/internal/planner"
)

// Planner is the planning surface the API serves.
type Planner interface {
	Plan(ctx context.Context, query string) (*planner.Plan, error)
	GetPlan(ctx context.Context, id string) (*planner.Plan, error)
	DeletePlan(ctx context.Context, id string) error
	Agents() []config.Agent
}

// Server holds the API server components.
type Server struct {
	app     *fiber.App
	planner Planner
	config  *config.Planner
}

// New creates a new API server.
func New(cfg *config.Planner, pl Planner) *Server {
	app := fiber.New(fiber.Config{
		AppName: "Travel Planner",
	})

	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} | ${path} | rid=${locals:requestid}\n",
	}))

	server := &Server{
		app:     app,
		planner: pl,
		config:  cfg,
	}

	server.setupRoutes()

	return server
}

// Start begins listening on the configured host and port.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
