package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"travel-planner/internal/planner"
	"travel-planner/internal/recordstore"
)

// parseJSON attempts to parse JSON from body regardless of Content-Type.
func parseJSON(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// healthHandler returns the API health status.
func (s *Server) healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// agentsHandler returns the configured downstream agents.
func (s *Server) agentsHandler(c *fiber.Ctx) error {
	agents := s.planner.Agents()
	list := make([]fiber.Map, 0, len(agents))
	for _, agent := range agents {
		list = append(list, fiber.Map{
			"name":     agent.Name,
			"url":      agent.URL,
			"keywords": agent.Keywords,
		})
	}
	return c.JSON(fiber.Map{
		"agents": list,
	})
}

// CreatePlanRequest is the request body for creating a plan.
type CreatePlanRequest struct {
	Query string `json:"query"`
}

// createPlanHandler sends the query to the matching agents and returns
// the assembled plan.
func (s *Server) createPlanHandler(c *fiber.Ctx) error {
	var req CreatePlanRequest
	if err := parseJSON(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	plan, err := s.planner.Plan(c.UserContext(), req.Query)
	if err != nil {
		return c.Status(planStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"plan": plan,
	})
}

// getPlanHandler returns a stored plan by ID.
func (s *Server) getPlanHandler(c *fiber.Ctx) error {
	plan, err := s.planner.GetPlan(c.UserContext(), c.Params("id"))
	if errors.Is(err, recordstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "plan not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"plan": plan,
	})
}

// deletePlanHandler removes a stored plan. Deleting an absent plan
// succeeds.
func (s *Server) deletePlanHandler(c *fiber.Ctx) error {
	if err := s.planner.DeletePlan(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// planStatus maps a planning failure onto an HTTP status: routing misses
// are client errors, store failures are internal, and downstream agent
// failures surface as bad gateway.
func planStatus(err error) int {
	switch {
	case errors.Is(err, planner.ErrNoRoute):
		return fiber.StatusBadRequest
	case errors.Is(err, recordstore.ErrUnavailable),
		errors.Is(err, recordstore.ErrTimeout),
		errors.Is(err, recordstore.ErrSerialization):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadGateway
	}
}
