package api

func (s *Server) setupRoutes() {
	// Documentation
	s.app.Get("/docs", handleDocsHTML)
	s.app.Get("/docs/json", handleDocsJSON)

	// Health check
	s.app.Get("/health", s.healthHandler)

	// Downstream agents
	s.app.Get("/agents", s.agentsHandler)

	// Plan routes
	s.app.Post("/plan", s.createPlanHandler)
	s.app.Get("/plans/:id", s.getPlanHandler)
	s.app.Delete("/plans/:id", s.deletePlanHandler)
}
