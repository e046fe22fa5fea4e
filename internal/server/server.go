// Package server hosts a single A2A agent over HTTP: the JSON-RPC
// transport at the root path, the agent card at the well-known path,
// and a health endpoint.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
)

const shutdownTimeout = 5 * time.Second

// Server serves one agent: its executor, its card, and its task store.
type Server struct {
	addr     string
	card     *a2a.AgentCard
	executor a2asrv.AgentExecutor
	store    a2asrv.TaskStore

	server *http.Server
}

// New creates a server for one agent. Tasks persist through store across
// requests and restarts.
func New(addr string, card *a2a.AgentCard, executor a2asrv.AgentExecutor, store a2asrv.TaskStore) *Server {
	return &Server{addr: addr, card: card, executor: executor, store: store}
}

// Start runs the server until ctx is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      loggingMiddleware(s.routes()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("A2A server starting", "address", s.addr, "agent", s.card.Name)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	slog.Info("A2A server shutting down", "address", s.addr)
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) routes() *http.ServeMux {
	handler := a2asrv.NewHandler(s.executor, a2asrv.WithTaskStore(s.store))

	mux := http.NewServeMux()
	mux.Handle("/", a2asrv.NewJSONRPCHandler(handler))
	mux.Handle(a2asrv.WellKnownAgentCardPath, a2asrv.NewStaticAgentCardHandler(s.card))
	mux.HandleFunc("/health", handleHealth)
	return mux
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// loggingMiddleware logs requests without wrapping the ResponseWriter,
// which would break http.Flusher for streaming responses.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
