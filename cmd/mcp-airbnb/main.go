package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"travel-planner/internal/airbnb"

	"github.com/mark3labs/mcp-go/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	port := flag.Int("port", 0, "override listen port")
	stdio := flag.Bool("stdio", false, "serve over stdio instead of HTTP (for spawn-style configs)")
	flag.Parse()

	// Structured JSON logging on stderr; in stdio mode stdout carries the protocol.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := &airbnb.Config{
		Host: "0.0.0.0",
		Port: 9301,
	}

	if *configPath != "" {
		var err error
		cfg, err = airbnb.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	if *port != 0 {
		cfg.Port = *port
	}

	catalog := airbnb.NewServer()

	// Create MCP server
	mcpServer := server.NewMCPServer("mcp-airbnb", "1.0.0",
		server.WithToolCapabilities(true),
	)

	airbnb.RegisterTools(mcpServer, catalog)

	if *stdio {
		if err := server.ServeStdio(mcpServer); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	// Start HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	httpServer := server.NewStreamableHTTPServer(mcpServer)

	mux := http.NewServeMux()
	mux.Handle("/mcp", httpServer)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	slog.Info("server listening", "address", addr, "config", *configPath)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
