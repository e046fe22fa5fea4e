package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"travel-planner/internal/airbnbagent"
	"travel-planner/internal/config"
	"travel-planner/internal/mcp"
	"travel-planner/internal/recordstore"
	"travel-planner/internal/server"
	"travel-planner/internal/taskstore"
)

func main() {
	configPath := flag.String("config", "config/airbnb-agent.yaml", "path to configuration file")
	host := flag.String("host", "", "override listen host")
	port := flag.Int("port", 0, "override listen port")
	logLevel := flag.String("log-level", "", "override log level (debug|info|warn|error)")
	flag.Parse()

	// .env values override any matching environment variables.
	_ = godotenv.Overload()

	cfg, err := config.LoadAirbnbAgent(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	records, err := recordstore.New(cfg.Store)
	if err != nil {
		log.Fatalf("Failed to create record store: %v", err)
	}
	defer records.Close()

	tools, err := mcp.NewMultiClient(cfg.MCP)
	if err != nil {
		log.Fatalf("Failed to create MCP client: %v", err)
	}
	if err := tools.Start(); err != nil {
		log.Fatalf("Failed to start MCP client: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	baseURL := fmt.Sprintf("http://%s", addr)

	executor := airbnbagent.NewExecutor(tools)
	srv := server.New(addr, airbnbagent.Card(baseURL), executor, taskstore.New(records))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = srv.Start(ctx)
	if stopErr := tools.Stop(); stopErr != nil {
		slog.Warn("failed to stop MCP client", "error", stopErr)
	}
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
