package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"travel-planner/internal/api"
	"travel-planner/internal/config"
	"travel-planner/internal/planner"
)

func main() {
	configPath := flag.String("config", "config/planner.yaml", "path to planner configuration file")
	flag.Parse()

	// .env values override any matching environment variables.
	_ = godotenv.Overload()

	cfg, err := config.LoadPlanner(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pl, err := planner.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create planner: %v", err)
	}

	server := api.New(cfg, pl)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Starting Travel Planner API on %s:%d", cfg.Host, cfg.Port)
	for _, agent := range cfg.Agents {
		log.Printf("Agent %q at %s (keywords: %v)", agent.Name, agent.URL, agent.Keywords)
	}
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	pl.Close()
}
