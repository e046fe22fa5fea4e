// Package config loads the per-binary YAML configuration files. Every
// Load function tolerates a missing file by returning the defaults, so
// the binaries run without any configuration at all.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"travel-planner/internal/mcp"
	"travel-planner/internal/recordstore"
	"travel-planner/internal/weather"
)

// Default ports, one per binary. The PORT environment variable and the
// -port flag override them in that order.
const (
	DefaultWeatherAgentPort = 9201
	DefaultAirbnbAgentPort  = 9202
	DefaultPlannerPort      = 8080
)

// WeatherAgent holds the weather agent server configuration.
type WeatherAgent struct {
	Host     string             `yaml:"host"`
	Port     int                `yaml:"port"`
	LogLevel string             `yaml:"log_level"`
	Store    recordstore.Config `yaml:"store"`
	Weather  weather.Config     `yaml:"weather"`
}

// AirbnbAgent holds the airbnb agent server configuration. MCP maps a
// server name to its transport settings; the agent aggregates the tools
// of every configured server.
type AirbnbAgent struct {
	Host     string                      `yaml:"host"`
	Port     int                         `yaml:"port"`
	LogLevel string                      `yaml:"log_level"`
	Store    recordstore.Config          `yaml:"store"`
	MCP      map[string]mcp.ClientConfig `yaml:"mcp"`
}

// Agent is one downstream A2A agent the planner can route to. A query
// containing any of the keywords is sent to this agent.
type Agent struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Keywords []string `yaml:"keywords"`
}

// Planner holds the planner front-end configuration.
type Planner struct {
	Host    string             `yaml:"host"`
	Port    int                `yaml:"port"`
	Timeout string             `yaml:"timeout"`
	Store   recordstore.Config `yaml:"store"`
	Agents  []Agent            `yaml:"agents"`
}

// RequestTimeout returns the parsed per-plan deadline.
func (p *Planner) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return time.Minute
	}
	return d
}

// LoadWeatherAgent reads the weather agent configuration.
func LoadWeatherAgent(path string) (*WeatherAgent, error) {
	cfg := &WeatherAgent{}
	if err := load(path, cfg); err != nil {
		return nil, err
	}

	applyServerDefaults(&cfg.Host, &cfg.Port, &cfg.LogLevel, DefaultWeatherAgentPort)
	if cfg.Store.Backend == "" && cfg.Store.Location == "" {
		cfg.Store.Location = "data/weather-tasks.db"
	}
	return cfg, nil
}

// LoadAirbnbAgent reads the airbnb agent configuration.
func LoadAirbnbAgent(path string) (*AirbnbAgent, error) {
	cfg := &AirbnbAgent{}
	if err := load(path, cfg); err != nil {
		return nil, err
	}

	applyServerDefaults(&cfg.Host, &cfg.Port, &cfg.LogLevel, DefaultAirbnbAgentPort)
	if cfg.Store.Backend == "" && cfg.Store.Location == "" {
		cfg.Store.Location = "data/airbnb-tasks.db"
	}
	if len(cfg.MCP) == 0 {
		cfg.MCP = map[string]mcp.ClientConfig{
			"bnb": {
				Command: "npx",
				Args:    []string{"-y", "@openbnb/mcp-server-airbnb", "--ignore-robots-txt"},
			},
		}
	}
	return cfg, nil
}

// LoadPlanner reads the planner configuration.
func LoadPlanner(path string) (*Planner, error) {
	cfg := &Planner{}
	if err := load(path, cfg); err != nil {
		return nil, err
	}

	var level string
	applyServerDefaults(&cfg.Host, &cfg.Port, &level, DefaultPlannerPort)
	if cfg.Timeout == "" {
		cfg.Timeout = "60s"
	}
	if _, err := time.ParseDuration(cfg.Timeout); err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
	}
	if cfg.Store.Backend == "" && cfg.Store.Location == "" {
		cfg.Store.Location = "data/plans.db"
	}
	if len(cfg.Agents) == 0 {
		cfg.Agents = []Agent{
			{
				Name:     "weather",
				URL:      fmt.Sprintf("http://localhost:%d", DefaultWeatherAgentPort),
				Keywords: []string{"weather", "forecast", "temperature"},
			},
			{
				Name:     "airbnb",
				URL:      fmt.Sprintf("http://localhost:%d", DefaultAirbnbAgentPort),
				Keywords: []string{"airbnb", "room", "stay", "accommodation", "hotel"},
			},
		}
	}
	for i, agent := range cfg.Agents {
		if agent.Name == "" || agent.URL == "" {
			return nil, fmt.Errorf("agent %d: name and url are required", i)
		}
	}
	return cfg, nil
}

// load parses the file at path into cfg. A missing file leaves cfg
// zero-valued so the caller's defaults apply.
func load(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// applyServerDefaults fills host, port, and log level, honoring the PORT
// environment variable over the configured port.
func applyServerDefaults(host *string, port *int, logLevel *string, defaultPort int) {
	if *host == "" {
		*host = "0.0.0.0"
	}
	if *port == 0 {
		*port = defaultPort
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			*port = p
		}
	}
	if *logLevel == "" {
		*logLevel = "info"
	}
}

// ParseLogLevel maps a config log level onto slog. Unknown values fall
// back to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
