package airbnb

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the mcp-airbnb server configuration.
type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoadConfig reads a YAML configuration file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == 0 {
		cfg.Port = 9301
	}

	return &cfg, nil
}
