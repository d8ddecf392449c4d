// Package config loads gateway server settings from an optional YAML file
// with environment-variable overrides. Platform credentials are not handled
// here; each adapter reads its own variables so a missing credential stays
// scoped to that platform.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Server holds the HTTP gateway settings.
type Server struct {
	Host         string        `yaml:"host" env:"HUBCAST_HOST"`
	Port         int           `yaml:"port" env:"HUBCAST_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HUBCAST_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HUBCAST_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HUBCAST_IDLE_TIMEOUT"`
}

// Default returns the out-of-the-box server settings. The write timeout
// leaves room for a full five-platform dispatch with 15s adapter timeouts.
func Default() Server {
	return Server{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Load builds the server config: defaults, then the YAML file at path (if
// given), then environment overrides.
func Load(path string) (Server, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Server{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Server{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse environment config: %w", err)
	}

	return cfg, nil
}

// Address returns the host:port the server listens on.
func (s Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
