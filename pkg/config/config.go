package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port            string `envconfig:"PORT" default:"3000"`
	Service         string `envconfig:"SERVICE" default:"push-gateway"`
	Version         string `envconfig:"VERSION" default:"dev"`
	IsTerminal      bool   `envconfig:"IS_TERMINAL" default:"false"`
	GinMode         string `envconfig:"GIN_MODE" default:"release"`
	ServiceProtocol string `envconfig:"SERVICE_PROTOCOL"`

	// Firebase credentials. A non-empty secret takes precedence over the file.
	CredentialsFile   string `envconfig:"FIREBASE_CREDENTIALS" default:"serviceAccountKey.json"`
	CredentialsSecret string `envconfig:"FIREBASE_CREDENTIALS_SECRET"`
	ProjectID         string `envconfig:"FIREBASE_PROJECT_ID"`

	Topic string `envconfig:"NOTIFY_TOPIC" default:"everyone"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// The notify routes are HTTP only, so a gRPC-only listener is rejected.
	switch cfg.ServiceProtocol {
	case "", "http":
	default:
		return nil, fmt.Errorf("invalid SERVICE_PROTOCOL %q: must be empty or \"http\"", cfg.ServiceProtocol)
	}

	return &cfg, nil
}

// ServesGRPC reports whether the gRPC listener should be started.
func (c *Config) ServesGRPC() bool {
	return c.ServiceProtocol != "http"
}
