// Package config provides virtual-services configuration loaded from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const logPrefix = "config:LoadConfig"

// Config holds virtual-services configuration.
type Config struct {
	// ServiceName is reported in logs and status output.
	ServiceName string `envconfig:"SERVICE_NAME" default:"virtual-services"`

	// HealthInterval is the orchestrator's health poll period.
	HealthInterval time.Duration `envconfig:"HEALTH_POLL_INTERVAL" default:"30s"`

	// LatencyScale multiplies every simulated delay. Tests set it near zero;
	// 1.0 reproduces production-like timing.
	LatencyScale float64 `envconfig:"LATENCY_SCALE" default:"1.0"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidateForServe checks required config when running the orchestrator.
func (c *Config) ValidateForServe() error {
	if c.HealthInterval <= 0 {
		return fmt.Errorf("%s - HEALTH_POLL_INTERVAL must be positive", logPrefix)
	}
	if c.LatencyScale < 0 {
		return fmt.Errorf("%s - LATENCY_SCALE must not be negative", logPrefix)
	}
	return nil
}
