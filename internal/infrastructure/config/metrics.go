package config

import (
	"fmt"
	"time"
)

// MetricsConfig holds metrics collection and exposure configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Port for the HTTP metrics server (Prometheus endpoint)
	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Host to bind the metrics HTTP server (default: localhost for security)
	Host string `mapstructure:"host"`

	// Path for the metrics endpoint (default: /metrics)
	Path string `mapstructure:"path"`

	// How often gauges backed by the scan history are refreshed
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Address returns host:port for the metrics server
func (m MetricsConfig) Address() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}
