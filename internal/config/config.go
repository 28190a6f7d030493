// Package config defines all configuration structures for the intake
// service.  No I/O or parsing logic lives here — only plain data types and
// validation.  Loading lives in loader.go, defaults in defaults.go.
package config

import (
	"time"

	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// TelemetryConfig holds metrics/telemetry tunables.  Telemetry is strictly
// fire-and-forget; disabling it changes nothing about extraction behaviour.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Namespace      string `mapstructure:"namespace"`
	BufferSize     int    `mapstructure:"buffer_size"`
	ProcessMetrics bool   `mapstructure:"process_metrics"`
	GoMetrics      bool   `mapstructure:"go_metrics"`
}

// RulesConfig points at an optional YAML overlay for the engine's rule
// snapshot and controls hot reloading.
type RulesConfig struct {
	// Path is the rules overlay file.  Empty means built-in defaults only.
	Path string `mapstructure:"path"`
	// Watch enables fsnotify-based hot reloading of Path.  Each successful
	// reload is applied as an atomic whole-snapshot swap.
	Watch bool `mapstructure:"watch"`
}

// Config is the root configuration object.
type Config struct {
	Server    ServerConfig      `mapstructure:"server"`
	Log       logging.LogConfig `mapstructure:"log"`
	Telemetry TelemetryConfig   `mapstructure:"telemetry"`
	Rules     RulesConfig       `mapstructure:"rules"`
}

// Validate checks cross-field consistency after defaults were applied.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New(errors.ErrCodeConfigValidate, "server.port must be in (0, 65535]")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return errors.New(errors.ErrCodeConfigValidate, "server.mode must be debug, release or test")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New(errors.ErrCodeConfigValidate, "server.shutdown_timeout must be positive")
	}
	if c.Telemetry.BufferSize <= 0 {
		return errors.New(errors.ErrCodeConfigValidate, "telemetry.buffer_size must be positive")
	}
	if c.Telemetry.Namespace == "" {
		return errors.New(errors.ErrCodeConfigValidate, "telemetry.namespace must not be empty")
	}
	if c.Rules.Watch && c.Rules.Path == "" {
		return errors.New(errors.ErrCodeConfigValidate, "rules.watch requires rules.path")
	}
	return nil
}
