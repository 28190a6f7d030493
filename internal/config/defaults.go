package config

import "time"

// Default values applied to any field left unset by the file and the
// environment.
const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultMaxBodySize     = 1 << 20 // 1 MiB; transcripts are text
	DefaultShutdownTimeout = 30 * time.Second

	DefaultTelemetryNamespace  = "care2connect"
	DefaultTelemetryBufferSize = 1024
)

// ApplyDefaults fills zero-valued fields with platform defaults.  It never
// overrides a value the operator set explicitly.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.Telemetry.Namespace == "" {
		cfg.Telemetry.Namespace = DefaultTelemetryNamespace
	}
	if cfg.Telemetry.BufferSize == 0 {
		cfg.Telemetry.BufferSize = DefaultTelemetryBufferSize
	}
}
