package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
)

// envPrefix is the environment variable prefix used by all service settings.
const envPrefix = "C2C"

// newViper builds a pre-configured Viper instance: YAML file type, C2C_ env
// prefix, automatic env binding, and a key replacer mapping "." → "_" so that
// nested keys like "server.port" resolve to "C2C_SERVER_PORT".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys declares every config key with its default so that
// AutomaticEnv can resolve C2C_* variables even when no file is loaded —
// viper only consults the environment for keys it knows about.
func registerKeys(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", DefaultIdleTimeout)
	v.SetDefault("server.max_body_size", DefaultMaxBodySize)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.namespace", DefaultTelemetryNamespace)
	v.SetDefault("telemetry.buffer_size", DefaultTelemetryBufferSize)
	v.SetDefault("telemetry.process_metrics", true)
	v.SetDefault("telemetry.go_metrics", true)
	v.SetDefault("rules.path", "")
	v.SetDefault("rules.watch", false)
}

// Load reads the YAML file at configPath, merges any C2C_* environment
// overrides, applies defaults for unset fields, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "failed to read config file").
			WithDetail(configPath)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from C2C_* environment variables, with
// no config file required.  Preferred for containerised deployments.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "failed to unmarshal configuration")
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
