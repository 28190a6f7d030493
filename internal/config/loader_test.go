package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: debug
  read_timeout: 5s
log:
  level: debug
  format: console
telemetry:
  namespace: testsvc
rules:
  path: /etc/c2c/rules.yaml
  watch: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "testsvc", cfg.Telemetry.Namespace)
	assert.Equal(t, "/etc/c2c/rules.yaml", cfg.Rules.Path)
	assert.True(t, cfg.Rules.Watch)

	// Unset fields still get defaults.
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(DefaultMaxBodySize), cfg.Server.MaxBodySize)
	assert.Equal(t, DefaultTelemetryBufferSize, cfg.Telemetry.BufferSize)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoadFromEnvDefaultsOnly(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultTelemetryNamespace, cfg.Telemetry.Namespace)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.False(t, cfg.Rules.Watch)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("C2C_SERVER_PORT", "3000")
	t.Setenv("C2C_SERVER_MODE", "test")
	t.Setenv("C2C_LOG_LEVEL", "warn")
	t.Setenv("C2C_TELEMETRY_ENABLED", "false")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("C2C_SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigLoad))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		ApplyDefaults(cfg)
		cfg.Telemetry.Enabled = true
		return cfg
	}

	t.Run("defaults pass", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"bad mode", func(c *Config) { c.Server.Mode = "production" }},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{"zero buffer", func(c *Config) { c.Telemetry.BufferSize = 0 }},
		{"empty namespace", func(c *Config) { c.Telemetry.Namespace = "" }},
		{"watch without path", func(c *Config) { c.Rules.Watch = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeConfigValidate))
		})
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := writeConfig(t, "server:\n  port: -1\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigValidate))
}
