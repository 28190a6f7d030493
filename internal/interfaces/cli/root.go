// Package cli implements the c2c command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/richlegrande-dot/care2connect-intake/internal/config"
	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
}

// NewRootCommand builds the c2c root command.  version is injected from the
// build.
func NewRootCommand(version string) *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "c2c",
		Short: "Care2Connect intake extraction service",
		Long: `c2c extracts structured case fields (contact name, goal amount, need
category, beneficiary relationship, urgency) from free-form hardship
narratives, with per-field confidence and provenance.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "",
		"path to config file (default: environment only)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "",
		"override log level (debug|info|warn|error)")

	cmd.AddCommand(newExtractCommand(flags))
	cmd.AddCommand(newServeCommand(flags, version))
	cmd.AddCommand(newRulesCommand(flags))
	return cmd
}

// loadConfig resolves configuration for a subcommand: file if given, else
// environment, with the log-level flag winning over both.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}

// newLogger builds the process logger from resolved config.
func (f *rootFlags) newLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.NewLogger(cfg.Log)
}
