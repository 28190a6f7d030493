// Command apiserver runs the intake extraction API.  Configuration comes
// from an optional YAML file (-config) with C2C_* environment overrides.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/richlegrande-dot/care2connect-intake/internal/config"
	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/internal/interfaces/cli"
)

// Populated via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: environment only)")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	logger.Info("starting apiserver",
		logging.String("version", version),
		logging.String("commit", commit))

	if err := cli.RunServer(cfg, logger, fmt.Sprintf("%s (%s)", version, commit)); err != nil {
		logger.Error("server exited with error", logging.Err(err))
		os.Exit(1)
	}
}
