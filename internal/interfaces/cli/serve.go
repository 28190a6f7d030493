package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/richlegrande-dot/care2connect-intake/internal/config"
	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/prometheus"
	"github.com/richlegrande-dot/care2connect-intake/internal/intelligence/extraction"
	httpiface "github.com/richlegrande-dot/care2connect-intake/internal/interfaces/http"
	"github.com/richlegrande-dot/care2connect-intake/internal/telemetry"
)

// newServeCommand runs the intake API server in the foreground.
func newServeCommand(flags *rootFlags, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the intake API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			logger, err := flags.newLogger(cfg)
			if err != nil {
				return err
			}
			return RunServer(cfg, logger, version)
		},
	}
}

// RunServer wires the full service and blocks until SIGINT/SIGTERM, then
// shuts down gracefully.  Shared by "c2c serve" and the apiserver binary.
func RunServer(cfg *config.Config, logger logging.Logger, version string) error {
	var (
		collector prometheus.MetricsCollector
		metrics   *prometheus.ExtractionMetrics
	)
	if cfg.Telemetry.Enabled {
		var err error
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Telemetry.Namespace,
			Subsystem:            "intake",
			EnableProcessMetrics: cfg.Telemetry.ProcessMetrics,
			EnableGoMetrics:      cfg.Telemetry.GoMetrics,
		}, logger)
		if err != nil {
			return err
		}
		metrics = prometheus.NewExtractionMetrics(collector)
	} else {
		collector = prometheus.NewNoopCollector()
		metrics = prometheus.NewNoopExtractionMetrics()
	}

	emitter := telemetry.NewEmitter(metrics, logger, cfg.Telemetry.BufferSize)
	defer emitter.Close()

	var rules *extraction.RuleSet
	if cfg.Rules.Path != "" {
		var err error
		rules, err = extraction.LoadRulesFile(cfg.Rules.Path)
		if err != nil {
			return err
		}
		logger.Info("loaded rules overlay", logging.String("path", cfg.Rules.Path))
	}

	engine, err := extraction.NewEngine(extraction.Options{
		Rules:    rules,
		Logger:   logger,
		Recorder: emitter,
	})
	if err != nil {
		return err
	}

	if cfg.Rules.Watch {
		watcher, err := extraction.NewRulesWatcher(engine, cfg.Rules.Path, logger)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	router := httpiface.NewRouter(cfg.Server, httpiface.RouterDeps{
		Engine:    engine,
		Logger:    logger,
		Metrics:   metrics,
		Collector: collector,
		Version:   version,
	})
	server := httpiface.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	return <-errCh
}
