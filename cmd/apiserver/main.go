// Command apiserver runs the Helios projection API.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/turtacn/Helios-Economics/internal/application/scenario"
	"github.com/turtacn/Helios-Economics/internal/config"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/prometheus"
	httpiface "github.com/turtacn/Helios-Economics/internal/interfaces/http"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// Injected at build time via -ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		logging.Default().Fatal("failed to initialise logger", logging.Err(err))
	}
	logging.SetDefault(log)
	log = log.Named("apiserver")

	metrics := prometheus.NewNoopCollector()
	if cfg.Metrics.Enabled {
		metrics = prometheus.NewAppCollector(cfg.Metrics.Namespace)
	}

	svc := scenario.NewService(cfg.Scenario, log, metrics)

	// Hot reload: a config file edit re-tunes the baseline scenario without a
	// restart.  Server and log settings still require one.
	if *configPath != "" {
		err := config.Watch(*configPath, log, func(next *config.Config) {
			svc.SetBaseline(next.Scenario)
		})
		if err != nil {
			log.Warn("configuration watch disabled", logging.Err(err))
		}
	}

	var ready atomic.Bool
	router := httpiface.NewRouter(httpiface.RouterDeps{
		Service: svc,
		Config:  cfg,
		Log:     log,
		Metrics: metrics,
		Version: common.VersionInfo{Version: version, GitCommit: gitCommit, BuildDate: buildDate},
		Ready:   ready.Load,
	})
	server := httpiface.NewServer(cfg.Server, router, log)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()
	ready.Store(true)

	log.Info("apiserver started",
		logging.String("version", version),
		logging.String("addr", cfg.Server.Addr()),
		logging.Int("categories", len(cfg.Scenario.Categories)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("signal received, shutting down", logging.String("signal", sig.String()))
		if err := server.Shutdown(context.Background()); err != nil {
			log.Error("shutdown failed", logging.Err(err))
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", logging.Err(err))
			os.Exit(1)
		}
	}
}
