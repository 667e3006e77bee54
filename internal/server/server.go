// Package server wires config, logging, and the orchestrator into a run loop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jazzx/virtual-services/internal/config"
	"github.com/jazzx/virtual-services/pkg/orchestrator"
)

const logPrefix = "server:server"

// Run starts the virtual services, blocks until a shutdown signal, then
// cleans up.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("%s - failed to load config: %w", logPrefix, err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	setupLogging(cfg.LogLevel)
	slog.Info(fmt.Sprintf("%s - Starting %s", logPrefix, cfg.ServiceName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orch, err := orchestrator.New(orchestrator.Params{
		HealthInterval: cfg.HealthInterval,
		LatencyScale:   cfg.LatencyScale,
	})
	if err != nil {
		return fmt.Errorf("%s - failed to construct orchestrator: %w", logPrefix, err)
	}

	orch.Start(ctx)
	for name := range orch.GetStatus() {
		slog.Info(fmt.Sprintf("%s - service %s running", logPrefix, name))
	}
	slog.Info(fmt.Sprintf("%s - %s is ready", logPrefix, cfg.ServiceName))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info(fmt.Sprintf("%s - Received signal %s, shutting down", logPrefix, sig))

	orch.Shutdown()
	slog.Info(fmt.Sprintf("%s - Shutdown complete", logPrefix))
	return nil
}

// setupLogging installs the default slog handler at the configured level.
func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}
