// Package main is the entrypoint for the virtual-services binary.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/jazzx/virtual-services/internal/config"
	"github.com/jazzx/virtual-services/internal/server"
	"github.com/jazzx/virtual-services/pkg/orchestrator"
)

const usage = `Usage: virtual-services [command]
       virtual-services serve    Start the virtual services and health polling.
       virtual-services status   Construct the services and print their status.

Commands:
  serve    (default) Start the orchestrator and block until SIGINT/SIGTERM.
  status   Build all virtual services, print {name: running}, and exit.

Environment: HEALTH_POLL_INTERVAL (default 30s), LATENCY_SCALE (default 1.0), LOG_LEVEL (default info).
`

func main() {
	args := os.Args[1:]
	cmd := ""
	if len(args) > 0 && args[0] != "" {
		cmd = args[0]
	}

	switch cmd {
	case "status":
		if err := runStatus(); err != nil {
			log.Fatalf("virtual-services status: %v", err)
		}
		return
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	case "serve", "":
		// serve (explicit or default)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q.\n%s", cmd, usage)
		os.Exit(1)
	}

	if err := server.Run(); err != nil {
		log.Fatalf("virtual-services: %v", err)
	}
}

func runStatus() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	orch, err := orchestrator.New(orchestrator.Params{
		HealthInterval: cfg.HealthInterval,
		LatencyScale:   cfg.LatencyScale,
	})
	if err != nil {
		return fmt.Errorf("construct orchestrator: %w", err)
	}

	status := orch.GetStatus()
	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %s\n", name, status[name])
	}
	return nil
}
