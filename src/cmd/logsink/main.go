// FILE: src/cmd/logsink/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"logsink/src/internal/config"
	"logsink/src/internal/fileserver"
	"logsink/src/internal/netinfo"
	"logsink/src/internal/service"
	"logsink/src/internal/tls"
	"logsink/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	// Subcommands are dispatched before flag parsing
	if len(os.Args) > 1 && os.Args[1] == "tls" {
		if err := tls.NewCertGeneratorCommand().Execute(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := parseFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize output handler with quiet mode
	InitOutputHandler(*quiet)

	// Handle version flag
	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if *configFile != "" {
		os.Setenv("LOGSINK_CONFIG_FILE", *configFile)
	}

	// Load configuration, then layer explicit CLI flags on top
	cfg, err := config.LoadWithCLI(os.Args[1:])
	if err != nil {
		if *configFile != "" && strings.Contains(err.Error(), "not found") {
			FatalError(2, "Config file not found: %s\n", *configFile)
		}
		FatalError(1, "Failed to load config: %v\n", err)
	}

	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		FatalError(1, "Invalid configuration: %v\n", err)
	}

	// Initialize operator logger
	if err := initializeLogger(cfg); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	logger.Info("msg", "logsink starting",
		"version", version.String(),
		"config_file", *configFile,
		"host", cfg.Host,
		"port", cfg.Port)

	// Create context for shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Startup diagnostics: best-effort local address, loopback on failure
	localIP := netinfo.LocalIP()

	svc, err := service.New(ctx, cfg, localIP, logger)
	if err != nil {
		logger.Error("msg", "Failed to build service", "error", err)
		FatalError(1, "Failed to build service: %v\n", err)
	}
	if err := svc.Start(); err != nil {
		logger.Error("msg", "Failed to start service", "error", err)
		FatalError(1, "Failed to start service: %v\n", err)
	}

	// Start the TLS file server collaborator if configured
	var files *fileserver.Server
	if cfg.FileServer.Enabled {
		files, err = fileserver.New(cfg.FileServer, logger)
		if err != nil {
			logger.Error("msg", "Failed to create file server", "error", err)
			FatalError(1, "Failed to create file server: %v\n", err)
		}
		if err := files.Start(); err != nil {
			FatalError(1, "Failed to start file server: %v\n", err)
		}
	}

	printBanner(cfg, localIP)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	logger.Info("msg", "Shutdown signal received, starting graceful shutdown...")

	if files != nil {
		files.Stop()
	}

	// Shutdown service with a bounded drain window
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		svc.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("msg", "Shutdown complete")
	case <-shutdownCtx.Done():
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit")
		os.Exit(1)
	}
}

// printBanner reports the resolved address clients should target.
// Informational only, never machine-parsed.
func printBanner(cfg *config.Config, localIP string) {
	Print("logsink %s\n", version.Short())
	Print("Server running at http://%s:%d/\n", localIP, cfg.Port)
	Print("Send log records to: http://%s:%d/logs\n", localIP, cfg.Port)
	if cfg.FileServer.Enabled {
		Print("Serving %s at https://%s:%d/\n", cfg.FileServer.Root, localIP, cfg.FileServer.Port)
	}
	Print("Waiting for logs... (Ctrl+C to stop)\n")
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
