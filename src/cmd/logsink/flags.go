// FILE: src/cmd/logsink/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/log"
)

// Command-line flags
var (
	// General flags
	configFile  = flag.String("config", "", "Config file path")
	showVersion = flag.Bool("version", false, "Show version information")
	quiet       = flag.Bool("quiet", false, "Suppress banner and console notices")

	// Endpoint flags
	bindHost = flag.String("host", "", "Bind host for the ingestion endpoint (default: all interfaces)")
	bindPort = flag.Int("port", 8080, "Bind port for the ingestion endpoint")

	// Logging flags
	logOutput = flag.String("log-output", "", "Log output: file, stdout, stderr, both, none (overrides config)")
	logLevel  = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
)

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "logsink - HTTP Log Sink\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s tls [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()

	fmt.Fprintf(os.Stderr, "\nSubcommands:\n")
	fmt.Fprintf(os.Stderr, "  tls\tGenerate a self-signed certificate for the file server\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Listen on all interfaces, port 8080 (defaults)\n")
	fmt.Fprintf(os.Stderr, "  %s\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Bind a specific interface and port\n")
	fmt.Fprintf(os.Stderr, "  %s --host 192.168.1.50 --port 9000\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Custom config with debug operator logging\n")
	fmt.Fprintf(os.Stderr, "  %s --config /etc/logsink.toml --log-level debug\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  LOGSINK_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stderr, "  LOGSINK_CONFIG_DIR   Config directory\n")
	fmt.Fprintf(os.Stderr, "  LOGSINK_PORT         Bind port (any config key maps the same way)\n")
}

func parseFlags() error {
	flag.Parse()

	// Validate log-output flag if provided
	if *logOutput != "" {
		validOutputs := map[string]bool{
			"file": true, "stdout": true, "stderr": true,
			"both": true, "none": true,
		}
		if !validOutputs[*logOutput] {
			return fmt.Errorf("invalid log-output: %s (valid: file, stdout, stderr, both, none)", *logOutput)
		}
	}

	// Validate log-level flag if provided
	if *logLevel != "" {
		if _, err := parseLogLevel(*logLevel); err != nil {
			return fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", *logLevel)
		}
	}

	return nil
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
