// FILE: logsink/src/internal/config/config.go
package config

import (
	"fmt"
	"strings"
)

type Config struct {
	// Bind host for the ingestion endpoint, "" binds all interfaces
	Host string `toml:"host"`

	// Bind port for the ingestion endpoint
	Port int `toml:"port"`

	// Buffer size of the record channels between endpoint and console
	BufferSize int `toml:"buffer_size"`

	// Record console output
	Console ConsoleConfig `toml:"console"`

	// Operator logging (distinct from the ingested-record console stream)
	Logging LogConfig `toml:"logging"`

	// TLS static file server collaborator
	FileServer FileServerConfig `toml:"fileserver"`
}

type ConsoleConfig struct {
	// Target stream for rendered records: "stdout" or "stderr"
	Target string `toml:"target"`

	// Format: "console" (severity-colored) or "plain"
	Format string `toml:"format"`

	// Color mode: "auto" (only when target is a terminal), "on", "off"
	Color string `toml:"color"`
}

type FileServerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Port     int    `toml:"port"`
	Root     string `toml:"root"`
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`
}

func defaults() *Config {
	return &Config{
		Host:       "",
		Port:       8080,
		BufferSize: 1000,
		Console: ConsoleConfig{
			Target: "stdout",
			Format: "console",
			Color:  "auto",
		},
		Logging: *DefaultLogConfig(),
		FileServer: FileServerConfig{
			Enabled:  false,
			Port:     5000,
			Root:     "./www",
			CertFile: "server.crt",
			KeyFile:  "server.key",
		},
	}
}

// Validate checks the full configuration surface. Exported so CLI flag
// overrides applied after loading can be re-checked.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.BufferSize < 1 {
		return fmt.Errorf("buffer size must be positive: %d", c.BufferSize)
	}

	validTargets := map[string]bool{"stdout": true, "stderr": true}
	if !validTargets[c.Console.Target] {
		return fmt.Errorf("invalid console target: %s", c.Console.Target)
	}

	validFormats := map[string]bool{"console": true, "plain": true, "": true}
	if !validFormats[c.Console.Format] {
		return fmt.Errorf("invalid console format: %s", c.Console.Format)
	}

	validColors := map[string]bool{"auto": true, "on": true, "off": true}
	if !validColors[c.Console.Color] {
		return fmt.Errorf("invalid console color mode: %s", c.Console.Color)
	}

	if err := validateLogConfig(&c.Logging); err != nil {
		return err
	}

	if c.FileServer.Enabled {
		if c.FileServer.Port < 1 || c.FileServer.Port > 65535 {
			return fmt.Errorf("invalid file server port: %d", c.FileServer.Port)
		}
		if c.FileServer.Port == c.Port {
			return fmt.Errorf("file server port collides with ingestion port: %d", c.Port)
		}
		if c.FileServer.Root == "" {
			return fmt.Errorf("file server root directory not specified")
		}
		if strings.Contains(c.FileServer.Root, "..") {
			return fmt.Errorf("file server root contains directory traversal")
		}
		if c.FileServer.CertFile == "" || c.FileServer.KeyFile == "" {
			return fmt.Errorf("file server requires cert_file and key_file")
		}
	}

	return nil
}
