// FILE: logsink/src/internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	require.NoError(t, cfg.Validate())

	assert.Equal(t, "", cfg.Host, "default binds all interfaces")
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, "stdout", cfg.Console.Target)
	assert.Equal(t, "auto", cfg.Console.Color)
	assert.False(t, cfg.FileServer.Enabled)
	assert.Equal(t, 5000, cfg.FileServer.Port)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "InvalidPort",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "invalid port",
		},
		{
			name:    "PortTooLarge",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "invalid port",
		},
		{
			name:    "NonPositiveBuffer",
			mutate:  func(c *Config) { c.BufferSize = 0 },
			wantErr: "buffer size",
		},
		{
			name:    "BadConsoleTarget",
			mutate:  func(c *Config) { c.Console.Target = "split" },
			wantErr: "invalid console target",
		},
		{
			name:    "BadConsoleFormat",
			mutate:  func(c *Config) { c.Console.Format = "json" },
			wantErr: "invalid console format",
		},
		{
			name:    "BadColorMode",
			mutate:  func(c *Config) { c.Console.Color = "maybe" },
			wantErr: "invalid console color mode",
		},
		{
			name:    "BadLogOutput",
			mutate:  func(c *Config) { c.Logging.Output = "syslog" },
			wantErr: "invalid log output mode",
		},
		{
			name:    "BadLogLevel",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name: "FileServerPortCollision",
			mutate: func(c *Config) {
				c.FileServer.Enabled = true
				c.FileServer.Port = c.Port
			},
			wantErr: "collides",
		},
		{
			name: "FileServerMissingCert",
			mutate: func(c *Config) {
				c.FileServer.Enabled = true
				c.FileServer.CertFile = ""
			},
			wantErr: "cert_file",
		},
		{
			name: "FileServerRootTraversal",
			mutate: func(c *Config) {
				c.FileServer.Enabled = true
				c.FileServer.Root = "../secrets"
			},
			wantErr: "traversal",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Run("ExplicitFile", func(t *testing.T) {
		t.Setenv("LOGSINK_CONFIG_FILE", "/etc/logsink.toml")
		assert.Equal(t, "/etc/logsink.toml", GetConfigPath())
	})

	t.Run("FileRelativeToDir", func(t *testing.T) {
		t.Setenv("LOGSINK_CONFIG_FILE", "custom.toml")
		t.Setenv("LOGSINK_CONFIG_DIR", "/etc/logsink")
		assert.Equal(t, "/etc/logsink/custom.toml", GetConfigPath())
	})

	t.Run("DirOnly", func(t *testing.T) {
		t.Setenv("LOGSINK_CONFIG_FILE", "")
		t.Setenv("LOGSINK_CONFIG_DIR", "/etc/logsink")
		assert.Equal(t, "/etc/logsink/logsink.toml", GetConfigPath())
	})
}

func TestCustomEnvTransform(t *testing.T) {
	assert.Equal(t, "LOGSINK_CONSOLE_TARGET", customEnvTransform("console.target"))
	assert.Equal(t, "LOGSINK_PORT", customEnvTransform("port"))
}
