// FILE: logsink/src/internal/format/console_test.go
package format

import (
	"strings"
	"testing"

	"logsink/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestNewFormatter(t *testing.T) {
	logger := newTestLogger()

	testCases := []struct {
		name        string
		formatName  string
		expected    string
		expectError bool
	}{
		{
			name:       "ConsoleFormatter",
			formatName: "console",
			expected:   "console",
		},
		{
			name:       "PlainFormatter",
			formatName: "plain",
			expected:   "plain",
		},
		{
			name:       "DefaultToConsole",
			formatName: "",
			expected:   "console",
		},
		{
			name:        "UnknownFormatter",
			formatName:  "json",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			formatter, err := New(tc.formatName, true, logger)
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, formatter)
			} else {
				require.NoError(t, err)
				require.NotNil(t, formatter)
				assert.Equal(t, tc.expected, formatter.Name())
			}
		})
	}
}

func TestConsoleFormatter_Format(t *testing.T) {
	logger := newTestLogger()

	t.Run("ErrorRecordWithTag", func(t *testing.T) {
		formatter := NewConsoleFormatter(true, logger)
		record := core.LogRecord{
			Timestamp: "2023-10-27T10:30:00.123456",
			Level:     "ERROR",
			Message:   "disk full",
			Tag:       "io",
			Error:     "ENOSPC",
		}

		output, err := formatter.Format(record)
		require.NoError(t, err)

		expected := "10:30:00 \033[31mERROR  \033[0m [io] disk full\n" +
			"         \033[31mERROR:\033[0m ENOSPC\n"
		assert.Equal(t, expected, string(output))
	})

	t.Run("InfoRecordNoTag", func(t *testing.T) {
		formatter := NewConsoleFormatter(true, logger)
		record := core.LogRecord{
			Timestamp: "2023-10-27T10:30:00.123456",
			Level:     "INFO",
			Message:   "ready",
		}

		output, err := formatter.Format(record)
		require.NoError(t, err)

		assert.Equal(t, "10:30:00 \033[36mINFO   \033[0m ready\n", string(output))
		assert.NotContains(t, string(output), "[", "no tag bracket when tag is empty")
	})

	t.Run("UnknownLevelNoColor", func(t *testing.T) {
		formatter := NewConsoleFormatter(true, logger)
		record := core.LogRecord{
			Timestamp: "2023-10-27T10:30:00.123456",
			Level:     "TRACE",
			Message:   "m",
		}

		output, err := formatter.Format(record)
		require.NoError(t, err)

		assert.Equal(t, "10:30:00 TRACE   m\n", string(output))
		assert.NotContains(t, string(output), "\033[")
	})

	t.Run("ColorDisabled", func(t *testing.T) {
		formatter := NewConsoleFormatter(false, logger)
		record := core.LogRecord{
			Timestamp: "2023-10-27T10:30:00.123456",
			Level:     "ERROR",
			Message:   "boom",
			Error:     "detail",
		}

		output, err := formatter.Format(record)
		require.NoError(t, err)

		assert.Equal(t, "10:30:00 ERROR   boom\n         ERROR: detail\n", string(output))
	})

	t.Run("SingleTrailingNewlinePerLine", func(t *testing.T) {
		formatter := NewConsoleFormatter(false, logger)
		output, err := formatter.Format(core.LogRecord{Timestamp: "2023-10-27T10:30:00", Level: "INFO"})
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(string(output), "\n"))
		assert.Equal(t, 1, strings.Count(string(output), "\n"))
	})
}

func TestClockColumn(t *testing.T) {
	testCases := []struct {
		name      string
		timestamp string
		expected  string
	}{
		{"WellFormed", "2023-10-27T10:30:00.123456", "10:30:00"},
		{"NoFraction", "2023-10-27T10:30:00", "10:30:00"},
		{"TooShort", "10:30:00", ""},
		{"Empty", "", ""},
		{"TruncatedClock", "2023-10-27T10:30", "10:30"},
		{"Garbage", "yesterday at lunchtime maybe", "t luncht"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, clockColumn(tc.timestamp))
		})
	}
}
