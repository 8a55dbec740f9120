// FILE: logsink/src/internal/format/console.go
package format

import (
	"bytes"
	"fmt"

	"logsink/src/internal/core"

	"github.com/lixenwraith/log"
)

// ANSI SGR sequences for the severity palette.
const (
	colorWhite  = "\033[37m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

// levelColors maps uppercased severity labels to their display color. The
// key set is open: levels missing from the table render without color so
// unknown severities still display.
var levelColors = map[string]string{
	"DEBUG":   colorWhite,
	"INFO":    colorCyan,
	"WARNING": colorYellow,
	"ERROR":   colorRed,
}

// ConsoleFormatter produces human-readable terminal output: one
// severity-colored primary line, plus an indented detail line when the
// record carries error text.
type ConsoleFormatter struct {
	color  bool
	logger *log.Logger
}

// NewConsoleFormatter creates a terminal formatter. With color disabled the
// output carries no escape sequences at all.
func NewConsoleFormatter(color bool, logger *log.Logger) *ConsoleFormatter {
	return &ConsoleFormatter{
		color:  color,
		logger: logger,
	}
}

// Format composes the console line(s) for a record.
func (f *ConsoleFormatter) Format(record core.LogRecord) ([]byte, error) {
	var color, reset string
	if f.color {
		if c, ok := levelColors[record.Level]; ok {
			color = c
			reset = colorReset
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s%-7s%s ", clockColumn(record.Timestamp), color, record.Level, reset)
	if record.Tag != "" {
		fmt.Fprintf(&buf, "[%s] ", record.Tag)
	}
	buf.WriteString(record.Message)
	buf.WriteByte('\n')

	if record.Error != "" {
		fmt.Fprintf(&buf, "         %sERROR:%s %s\n", color, reset, record.Error)
	}

	return buf.Bytes(), nil
}

// Returns the formatter name
func (f *ConsoleFormatter) Name() string {
	if f.color {
		return "console"
	}
	return "plain"
}

// clockColumn extracts the HH:MM:SS portion of an ISO-8601 timestamp by
// fixed offset. A malformed timestamp yields a garbled but harmless column;
// that is documented behavior and deliberately not corrected into full
// datetime parsing. Bounds are clamped so short strings never panic.
func clockColumn(timestamp string) string {
	const start, end = 11, 19
	if len(timestamp) <= start {
		return ""
	}
	if len(timestamp) < end {
		return timestamp[start:]
	}
	return timestamp[start:end]
}
