// FILE: logsink/src/internal/format/format.go
package format

import (
	"fmt"
	"os"

	"logsink/src/internal/core"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

// Formatter defines the interface for transforming a LogRecord into the
// bytes written to the console.
type Formatter interface {
	// Format renders the record, including its optional error detail line.
	// The returned slice ends with a newline and is written as a single unit
	// so records from concurrent requests never interleave.
	Format(record core.LogRecord) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a Formatter based on the configured name.
func New(name string, color bool, logger *log.Logger) (Formatter, error) {
	// Default to console if no format specified
	if name == "" {
		name = "console"
	}

	switch name {
	case "console":
		return NewConsoleFormatter(color, logger), nil
	case "plain":
		return NewConsoleFormatter(false, logger), nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}

// ResolveColor maps a color mode ("auto", "on", "off") to a concrete
// decision for the given output stream. Auto enables color only when the
// stream is a terminal.
func ResolveColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(f.Fd()))
	}
}
