// FILE: logsink/src/internal/sink/sink.go
package sink

import (
	"context"
	"time"

	"logsink/src/internal/core"
)

// Sink represents an output destination for log records
type Sink interface {
	// Input returns the channel for sending log records to this sink
	Input() chan<- core.LogRecord

	// Start begins processing log records
	Start(ctx context.Context) error

	// Stop gracefully shuts down the sink
	Stop()

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type           string
	TotalProcessed uint64
	StartTime      time.Time
	LastProcessed  time.Time
	Details        map[string]any
}
