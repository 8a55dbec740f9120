// FILE: logsink/src/internal/source/source.go
package source

import (
	"time"

	"logsink/src/internal/core"
)

// Represents an input stream of log records
type Source interface {
	// Returns a channel that receives log records
	Subscribe() <-chan core.LogRecord

	// Begins accepting records
	Start() error

	// Gracefully shuts down the source
	Stop()

	// Returns source statistics
	GetStats() SourceStats
}

// Contains statistics about a source
type SourceStats struct {
	Type           string
	TotalRecords   uint64
	DroppedRecords uint64
	StartTime      time.Time
	LastRecordTime time.Time
	Details        map[string]any
}
