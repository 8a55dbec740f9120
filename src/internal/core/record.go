// FILE: logsink/src/internal/core/record.go
package core

// DefaultLevel is assigned to records that arrive without a level field.
const DefaultLevel = "INFO"

// TimestampLayout is the ISO-8601 shape senders are expected to produce and
// the layout used when stamping records that arrive without a timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// LogRecord is a single log record received by the sink. Once decoded it is
// immutable and owned by the request invocation that created it; records are
// never shared, cached, or persisted.
type LogRecord struct {
	Timestamp string `json:"timestamp,omitempty"`
	Level     string `json:"level,omitempty"`
	Message   string `json:"message"`
	Tag       string `json:"tag,omitempty"`
	Error     string `json:"error,omitempty"`
}
