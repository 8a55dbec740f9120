// FILE: logsink/src/internal/sink/console.go
package sink

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"logsink/src/internal/core"
	"logsink/src/internal/format"

	"github.com/lixenwraith/log"
)

// ConsoleConfig holds configuration for the console sink
type ConsoleConfig struct {
	Target     string // "stdout" or "stderr"
	BufferSize int
}

// ConsoleSink writes formatted log records to the operator console. A single
// writer goroutine consumes the input channel and each record's rendered
// lines are issued in one Write call, so a record's primary and error lines
// never interleave with another record's output.
type ConsoleSink struct {
	input     chan core.LogRecord
	config    ConsoleConfig
	output    io.Writer
	done      chan struct{}
	startTime time.Time
	logger    *log.Logger
	formatter format.Formatter

	// Statistics
	totalProcessed atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewConsoleSink creates a new console sink
func NewConsoleSink(config ConsoleConfig, logger *log.Logger, formatter format.Formatter) (*ConsoleSink, error) {
	if config.BufferSize <= 0 {
		config.BufferSize = 1000
	}

	out := io.Writer(os.Stdout)
	if config.Target == "stderr" {
		out = os.Stderr
	}

	s := &ConsoleSink{
		input:     make(chan core.LogRecord, config.BufferSize),
		config:    config,
		output:    out,
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
		formatter: formatter,
	}
	s.lastProcessed.Store(time.Time{})

	return s, nil
}

func (s *ConsoleSink) Input() chan<- core.LogRecord {
	return s.input
}

func (s *ConsoleSink) Start(ctx context.Context) error {
	go s.processLoop(ctx)
	s.logger.Info("msg", "Console sink started",
		"component", "console_sink",
		"target", s.config.Target,
		"format", s.formatter.Name())
	return nil
}

func (s *ConsoleSink) Stop() {
	s.logger.Info("msg", "Stopping console sink")
	close(s.done)
	s.logger.Info("msg", "Console sink stopped")
}

func (s *ConsoleSink) GetStats() SinkStats {
	lastProc, _ := s.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           "console",
		TotalProcessed: s.totalProcessed.Load(),
		StartTime:      s.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"target": s.config.Target,
			"format": s.formatter.Name(),
		},
	}
}

func (s *ConsoleSink) processLoop(ctx context.Context) {
	for {
		select {
		case record, ok := <-s.input:
			if !ok {
				return
			}
			s.write(record)

		case <-ctx.Done():
			return
		case <-s.done:
			s.flush()
			return
		}
	}
}

// flush drains records still buffered at shutdown so accepted records are
// not silently discarded.
func (s *ConsoleSink) flush() {
	for {
		select {
		case record, ok := <-s.input:
			if !ok {
				return
			}
			s.write(record)
		default:
			return
		}
	}
}

func (s *ConsoleSink) write(record core.LogRecord) {
	s.totalProcessed.Add(1)
	s.lastProcessed.Store(time.Now())

	formatted, err := s.formatter.Format(record)
	if err != nil {
		s.logger.Error("msg", "Failed to format log record",
			"component", "console_sink",
			"error", err)
		return
	}
	s.output.Write(formatted)
}
