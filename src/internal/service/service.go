// FILE: logsink/src/internal/service/service.go
package service

import (
	"context"
	"fmt"
	"os"
	"sync"

	"logsink/src/internal/config"
	"logsink/src/internal/core"
	"logsink/src/internal/format"
	"logsink/src/internal/sink"
	"logsink/src/internal/source"

	"github.com/lixenwraith/log"
)

// Service owns the ingestion endpoint and the console sink, and the
// forwarding goroutine between them. There is no other shared mutable state:
// the sink's single writer serializes console output.
type Service struct {
	source source.Source
	sink   sink.Sink
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *log.Logger
}

// New builds the record pipeline from configuration: HTTP source, console
// formatter and console sink. advertiseAddr is the locally reachable address
// shown on the status page.
func New(ctx context.Context, cfg *config.Config, advertiseAddr string, logger *log.Logger) (*Service, error) {
	consoleStream := os.Stdout
	if cfg.Console.Target == "stderr" {
		consoleStream = os.Stderr
	}

	formatter, err := format.New(cfg.Console.Format,
		format.ResolveColor(cfg.Console.Color, consoleStream), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	consoleSink, err := sink.NewConsoleSink(sink.ConsoleConfig{
		Target:     cfg.Console.Target,
		BufferSize: cfg.BufferSize,
	}, logger, formatter)
	if err != nil {
		return nil, fmt.Errorf("failed to create console sink: %w", err)
	}

	httpSource, err := source.NewHTTPSource(source.HTTPOptions{
		Host:          cfg.Host,
		Port:          cfg.Port,
		BufferSize:    cfg.BufferSize,
		AdvertiseAddr: advertiseAddr,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP source: %w", err)
	}

	serviceCtx, cancel := context.WithCancel(ctx)
	return &Service{
		source: httpSource,
		sink:   consoleSink,
		ctx:    serviceCtx,
		cancel: cancel,
		logger: logger,
	}, nil
}

// Start launches the sink, the forwarding goroutine and the listener.
func (s *Service) Start() error {
	if err := s.sink.Start(s.ctx); err != nil {
		return fmt.Errorf("failed to start sink: %w", err)
	}

	s.forward(s.source.Subscribe())

	if err := s.source.Start(); err != nil {
		return fmt.Errorf("failed to start source: %w", err)
	}
	return nil
}

// forward moves records from the source subscription to the sink.
func (s *Service) forward(records <-chan core.LogRecord) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// Panic recovery so a bad record cannot take down the listener
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("msg", "Panic in record forwarding",
					"component", "service",
					"panic", r)
			}
		}()

		for {
			select {
			case <-s.ctx.Done():
				return
			case record, ok := <-records:
				if !ok {
					return
				}

				select {
				case s.sink.Input() <- record:
				default:
					// Drop if sink buffer is full; the sink is a console,
					// not a delivery guarantee
					s.logger.Debug("msg", "Dropped log record - sink buffer full",
						"component", "service")
				}
			}
		}
	}()
}

// Shutdown stops accepting new records, lets in-flight requests complete,
// and drains what the sink has buffered.
func (s *Service) Shutdown() {
	s.logger.Info("msg", "Service shutdown initiated")

	s.source.Stop()
	s.wg.Wait()
	s.sink.Stop()
	s.cancel()

	s.logger.Info("msg", "Service shutdown complete")
}

// GetStats returns statistics for the source and sink.
func (s *Service) GetStats() map[string]any {
	return map[string]any{
		"source": s.source.GetStats(),
		"sink":   s.sink.GetStats(),
	}
}
