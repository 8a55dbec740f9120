// FILE: logsink/src/internal/fileserver/fileserver.go
package fileserver

import (
	"fmt"
	"os"
	"sync"
	"time"

	"logsink/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

const readTimeout = 30 * time.Second

// Server serves the contents of a directory over TLS using a supplied
// certificate/key pair. It is an independent collaborator of the log sink:
// separate listener, separate lifecycle, no shared state.
type Server struct {
	cfg    config.FileServerConfig
	server *fasthttp.Server
	wg     sync.WaitGroup
	logger *log.Logger
}

// New creates a TLS static file server. Missing certificate or key files
// are a startup error for this collaborator only.
func New(cfg config.FileServerConfig, logger *log.Logger) (*Server, error) {
	if _, err := os.Stat(cfg.CertFile); err != nil {
		return nil, fmt.Errorf("certificate not found: %s", cfg.CertFile)
	}
	if _, err := os.Stat(cfg.KeyFile); err != nil {
		return nil, fmt.Errorf("key file not found: %s", cfg.KeyFile)
	}
	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", cfg.Root)
	}

	fs := &fasthttp.FS{
		Root:               cfg.Root,
		IndexNames:         []string{"index.html"},
		GenerateIndexPages: false,
		AcceptByteRange:    true,
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
	}
	s.server = &fasthttp.Server{
		Handler:         fs.NewRequestHandler(),
		ReadTimeout:     readTimeout,
		CloseOnShutdown: true,
	}

	return s, nil
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info("msg", "File server starting",
			"component", "fileserver",
			"port", s.cfg.Port,
			"root", s.cfg.Root)

		if err := s.server.ListenAndServeTLS(addr, s.cfg.CertFile, s.cfg.KeyFile); err != nil {
			s.logger.Error("msg", "File server failed",
				"component", "fileserver",
				"port", s.cfg.Port,
				"error", err)
		}
	}()

	return nil
}

func (s *Server) Stop() {
	s.logger.Info("msg", "Stopping file server")
	if err := s.server.Shutdown(); err != nil {
		s.logger.Error("msg", "Error shutting down file server",
			"component", "fileserver",
			"error", err)
	}
	s.wg.Wait()
	s.logger.Info("msg", "File server stopped")
}
