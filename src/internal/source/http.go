// FILE: logsink/src/internal/source/http.go
package source

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"text/template"
	"time"

	"logsink/src/internal/core"
	"logsink/src/internal/ingest"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

// Route table of the ingestion endpoint.
const (
	ingestPath = "/logs"
	statusPath = "/"
)

// Bounded read per connection so a stalled client cannot hold a connection
// open indefinitely.
const readTimeout = 30 * time.Second

// statusPageTemplate is the operator-facing status page. It embeds the
// address clients should target as a configuration hint.
var statusPageTemplate = template.Must(template.New("status").Parse(`<html>
<head><title>logsink</title></head>
<body>
<h1>logsink</h1>
<p>Status: Running</p>
<p>Listening for log records at: <code>POST /logs</code></p>
<p>Configure your client to send logs to:</p>
<pre>http://{{.Addr}}:{{.Port}}/logs</pre>
</body>
</html>
`))

// HTTPOptions configures the HTTP ingestion endpoint.
type HTTPOptions struct {
	Host       string // bind host, "" binds all interfaces
	Port       int
	BufferSize int

	// AdvertiseAddr is the locally reachable address shown on the status
	// page. Informational only.
	AdvertiseAddr string
}

// HTTPSource receives log records via HTTP POST and hands them to
// subscribers. Each request is independent and stateless: a decoded record
// is published and discarded, never cached or persisted.
type HTTPSource struct {
	opts        HTTPOptions
	statusPage  []byte
	server      *fasthttp.Server
	subscribers []chan core.LogRecord
	mu          sync.RWMutex
	done        chan struct{}
	wg          sync.WaitGroup
	logger      *log.Logger

	// Statistics
	totalRecords   atomic.Uint64
	droppedRecords atomic.Uint64
	invalidRecords atomic.Uint64
	startTime      time.Time
	lastRecordTime atomic.Value // time.Time
}

// NewHTTPSource creates a new HTTP ingestion endpoint
func NewHTTPSource(opts HTTPOptions, logger *log.Logger) (*HTTPSource, error) {
	if opts.Port < 1 || opts.Port > 65535 {
		return nil, fmt.Errorf("http source requires a valid port: %d", opts.Port)
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 1000
	}
	if opts.AdvertiseAddr == "" {
		opts.AdvertiseAddr = "127.0.0.1"
	}

	var page bytes.Buffer
	if err := statusPageTemplate.Execute(&page, map[string]any{
		"Addr": opts.AdvertiseAddr,
		"Port": opts.Port,
	}); err != nil {
		return nil, fmt.Errorf("failed to render status page: %w", err)
	}

	h := &HTTPSource{
		opts:       opts,
		statusPage: page.Bytes(),
		done:       make(chan struct{}),
		startTime:  time.Now(),
		logger:     logger,
	}
	h.lastRecordTime.Store(time.Time{})

	return h, nil
}

func (h *HTTPSource) Subscribe() <-chan core.LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan core.LogRecord, h.opts.BufferSize)
	h.subscribers = append(h.subscribers, ch)
	return ch
}

func (h *HTTPSource) Start() error {
	h.server = &fasthttp.Server{
		Handler:         h.requestHandler,
		ReadTimeout:     readTimeout,
		CloseOnShutdown: true,
	}

	addr := fmt.Sprintf("%s:%d", h.opts.Host, h.opts.Port)

	// Start server in background
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.logger.Info("msg", "HTTP ingestion endpoint starting",
			"component", "http_source",
			"host", h.opts.Host,
			"port", h.opts.Port)

		if err := h.server.ListenAndServe(addr); err != nil {
			h.logger.Error("msg", "HTTP ingestion endpoint failed",
				"component", "http_source",
				"port", h.opts.Port,
				"error", err)
		}
	}()

	// Give server time to bind
	time.Sleep(100 * time.Millisecond)
	return nil
}

func (h *HTTPSource) Stop() {
	h.logger.Info("msg", "Stopping HTTP ingestion endpoint")
	close(h.done)

	if h.server != nil {
		// Stops accepting and lets in-flight requests complete
		if err := h.server.Shutdown(); err != nil {
			h.logger.Error("msg", "Error shutting down HTTP ingestion endpoint",
				"component", "http_source",
				"error", err)
		}
	}

	h.wg.Wait()

	// Close subscriber channels
	h.mu.Lock()
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
	h.mu.Unlock()

	h.logger.Info("msg", "HTTP ingestion endpoint stopped")
}

func (h *HTTPSource) GetStats() SourceStats {
	lastRecord, _ := h.lastRecordTime.Load().(time.Time)

	return SourceStats{
		Type:           "http",
		TotalRecords:   h.totalRecords.Load(),
		DroppedRecords: h.droppedRecords.Load(),
		StartTime:      h.startTime,
		LastRecordTime: lastRecord,
		Details: map[string]any{
			"host":            h.opts.Host,
			"port":            h.opts.Port,
			"ingest_path":     ingestPath,
			"invalid_records": h.invalidRecords.Load(),
		},
	}
}

func (h *HTTPSource) requestHandler(ctx *fasthttp.RequestCtx) {
	method := string(ctx.Method())
	path := string(ctx.Path())

	switch {
	case method == fasthttp.MethodPost && path == ingestPath:
		h.handleIngest(ctx)
	case method == fasthttp.MethodOptions && path == ingestPath:
		h.handlePreflight(ctx)
	case method == fasthttp.MethodGet && path == statusPath:
		h.handleStatus(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (h *HTTPSource) handleIngest(ctx *fasthttp.RequestCtx) {
	// Any processing failure is contained to this request and surfaced to
	// the client as a bare 400; detail goes to the operator log only.
	defer func() {
		if r := recover(); r != nil {
			h.invalidRecords.Add(1)
			h.logger.Error("msg", "Panic while handling log record",
				"component", "http_source",
				"remote", ctx.RemoteAddr().String(),
				"panic", r)
			ctx.Response.Reset()
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
		}
	}()

	record, err := ingest.Decode(ctx.PostBody())
	if err != nil {
		h.invalidRecords.Add(1)
		h.logger.Error("msg", "Rejected log record",
			"component", "http_source",
			"remote", ctx.RemoteAddr().String(),
			"error", err)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		return
	}

	h.publish(record)

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("text/plain")
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.SetBodyString("OK")
}

// handlePreflight answers the CORS handshake browsers issue before a
// cross-origin POST. No request body is read.
func (h *HTTPSource) handlePreflight(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type")
}

func (h *HTTPSource) handleStatus(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("text/html")
	ctx.SetBody(h.statusPage)
}

func (h *HTTPSource) publish(record core.LogRecord) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.totalRecords.Add(1)
	h.lastRecordTime.Store(time.Now())

	for _, ch := range h.subscribers {
		select {
		case ch <- record:
		default:
			h.droppedRecords.Add(1)
			h.logger.Debug("msg", "Dropped log record - subscriber buffer full",
				"component", "http_source")
		}
	}
}
