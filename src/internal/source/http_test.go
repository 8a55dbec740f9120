// FILE: logsink/src/internal/source/http_test.go
package source

import (
	"testing"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func newTestSource(t *testing.T) *HTTPSource {
	t.Helper()
	h, err := NewHTTPSource(HTTPOptions{
		Port:          8080,
		BufferSize:    16,
		AdvertiseAddr: "192.168.1.50",
	}, newTestLogger())
	require.NoError(t, err)
	return h
}

// invoke drives the request handler directly without binding a socket.
func invoke(h *HTTPSource, method, path string, body []byte) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != nil {
		req.SetBody(body)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h.requestHandler(ctx)
	return ctx
}

func TestNewHTTPSource_InvalidPort(t *testing.T) {
	_, err := NewHTTPSource(HTTPOptions{Port: 0}, newTestLogger())
	assert.Error(t, err)

	_, err = NewHTTPSource(HTTPOptions{Port: 70000}, newTestLogger())
	assert.Error(t, err)
}

func TestHTTPSource_IngestAccepted(t *testing.T) {
	h := newTestSource(t)
	records := h.Subscribe()

	body := []byte(`{"level":"error","message":"disk full","tag":"io","error":"ENOSPC"}`)
	ctx := invoke(h, fasthttp.MethodPost, "/logs", body)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "OK", string(ctx.Response.Body()))
	assert.Equal(t, "text/plain", string(ctx.Response.Header.ContentType()))
	assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))

	select {
	case record := <-records:
		assert.Equal(t, "ERROR", record.Level)
		assert.Equal(t, "disk full", record.Message)
		assert.Equal(t, "io", record.Tag)
		assert.Equal(t, "ENOSPC", record.Error)
	default:
		t.Fatal("expected a published record")
	}

	assert.Equal(t, uint64(1), h.GetStats().TotalRecords)
}

func TestHTTPSource_IngestEmptyObjectDefaults(t *testing.T) {
	h := newTestSource(t)
	records := h.Subscribe()

	ctx := invoke(h, fasthttp.MethodPost, "/logs", []byte(`{}`))
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	record := <-records
	assert.Equal(t, "INFO", record.Level)
	assert.Empty(t, record.Message)
	assert.Empty(t, record.Tag)
	assert.NotEmpty(t, record.Timestamp)
}

func TestHTTPSource_IngestMalformed(t *testing.T) {
	h := newTestSource(t)
	records := h.Subscribe()

	ctx := invoke(h, fasthttp.MethodPost, "/logs", []byte(`not json`))

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())

	select {
	case <-records:
		t.Fatal("malformed body must not publish a record")
	default:
	}

	stats := h.GetStats()
	assert.Equal(t, uint64(0), stats.TotalRecords)
	assert.Equal(t, uint64(1), stats.Details["invalid_records"])
}

func TestHTTPSource_Preflight(t *testing.T) {
	h := newTestSource(t)

	ctx := invoke(h, fasthttp.MethodOptions, "/logs", nil)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
	assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, "POST, OPTIONS", string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")))
	assert.Equal(t, "Content-Type", string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")))
}

func TestHTTPSource_StatusPage(t *testing.T) {
	h := newTestSource(t)

	ctx := invoke(h, fasthttp.MethodGet, "/", nil)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "text/html", string(ctx.Response.Header.ContentType()))
	assert.Contains(t, string(ctx.Response.Body()), "http://192.168.1.50:8080/logs")
}

func TestHTTPSource_UnknownRoutes(t *testing.T) {
	h := newTestSource(t)

	testCases := []struct {
		name   string
		method string
		path   string
	}{
		{"GetUnknown", fasthttp.MethodGet, "/unknown"},
		{"GetLogs", fasthttp.MethodGet, "/logs"},
		{"PostRoot", fasthttp.MethodPost, "/"},
		{"PutLogs", fasthttp.MethodPut, "/logs"},
		{"DeleteLogs", fasthttp.MethodDelete, "/logs"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := invoke(h, tc.method, tc.path, nil)
			assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
			assert.Empty(t, ctx.Response.Body())
		})
	}
}

func TestHTTPSource_DropsWhenSubscriberFull(t *testing.T) {
	h, err := NewHTTPSource(HTTPOptions{Port: 8080, BufferSize: 1}, newTestLogger())
	require.NoError(t, err)
	h.Subscribe() // never drained

	invoke(h, fasthttp.MethodPost, "/logs", []byte(`{"message":"first"}`))
	ctx := invoke(h, fasthttp.MethodPost, "/logs", []byte(`{"message":"second"}`))

	// Client still gets an acknowledgement; the drop is a sink-side concern
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, uint64(1), h.GetStats().DroppedRecords)
}
