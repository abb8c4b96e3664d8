package manager

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"llmm/internal/ollama"
)

// recordedCall is one request seen by the fake daemon.
type recordedCall struct {
	Method string
	Path   string
	Body   string
}

// fakeDaemon is an httptest server standing in for Ollama. It records every
// request and dispatches by path; unknown paths get 404.
type fakeDaemon struct {
	mu       sync.Mutex
	calls    []recordedCall
	handlers map[string]http.HandlerFunc
	srv      *httptest.Server
}

func newFakeDaemon(t *testing.T, handlers map[string]http.HandlerFunc) *fakeDaemon {
	t.Helper()
	d := &fakeDaemon{handlers: handlers}
	d.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		d.mu.Lock()
		d.calls = append(d.calls, recordedCall{Method: r.Method, Path: r.URL.Path, Body: string(b)})
		d.mu.Unlock()
		if h, ok := d.handlers[r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(d.srv.Close)
	return d
}

func (d *fakeDaemon) Calls() []recordedCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]recordedCall, len(d.calls))
	copy(out, d.calls)
	return out
}

// ndjson returns a handler writing the given lines one by one, flushing each.
func ndjson(lines ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		for _, l := range lines {
			_, _ = io.WriteString(w, l+"\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}

// jsonBody returns a handler answering with a fixed status and body.
func jsonBody(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newTestManager(t *testing.T, baseURL string) *Manager {
	t.Helper()
	client := ollama.New(ollama.Config{BaseURL: baseURL, RequestTimeout: 2 * time.Second, ConnectTimeout: time.Second}, zerolog.Nop())
	return New(client, zerolog.New(io.Discard))
}

// closedURL returns the address of a server that is no longer listening.
func closedURL(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	return url
}

// collect drains a line stream, failing the test if it does not close.
func collect(t *testing.T, ch <-chan string) []string {
	t.Helper()
	var out []string
	deadline := time.After(3 * time.Second)
	for {
		select {
		case l, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, l)
		case <-deadline:
			t.Fatalf("stream did not close; got %q", out)
		}
	}
}
