package e2e

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"llmm/internal/httpapi"
	"llmm/internal/manager"
	"llmm/internal/ollama"
	"llmm/internal/realtime"
)

type daemonCall struct {
	Method string
	Path   string
	Body   string
}

// daemon is a scripted stand-in for the Ollama HTTP API.
type daemon struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []daemonCall
	canceled chan struct{}
}

func newDaemon(t *testing.T) *daemon {
	t.Helper()
	d := &daemon{canceled: make(chan struct{}, 1)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"version":"0.6.2"}`)
	})
	mux.HandleFunc("GET /api/tags", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"models":[{"name":"llama3:8b","model":"llama3:8b","size":4661224676,"digest":"abc","details":{"family":"llama","parameter_size":"8.0B"}}]}`)
	})
	mux.HandleFunc("GET /api/ps", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"models":[{"name":"llama3:8b","size":5137025024,"size_vram":5137025024}]}`)
	})
	mux.HandleFunc("POST /api/pull", func(w http.ResponseWriter, r *http.Request) {
		d.record(r)
		streamLines(w, `{"status":"pulling manifest"}`, ``, `{"status":"downloading","completed":10,"total":100}`, `  `, `{"status":"success"}`)
	})
	mux.HandleFunc("DELETE /api/delete", func(w http.ResponseWriter, r *http.Request) {
		body := d.record(r)
		if strings.Contains(body, "missing") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"model 'missing' not found"}`)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/show", func(w http.ResponseWriter, r *http.Request) {
		d.record(r)
		_, _ = io.WriteString(w, `{"modelfile":"FROM llama3","parameters":"stop \"<|eot_id|>\"","details":{"family":"llama"}}`)
	})
	mux.HandleFunc("POST /api/chat", func(w http.ResponseWriter, r *http.Request) {
		body := d.record(r)
		if strings.Contains(body, `"hang"`) {
			streamLines(w, `{"message":{"role":"assistant","content":"thinking"},"done":false}`)
			<-r.Context().Done()
			d.canceled <- struct{}{}
			return
		}
		streamLines(w,
			`{"message":{"role":"assistant","content":"Hel"},"done":false}`,
			`{"message":{"role":"assistant","content":"lo"},"done":false}`,
			`{"message":{"role":"assistant","content":""},"done":true}`)
	})
	mux.HandleFunc("POST /api/generate", func(w http.ResponseWriter, r *http.Request) {
		d.record(r)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"model \"ghost\" not found, try pulling it first"}`)
	})
	d.Server = httptest.NewServer(mux)
	t.Cleanup(d.Close)
	return d
}

func (d *daemon) record(r *http.Request) string {
	b, _ := io.ReadAll(r.Body)
	d.mu.Lock()
	d.calls = append(d.calls, daemonCall{Method: r.Method, Path: r.URL.Path, Body: string(b)})
	d.mu.Unlock()
	return string(b)
}

func (d *daemon) Calls() []daemonCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]daemonCall(nil), d.calls...)
}

func streamLines(w http.ResponseWriter, lines ...string) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	f, _ := w.(http.Flusher)
	for _, l := range lines {
		_, _ = io.WriteString(w, l+"\n")
		if f != nil {
			f.Flush()
		}
	}
}

// newStack wires the real client, façade, hub and mux against upstream.
func newStack(t *testing.T, upstream, basePath string) *httptest.Server {
	t.Helper()
	log := zerolog.Nop()
	client := ollama.New(ollama.Config{BaseURL: upstream}, log)
	hub := realtime.New(realtime.Options{}, log)
	mux := httpapi.NewMux(manager.New(client, log), httpapi.Options{
		BasePath: basePath,
		Logger:   &log,
		Realtime: hub,
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return srv
}

func postJSON(t *testing.T, ctx context.Context, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil { t.Fatalf("request: %v", err) }
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("POST %s: %v", url, err) }
	return resp
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil { t.Fatalf("GET %s: %v", url, err) }
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK { t.Fatalf("GET %s status=%d", url, resp.StatusCode) }
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil { t.Fatalf("decode: %v", err) }
}

// readFrames collects SSE data payloads until the stream ends.
func readFrames(t *testing.T, resp *http.Response) []string {
	t.Helper()
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" { t.Fatalf("content-type=%q", ct) }
	var frames []string
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		if line := sc.Text(); strings.HasPrefix(line, "data: ") {
			frames = append(frames, strings.TrimPrefix(line, "data: "))
		}
	}
	return frames
}
