package ollama

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, url string, reqTimeout time.Duration) *Client {
	t.Helper()
	return New(Config{BaseURL: url, RequestTimeout: reqTimeout, ConnectTimeout: time.Second}, zerolog.New(io.Discard))
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(Config{}, zerolog.Nop())
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("base url=%q", c.BaseURL())
	}
	if c.reqTimeout != DefaultRequestTimeout {
		t.Fatalf("timeout=%s", c.reqTimeout)
	}
	c = New(Config{BaseURL: "http://ollama:11434/"}, zerolog.Nop())
	if c.BaseURL() != "http://ollama:11434" {
		t.Fatalf("trailing slash not trimmed: %q", c.BaseURL())
	}
}

func TestDoReturnsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tags" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"models":[]}`)
	}))
	defer ts.Close()

	b, err := newTestClient(t, ts.URL, time.Second).Do(context.Background(), "list", http.MethodGet, "/api/tags", nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if string(b) != `{"models":[]}` {
		t.Fatalf("body=%q", b)
	}
}

func TestDoSendsJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type=%q", ct)
		}
		b, _ := io.ReadAll(r.Body)
		if string(b) != `{"name":"llama3"}` {
			t.Errorf("body=%s", b)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	body := struct {
		Name string `json:"name"`
	}{Name: "llama3"}
	if _, err := newTestClient(t, ts.URL, time.Second).Do(context.Background(), "delete", http.MethodDelete, "/api/delete", body); err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestDoUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"model 'nope' not found"}`)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts.URL, time.Second).Do(context.Background(), "show", http.MethodPost, "/api/show", nil)
	if !IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	ue := err.(*UpstreamError)
	if ue.Status != http.StatusNotFound || ue.StatusCode() != http.StatusNotFound {
		t.Fatalf("status=%d", ue.Status)
	}
	if ue.Message() != "model 'nope' not found" {
		t.Fatalf("message=%q", ue.Message())
	}
	if IsTransport(err) {
		t.Fatalf("upstream error must not be a transport error")
	}
}

func TestDoUpstreamErrorPlainBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts.URL, time.Second).Do(context.Background(), "list", http.MethodGet, "/api/tags", nil)
	if err == nil || err.Error() != "list: upstream status 502: bad gateway" {
		t.Fatalf("err=%v", err)
	}
}

func TestDoTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := newTestClient(t, url, time.Second).Do(context.Background(), "list", http.MethodGet, "/api/tags", nil)
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestDoTimeoutIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	start := time.Now()
	_, err := newTestClient(t, ts.URL, 50*time.Millisecond).Do(context.Background(), "list", http.MethodGet, "/api/tags", nil)
	if !IsTransport(err) {
		t.Fatalf("expected transport error on timeout, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not applied, took %s", time.Since(start))
	}
}

func TestVersion(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version" {
			t.Errorf("path=%s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"version":"0.5.7"}`)
	}))
	defer ts.Close()

	v, err := newTestClient(t, ts.URL, time.Second).Version(context.Background())
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v.Version != "0.5.7" {
		t.Fatalf("version=%q", v.Version)
	}
}
