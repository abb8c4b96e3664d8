package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultBaseURL        = "http://localhost:11434"
	DefaultRequestTimeout = 300 * time.Second
	defaultConnectTimeout = 10 * time.Second

	// maxErrorBody caps how much of a failed response is kept for error reporting.
	maxErrorBody = 4096
)

// Config holds the static connection settings for the daemon.
type Config struct {
	BaseURL string
	// RequestTimeout bounds buffered calls. Streamed calls never carry a deadline.
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
}

// Client talks to a running Ollama daemon over HTTP. It holds no per-request
// state and is safe for concurrent use; construct it once and share it.
type Client struct {
	baseURL    string
	reqTimeout time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// New constructs a Client. Zero-valued Config fields fall back to defaults.
func New(cfg Config, log zerolog.Logger) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// Timeout stays 0: buffered calls get their deadline from the context in Do,
	// streamed calls live as long as the caller's context.
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		reqTimeout: cfg.RequestTimeout,
		httpClient: &http.Client{Transport: tr, Timeout: 0},
		log:        log.With().Str("component", "ollama").Logger(),
	}
}

// BaseURL returns the normalized daemon URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Do performs a buffered call and returns the response body. The call is
// bounded by the configured request timeout. A non-2xx status yields an
// *UpstreamError; failing to reach the daemon yields a *TransportError.
func (c *Client) Do(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.reqTimeout)
	defer cancel()

	start := time.Now()
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		observeRequest(op, "request_error", start)
		return nil, c.fail(op, path, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest(op, "transport_error", start)
		return nil, c.fail(op, path, &TransportError{Op: op, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observeRequest(op, statusLabel(resp.StatusCode), start)
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, c.fail(op, path, newUpstreamError(op, resp.StatusCode, b))
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		observeRequest(op, "transport_error", start)
		return nil, c.fail(op, path, &TransportError{Op: op, Err: err})
	}
	observeRequest(op, statusLabel(resp.StatusCode), start)
	return b, nil
}

// VersionInfo is the body of GET /api/version.
type VersionInfo struct {
	Version string `json:"version"`
}

// Version asks the daemon for its version. It doubles as a reachability probe.
func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	var v VersionInfo
	b, err := c.Do(ctx, "version", http.MethodGet, "/api/version", nil)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("decode version: %w", err)
	}
	return v, nil
}

// fail logs a failed upstream call and returns err unchanged.
func (c *Client) fail(op, path string, err error) error {
	ev := c.log.Warn().Str("op", op).Str("path", path)
	if ue, ok := err.(*UpstreamError); ok {
		ev = ev.Int("status", ue.Status)
	}
	ev.Err(err).Msg("upstream call failed")
	return err
}
