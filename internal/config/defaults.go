package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Defaults applied before any file, environment or flag value.
const (
	DefaultAddr                  = ":8000"
	DefaultOllamaURL             = "http://localhost:11434"
	DefaultRequestTimeoutSeconds = 300
	DefaultConnectTimeoutSeconds = 10
	DefaultMaxBodyBytes          = 1 << 20
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "json"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:                  DefaultAddr,
		OllamaURL:             DefaultOllamaURL,
		RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
		ConnectTimeoutSeconds: DefaultConnectTimeoutSeconds,
		MaxBodyBytes:          DefaultMaxBodyBytes,
		LogLevel:              DefaultLogLevel,
		LogFormat:             DefaultLogFormat,
		CORS: CORSConfig{
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Log-Level"},
		},
	}
}

// NormalizeBasePath turns "llm-manager/" into "/llm-manager". The root
// deployment is the empty string.
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}

// Validate performs sanity checks on a resolved configuration.
func (c Config) Validate() error {
	u, err := url.Parse(c.OllamaURL)
	if err != nil {
		return fmt.Errorf("ollama_url %q: %w", c.OllamaURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ollama_url %q must be an absolute http(s) URL", c.OllamaURL)
	}
	if c.RequestTimeoutSeconds < 0 || c.ConnectTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes must not be negative, got %d", c.MaxBodyBytes)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format %q must be json or console", c.LogFormat)
	}
	if strings.ContainsAny(c.BasePath, "?#") {
		return fmt.Errorf("base_path %q must be a plain path", c.BasePath)
	}
	return nil
}

// RequestTimeout is the bound applied to buffered daemon calls.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ConnectTimeout is the dial timeout for daemon connections.
func (c Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}
