package config

import (
	"strconv"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvAddr           = "LLMM_ADDR"
	EnvOllamaURL      = "OLLAMA_URL"
	EnvBasePath       = "BASE_PATH"
	EnvRequestTimeout = "LLMM_REQUEST_TIMEOUT_SECONDS"
	EnvLogLevel       = "LLMM_LOG_LEVEL"
	EnvLogFormat      = "LLMM_LOG_FORMAT"
	EnvCORSOrigins    = "LLMM_CORS_ORIGINS"
)

// FromEnv reads the supported variables through getenv (os.Getenv in
// production). Unset or unparsable values are left unspecified.
func FromEnv(getenv func(string) string) Config {
	var c Config
	if getenv == nil {
		return c
	}
	c.Addr = strings.TrimSpace(getenv(EnvAddr))
	c.OllamaURL = strings.TrimSpace(getenv(EnvOllamaURL))
	c.BasePath = strings.TrimSpace(getenv(EnvBasePath))
	if v := strings.TrimSpace(getenv(EnvRequestTimeout)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RequestTimeoutSeconds = n
		}
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(getenv(EnvLogLevel)))
	c.LogFormat = strings.ToLower(strings.TrimSpace(getenv(EnvLogFormat)))
	if origins := splitCSV(getenv(EnvCORSOrigins)); len(origins) > 0 {
		c.CORS.Enabled = true
		c.CORS.AllowedOrigins = origins
	}
	return c
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
