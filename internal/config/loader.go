package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"llmm/internal/common/fsutil"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified": Overlay skips them and Defaults fills them.
type Config struct {
	Addr                  string     `json:"addr" yaml:"addr" toml:"addr"`
	OllamaURL             string     `json:"ollama_url" yaml:"ollama_url" toml:"ollama_url"`
	BasePath              string     `json:"base_path" yaml:"base_path" toml:"base_path"`
	RequestTimeoutSeconds int        `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds"`
	ConnectTimeoutSeconds int        `json:"connect_timeout_seconds" yaml:"connect_timeout_seconds" toml:"connect_timeout_seconds"`
	MaxBodyBytes          int64      `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	LogLevel              string     `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat             string     `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORS                  CORSConfig `json:"cors" yaml:"cors" toml:"cors"`
}

// CORSConfig is opt-in; nothing is added to responses unless Enabled.
type CORSConfig struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading ~ is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Overlay copies every specified (non-zero) field of o onto c.
func (c *Config) Overlay(o Config) {
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.OllamaURL != "" {
		c.OllamaURL = o.OllamaURL
	}
	if o.BasePath != "" {
		c.BasePath = o.BasePath
	}
	if o.RequestTimeoutSeconds != 0 {
		c.RequestTimeoutSeconds = o.RequestTimeoutSeconds
	}
	if o.ConnectTimeoutSeconds != 0 {
		c.ConnectTimeoutSeconds = o.ConnectTimeoutSeconds
	}
	if o.MaxBodyBytes != 0 {
		c.MaxBodyBytes = o.MaxBodyBytes
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.CORS.Enabled {
		c.CORS.Enabled = true
	}
	if len(o.CORS.AllowedOrigins) > 0 {
		c.CORS.AllowedOrigins = append([]string(nil), o.CORS.AllowedOrigins...)
	}
	if len(o.CORS.AllowedMethods) > 0 {
		c.CORS.AllowedMethods = append([]string(nil), o.CORS.AllowedMethods...)
	}
	if len(o.CORS.AllowedHeaders) > 0 {
		c.CORS.AllowedHeaders = append([]string(nil), o.CORS.AllowedHeaders...)
	}
}

// Resolve builds the effective configuration. Precedence, lowest first:
// defaults, the config file (if path is set), the environment, overrides.
func Resolve(path string, getenv func(string) string, overrides Config) (Config, error) {
	cfg := Defaults()
	if path != "" {
		fileCfg, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg.Overlay(fileCfg)
	}
	cfg.Overlay(FromEnv(getenv))
	cfg.Overlay(overrides)
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)
	cfg.OllamaURL = strings.TrimRight(strings.TrimSpace(cfg.OllamaURL), "/")
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
