package httpapi

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

const defaultMaxBodyBytes int64 = 1 << 20

// Options configures NewMux. The zero value serves at the root path with a
// 1 MiB body limit, no CORS and a disabled logger.
type Options struct {
	// BasePath is the normalized mount prefix ("" or "/x/y").
	BasePath string
	// MaxBodyBytes bounds JSON request bodies. Values <= 0 use 1 MiB.
	MaxBodyBytes int64
	// BaseContext is canceled on shutdown; in-flight streams end with it.
	BaseContext context.Context
	// Logger receives access logs and per-request stream tracing.
	Logger *zerolog.Logger
	// Realtime serves the WebSocket channel at /ws when set.
	Realtime http.Handler
	// CORS is opt-in; nothing is added to responses unless Enabled.
	CORS CORSOptions
	// Dashboard values rendered into the index page.
	Version     string
	UpstreamURL string
}

// CORSOptions mirrors config.CORSConfig without importing it.
type CORSOptions struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func (o Options) maxBody() int64 {
	if o.MaxBodyBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return o.MaxBodyBytes
}

func (o Options) baseContext() context.Context {
	if o.BaseContext == nil {
		return context.Background()
	}
	return o.BaseContext
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}
