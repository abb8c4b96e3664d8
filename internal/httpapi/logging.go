package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// parseLevel maps a per-request level name onto zerolog. "off" disables
// logging for the request; unknown names keep def.
func parseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def
	case "off", "none":
		return zerolog.Disabled
	case "1":
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl == zerolog.NoLevel {
		return def
	}
	return lvl
}

// requestLogLevel honors ?log=<level> and then X-Log-Level.
func requestLogLevel(r *http.Request, def zerolog.Level) zerolog.Level {
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v, def)
	}
	return parseLevel(r.Header.Get("X-Log-Level"), def)
}

// accessLog attaches a request-scoped logger (request_id, per-request level)
// to the context and writes one line per completed request.
func accessLog(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lvl := requestLogLevel(r, base.GetLevel())
			lc := base.With().Str("method", r.Method).Str("path", r.URL.Path)
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				lc = lc.Str("request_id", rid)
			}
			l := lc.Logger().Level(lvl)
			r = r.WithContext(l.WithContext(r.Context()))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			l.Info().
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("dur", time.Since(start)).
				Msg("request")
		})
	}
}

// requestLogger returns the logger installed by accessLog, or a disabled one.
func requestLogger(r *http.Request) *zerolog.Logger {
	return zerolog.Ctx(r.Context())
}
