package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"llmm/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels(ctx context.Context) types.ModelsResponse
	ListRunningModels(ctx context.Context) types.ModelsResponse
	PullModel(ctx context.Context, req types.PullRequest) (<-chan string, error)
	UpdateModel(ctx context.Context, req types.PullRequest) (<-chan string, error)
	DeleteModel(ctx context.Context, name string) types.StatusResult
	ShowModelInfo(ctx context.Context, name string) json.RawMessage
	ChatStream(ctx context.Context, req types.ChatRequest) (<-chan string, error)
	GenerateStream(ctx context.Context, req types.GenerateRequest) (<-chan string, error)
	Ready(ctx context.Context) bool
}

// NewMux builds the HTTP handler. Every route, the dashboard and the probes
// included, lives under opts.BasePath.
func NewMux(svc Service, opts Options) http.Handler {
	h := &handlers{
		svc:     svc,
		maxBody: opts.maxBody(),
		baseCtx: opts.baseContext(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(opts.logger()))
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if opts.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORS.AllowedOrigins,
			AllowedMethods: opts.CORS.AllowedMethods,
			AllowedHeaders: opts.CORS.AllowedHeaders,
			MaxAge:         300,
		}))
	}

	routes := func(r chi.Router) {
		// Compression for JSON and HTML only; SSE frames must reach the client unbuffered.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Compress(5))
			r.Get("/api/models", h.listModels)
			r.Get("/api/models/running", h.listRunningModels)
			r.Delete("/api/models/{name}", h.deleteModel)
			r.Get("/api/models/{name}/info", h.showModelInfo)
			mountDashboard(r, opts)
		})

		r.Post("/api/models/pull", h.pullModel)
		r.Post("/api/models/update", h.updateModel)
		r.Post("/api/chat", h.chat)
		r.Post("/api/generate", h.generate)

		if opts.Realtime != nil {
			r.Handle("/ws", opts.Realtime)
		}

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		r.Get("/readyz", h.readyz)
		// Prometheus metrics endpoint
		r.Get("/metrics", promhttp.Handler().ServeHTTP)
		MountSwagger(r)
	}

	if opts.BasePath == "" {
		routes(r)
	} else {
		r.Route(opts.BasePath, routes)
	}
	return r
}
