package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"llmm/internal/config"
	"llmm/internal/httpapi"
	"llmm/internal/manager"
	"llmm/internal/ollama"
	"llmm/internal/realtime"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(flags *cliFlags, getenv func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP server",
		Example: "  llmm serve --ollama-url http://gpu-box:11434 --base-path /llm-manager",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := flags.resolve(cmd, getenv)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), ln, cfg, log)
		},
	}
}

// newHandler wires the upstream client, the façade, the realtime hub and the
// HTTP mux for cfg.
func newHandler(ctx context.Context, cfg config.Config, log zerolog.Logger) (http.Handler, *realtime.Hub) {
	client := ollama.New(ollama.Config{
		BaseURL:        cfg.OllamaURL,
		RequestTimeout: cfg.RequestTimeout(),
		ConnectTimeout: cfg.ConnectTimeout(),
	}, log)
	mgr := manager.New(client, log)

	var origins []string
	if cfg.CORS.Enabled {
		origins = cfg.CORS.AllowedOrigins
	}
	hub := realtime.New(realtime.Options{AllowedOrigins: origins}, log)

	mux := httpapi.NewMux(mgr, httpapi.Options{
		BasePath:     cfg.BasePath,
		MaxBodyBytes: cfg.MaxBodyBytes,
		BaseContext:  ctx,
		Logger:       &log,
		Realtime:     hub,
		CORS: httpapi.CORSOptions{
			Enabled:        cfg.CORS.Enabled,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: cfg.CORS.AllowedMethods,
			AllowedHeaders: cfg.CORS.AllowedHeaders,
		},
		Version:     version,
		UpstreamURL: cfg.OllamaURL,
	})
	return mux, hub
}

// serve runs the server on ln until ctx is canceled, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, cfg config.Config, log zerolog.Logger) error {
	handler, hub := newHandler(ctx, cfg, log)
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", ln.Addr().String()).
			Str("ollama_url", cfg.OllamaURL).
			Str("base_path", cfg.BasePath).
			Str("version", version).
			Msg("llmm listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		hub.Close()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown error")
			return err
		}
		return nil
	})
	return g.Wait()
}
