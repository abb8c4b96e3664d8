package manager

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"llmm/internal/ollama"
)

// readyTimeout bounds the readiness probe so /readyz never hangs on a dead daemon.
const readyTimeout = 3 * time.Second

// Upstream is the subset of the Ollama client the façade depends on.
type Upstream interface {
	Do(ctx context.Context, op, method, path string, body any) ([]byte, error)
	Stream(ctx context.Context, op, method, path string, body any) <-chan ollama.Line
	Version(ctx context.Context) (ollama.VersionInfo, error)
}

// Manager exposes model management and inference on top of an Upstream.
// It holds no per-request state.
type Manager struct {
	upstream Upstream
	log      zerolog.Logger
}

// New constructs a Manager around a shared upstream client.
func New(upstream Upstream, log zerolog.Logger) *Manager {
	return &Manager{
		upstream: upstream,
		log:      log.With().Str("component", "manager").Logger(),
	}
}

// Ready reports whether the daemon answers its version endpoint.
func (m *Manager) Ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	_, err := m.upstream.Version(ctx)
	return err == nil
}
