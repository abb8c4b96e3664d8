package manager

import (
	"context"
	"net/http"

	"llmm/pkg/types"
)

// ChatStream sends a conversation to the daemon and streams its response
// lines verbatim. Model and messages are checked before anything is sent.
func (m *Manager) ChatStream(ctx context.Context, req types.ChatRequest) (<-chan string, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	payload := chatPayload{
		Model:    req.Model,
		Messages: req.Messages,
		Stream:   true,
		Think:    req.Think,
		Options:  req.Options,
	}
	lines := m.upstream.Stream(ctx, "chat", http.MethodPost, "/api/chat", payload)
	return m.relay(ctx, "chat", req.Model, lines, errorLine), nil
}

// GenerateStream completes a free-form prompt and streams the response lines.
func (m *Manager) GenerateStream(ctx context.Context, req types.GenerateRequest) (<-chan string, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	payload := generatePayload{
		Model:   req.Model,
		Prompt:  req.Prompt,
		Stream:  true,
		Options: req.Options,
	}
	lines := m.upstream.Stream(ctx, "generate", http.MethodPost, "/api/generate", payload)
	return m.relay(ctx, "generate", req.Model, lines, errorLine), nil
}
