package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"llmm/pkg/types"
)

// ListModels returns the models stored by the daemon (/api/tags). On failure
// the list is empty and Error is set; callers check Error, not a Go error.
func (m *Manager) ListModels(ctx context.Context) types.ModelsResponse {
	return m.listing(ctx, "list_models", "/api/tags")
}

// ListRunningModels returns the models currently loaded in memory (/api/ps),
// with the same degrade-to-empty policy as ListModels.
func (m *Manager) ListRunningModels(ctx context.Context) types.ModelsResponse {
	return m.listing(ctx, "list_running", "/api/ps")
}

func (m *Manager) listing(ctx context.Context, op, path string) types.ModelsResponse {
	b, err := m.upstream.Do(ctx, op, http.MethodGet, path, nil)
	if err == nil {
		var resp types.ModelsResponse
		if err = json.Unmarshal(b, &resp); err == nil {
			if resp.Models == nil {
				resp.Models = []types.ModelSummary{}
			}
			return resp
		}
		err = fmt.Errorf("decode %s response: %w", path, err)
	}
	m.log.Error().Str("op", op).Err(err).Msg("listing models failed")
	return types.ModelsResponse{Models: []types.ModelSummary{}, Error: err.Error()}
}

// PullModel downloads a model and streams the daemon's progress lines.
func (m *Manager) PullModel(ctx context.Context, req types.PullRequest) (<-chan string, error) {
	return m.pull(ctx, "pull", req)
}

// UpdateModel re-pulls a model; the daemon only fetches changed layers.
func (m *Manager) UpdateModel(ctx context.Context, req types.PullRequest) (<-chan string, error) {
	return m.pull(ctx, "update", req)
}

func (m *Manager) pull(ctx context.Context, op string, req types.PullRequest) (<-chan string, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	lines := m.upstream.Stream(ctx, op, http.MethodPost, "/api/pull", namePayload{Name: req.Name})
	return m.relay(ctx, op, req.Name, lines, pullErrorLine), nil
}

// DeleteModel removes a model. The daemon's response body is not exposed;
// the outcome is normalized to a StatusResult.
func (m *Manager) DeleteModel(ctx context.Context, name string) types.StatusResult {
	if err := requireName(name); err != nil {
		return types.StatusResult{Status: "error", Message: err.Error()}
	}
	if _, err := m.upstream.Do(ctx, "delete", http.MethodDelete, "/api/delete", namePayload{Name: name}); err != nil {
		m.log.Error().Str("op", "delete").Str("model", name).Err(err).Msg("deleting model failed")
		return types.StatusResult{Status: "error", Message: err.Error()}
	}
	return types.StatusResult{Status: "success", Message: fmt.Sprintf("Model %s deleted", name)}
}

// ShowModelInfo returns the daemon's /api/show document verbatim, or an
// {"error": "..."} object on failure.
func (m *Manager) ShowModelInfo(ctx context.Context, name string) json.RawMessage {
	if err := requireName(name); err != nil {
		return errorObject(err)
	}
	b, err := m.upstream.Do(ctx, "show", http.MethodPost, "/api/show", namePayload{Name: name})
	if err == nil && !json.Valid(b) {
		err = fmt.Errorf("show %s: daemon returned invalid JSON", name)
	}
	if err != nil {
		m.log.Error().Str("op", "show").Str("model", name).Err(err).Msg("fetching model info failed")
		return errorObject(err)
	}
	return json.RawMessage(b)
}

func errorObject(err error) json.RawMessage {
	b, _ := json.Marshal(types.ErrorResponse{Error: err.Error()})
	return b
}
