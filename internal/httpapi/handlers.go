package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"llmm/internal/manager"
	"llmm/pkg/types"
)

type handlers struct {
	svc     Service
	maxBody int64
	baseCtx context.Context
}

// listModels godoc
// @Summary      List installed models
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Router       /api/models [get]
func (h *handlers) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListModels(r.Context()))
}

// listRunningModels godoc
// @Summary      List models loaded in memory
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Router       /api/models/running [get]
func (h *handlers) listRunningModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListRunningModels(r.Context()))
}

// deleteModel godoc
// @Summary      Delete a model
// @Tags         models
// @Produce      json
// @Param        name  path  string  true  "Model name, URL-escaped"
// @Success      200  {object}  types.StatusResult
// @Router       /api/models/{name} [delete]
func (h *handlers) deleteModel(w http.ResponseWriter, r *http.Request) {
	name, ok := modelParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.DeleteModel(r.Context(), name))
}

// showModelInfo godoc
// @Summary      Show model details
// @Description  Returns the daemon's model detail document unchanged, or {"error": "..."}.
// @Tags         models
// @Produce      json
// @Param        name  path  string  true  "Model name, URL-escaped"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/models/{name}/info [get]
func (h *handlers) showModelInfo(w http.ResponseWriter, r *http.Request) {
	name, ok := modelParam(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.svc.ShowModelInfo(r.Context(), name))
}

// pullModel godoc
// @Summary      Pull a model
// @Description  Streams the daemon's pull progress as Server-Sent Events.
// @Tags         models
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  types.PullRequest  true  "Model to pull"
// @Success      200  {string}  string  "data: {\"status\":\"pulling manifest\"}"
// @Router       /api/models/pull [post]
func (h *handlers) pullModel(w http.ResponseWriter, r *http.Request) {
	h.pullLike(w, r, "pull", h.svc.PullModel)
}

// updateModel godoc
// @Summary      Update a model
// @Description  Re-pulls the model; same stream as pull.
// @Tags         models
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  types.PullRequest  true  "Model to update"
// @Success      200  {string}  string  "data: {\"status\":\"success\"}"
// @Router       /api/models/update [post]
func (h *handlers) updateModel(w http.ResponseWriter, r *http.Request) {
	h.pullLike(w, r, "update", h.svc.UpdateModel)
}

func (h *handlers) pullLike(w http.ResponseWriter, r *http.Request, route string,
	start func(context.Context, types.PullRequest) (<-chan string, error)) {
	var req types.PullRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	ctx, cancel := joinContexts(h.baseCtx, r.Context())
	defer cancel()
	lines, err := start(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeJSON(w, http.StatusOK, types.StatusResult{Status: "error", Message: msg})
			return
		}
		writeError(w, err)
		return
	}
	writeSSE(w, route, lines, requestLogger(r))
}

// chat godoc
// @Summary      Chat with a model
// @Description  Streams the daemon's chat response lines as Server-Sent Events.
// @Tags         inference
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  types.ChatRequest  true  "Chat request"
// @Success      200  {string}  string  "data: {\"message\":{\"role\":\"assistant\",\"content\":\"Hi\"},\"done\":false}"
// @Router       /api/chat [post]
func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	h.inference(w, r, "chat", func(ctx context.Context) (<-chan string, error) {
		return h.svc.ChatStream(ctx, req)
	})
}

// generate godoc
// @Summary      Generate a completion
// @Description  Streams the daemon's generate response lines as Server-Sent Events.
// @Tags         inference
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  types.GenerateRequest  true  "Generate request"
// @Success      200  {string}  string  "data: {\"response\":\"The\",\"done\":false}"
// @Router       /api/generate [post]
func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	h.inference(w, r, "generate", func(ctx context.Context) (<-chan string, error) {
		return h.svc.GenerateStream(ctx, req)
	})
}

func (h *handlers) inference(w http.ResponseWriter, r *http.Request, route string,
	start func(context.Context) (<-chan string, error)) {
	ctx, cancel := joinContexts(h.baseCtx, r.Context())
	defer cancel()
	lines, err := start(ctx)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeJSON(w, http.StatusOK, types.ErrorResponse{Error: msg})
			return
		}
		writeError(w, err)
		return
	}
	writeSSE(w, route, lines, requestLogger(r))
}

// readyz godoc
// @Summary      Readiness probe
// @Description  200 when the daemon answers, 503 otherwise.
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "ready"
// @Failure      503  {string}  string  "upstream unavailable"
// @Router       /readyz [get]
func (h *handlers) readyz(w http.ResponseWriter, r *http.Request) {
	if h.svc.Ready(r.Context()) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("upstream unavailable"))
}

// modelParam returns the unescaped {name} path parameter. chi matches on the
// raw path, so "library%2Fllama3" arrives still escaped.
func modelParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid model name escape")
		return "", false
	}
	return name, true
}

func validationMessage(err error) (string, bool) {
	var ve *manager.ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}
