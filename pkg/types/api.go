package types

// PullRequest is the body of POST /api/models/pull and POST /api/models/update.
type PullRequest struct {
	// Name of the model to pull from the Ollama library.
	// example: llama3:8b
	Name string `json:"name" validate:"required" example:"llama3:8b"`
}

// ChatMessage is one turn of a conversation. Order is preserved end-to-end.
type ChatMessage struct {
	// Author of the message (system, user, assistant, tool).
	// example: user
	Role string `json:"role" example:"user"`
	// Message text.
	// example: Why is the sky blue?
	Content string `json:"content" example:"Why is the sky blue?"`
	// Optional base64-encoded images for multimodal models.
	Images []string `json:"images,omitempty"`
}

// Options carries model parameters (temperature, top_k, top_p, ...) verbatim
// to the daemon. The proxy does not interpret them.
type Options map[string]any

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	// Model to chat with.
	// example: llama3
	Model string `json:"model" validate:"required" example:"llama3"`
	// Conversation so far; must not be empty.
	Messages []ChatMessage `json:"messages" validate:"required,min=1"`
	// Optional model parameters.
	Options Options `json:"options,omitempty"`
	// Enable reasoning output on models that support it.
	// example: false
	Think bool `json:"think,omitempty" example:"false"`
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	// Model to generate with.
	// example: llama3
	Model string `json:"model" validate:"required" example:"llama3"`
	// Prompt to complete; must not be empty.
	// example: Write a haiku about the ocean.
	Prompt string `json:"prompt" validate:"required" example:"Write a haiku about the ocean."`
	// Optional model parameters.
	Options Options `json:"options,omitempty"`
}

// ModelsResponse is returned by GET /api/models and GET /api/models/running.
// On upstream failure Models is empty and Error is set.
type ModelsResponse struct {
	Models []ModelSummary `json:"models"`
	// example: connection refused
	Error string `json:"error,omitempty" example:"connection refused"`
}

// StatusResult is the normalized outcome of delete and of rejected pull/update requests.
type StatusResult struct {
	// success or error
	// example: success
	Status string `json:"status" example:"success"`
	// example: Model llama3 deleted
	Message string `json:"message" example:"Model llama3 deleted"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: Model name is required
	Error string `json:"error" example:"Model name is required"`
	// HTTP status code, set only for non-200 responses.
	// example: 400
	Code int `json:"code,omitempty" example:"400"`
}

// ModelUpdate is the payload of the model_update real-time event.
type ModelUpdate struct {
	Refresh bool `json:"refresh"`
}
