package types

import "time"

// ModelDetails describes the format and family of a model as reported by Ollama.
type ModelDetails struct {
	ParentModel       string   `json:"parent_model,omitempty"`
	Format            string   `json:"format,omitempty" example:"gguf"`
	Family            string   `json:"family,omitempty" example:"llama"`
	Families          []string `json:"families,omitempty"`
	ParameterSize     string   `json:"parameter_size,omitempty" example:"8.0B"`
	QuantizationLevel string   `json:"quantization_level,omitempty" example:"Q4_0"`
}

// ModelSummary is one entry of /api/tags (local models) or /api/ps (loaded models).
// Fields only present in one of the two listings are omitted when absent.
type ModelSummary struct {
	// example: llama3:latest
	Name string `json:"name" example:"llama3:latest"`
	// example: llama3:latest
	Model   string       `json:"model,omitempty" example:"llama3:latest"`
	Size    int64        `json:"size" example:"4661224676"`
	Digest  string       `json:"digest,omitempty"`
	Details ModelDetails `json:"details"`

	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	SizeVRAM   int64      `json:"size_vram,omitempty"`
}
