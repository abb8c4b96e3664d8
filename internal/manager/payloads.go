package manager

import "llmm/pkg/types"

// namePayload is the body of /api/pull, /api/delete and /api/show.
type namePayload struct {
	Name string `json:"name"`
}

// chatPayload is the body of /api/chat. Think and Options are omitted, not
// null, when the caller did not set them.
type chatPayload struct {
	Model    string              `json:"model"`
	Messages []types.ChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Think    bool                `json:"think,omitempty"`
	Options  types.Options       `json:"options,omitempty"`
}

// generatePayload is the body of /api/generate.
type generatePayload struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options types.Options `json:"options,omitempty"`
}
