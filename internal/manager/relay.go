package manager

import (
	"context"
	"encoding/json"

	"llmm/internal/ollama"
)

// relay forwards adapter lines as plain strings. An error line is logged and
// replaced by the JSON rendering produced by errLine; the adapter guarantees
// it is the last one. The output closes when the input does or ctx ends.
func (m *Manager) relay(ctx context.Context, op, model string, in <-chan ollama.Line, errLine func(error) string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for l := range in {
			text := l.Text
			if l.Err != nil {
				m.log.Error().Str("op", op).Str("model", model).Err(l.Err).Msg("stream failed")
				text = errLine(l.Err)
			}
			select {
			case out <- text:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// errorLine renders a failure as {"error": "..."}.
func errorLine(err error) string {
	b, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
	return string(b)
}

// pullErrorLine renders a failure in the shape of a pull progress line so
// progress consumers see it as a terminal status.
func pullErrorLine(err error) string {
	b, _ := json.Marshal(struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}{Status: "error", Error: err.Error()})
	return string(b)
}
