// Package manager is the façade between the HTTP layer and the Ollama daemon.
// It validates requests, builds upstream payloads and converts every upstream
// failure into a result the caller can render. It is structured into small
// files by concern:
//
//   - manager.go: Manager type, constructor, readiness.
//   - errors.go: ValidationError and IsValidation.
//   - validate.go: request validation and its user-facing messages.
//   - payloads.go: upstream request bodies (field order and omission rules).
//   - models.go: list, running, pull/update, delete and show operations.
//   - inference.go: chat and generate streams.
//   - relay.go: turning adapter lines into the lines sent to clients.
//
// Buffered operations never return an error: failures are folded into the
// result (an error field, or status "error"). Streamed operations return an
// error only for validation; once dispatched, failures become a single JSON
// error line at the end of the stream.
package manager
