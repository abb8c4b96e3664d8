package httpapi

import (
	"context"
)

// joinContexts derives a context from req that is also canceled when base is
// done, so shutdown ends in-flight streams. Request-scoped values survive.
// The returned cancel func must be called when the handler ends.
func joinContexts(base, req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	stop := context.AfterFunc(base, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
