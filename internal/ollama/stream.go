package ollama

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// Line is one unit of a streamed daemon response. Exactly one of Text or Err
// is set. An Err line is always the last value sent before the channel closes.
type Line struct {
	Text string
	Err  error
}

// Stream opens a streamed call and returns its lines in arrival order.
// Blank lines are dropped; nothing is reordered, merged or buffered beyond a
// single line. The call has no deadline of its own: it ends when the body is
// exhausted, on the first failure, or when ctx is cancelled. A non-2xx status
// or a failure to connect arrives as a single error Line rather than a silent
// close. The response body is closed on every exit path.
func (c *Client) Stream(ctx context.Context, op, method, path string, body any) <-chan Line {
	out := make(chan Line)
	go func() {
		defer close(out)
		c.stream(ctx, op, method, path, body, out)
	}()
	return out
}

func (c *Client) stream(ctx context.Context, op, method, path string, body any, out chan<- Line) {
	start := time.Now()
	status := "stream_error"
	defer func() { observeRequest(op, status, start) }()

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		send(ctx, out, Line{Err: c.fail(op, path, err)})
		return
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			status = "canceled"
			return
		}
		status = "transport_error"
		send(ctx, out, Line{Err: c.fail(op, path, &TransportError{Op: op, Err: err})})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status = statusLabel(resp.StatusCode)
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		send(ctx, out, Line{Err: c.fail(op, path, newUpstreamError(op, resp.StatusCode, b))})
		return
	}

	lines := upstreamStreamLines.WithLabelValues(op)
	r := bufio.NewReader(resp.Body)
	for {
		raw, err := r.ReadString('\n')
		if text := strings.TrimRight(raw, "\r\n"); strings.TrimSpace(text) != "" {
			if !send(ctx, out, Line{Text: text}) {
				status = "canceled"
				return
			}
			lines.Inc()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				status = statusLabel(resp.StatusCode)
				return
			}
			if ctx.Err() != nil {
				status = "canceled"
				return
			}
			status = "transport_error"
			send(ctx, out, Line{Err: c.fail(op, path, &TransportError{Op: op, Err: err})})
			return
		}
	}
}

// send delivers l unless the consumer has gone away.
func send(ctx context.Context, out chan<- Line, l Line) bool {
	select {
	case out <- l:
		return true
	case <-ctx.Done():
		return false
	}
}
