package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// writeSSE frames each line as "data: <line>\n\n" and flushes after every
// frame. It returns once lines is closed or the client stops accepting
// writes. Headers are committed before the first frame.
func writeSSE(w http.ResponseWriter, route string, lines <-chan string, log *zerolog.Logger) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	_ = rc.Flush()

	start := time.Now()
	frames := 0
	log.Info().Str("route", route).Msg("stream start")
	for line := range lines {
		if err := writeFrame(w, line); err != nil {
			log.Warn().Err(err).Str("route", route).Int("frames", frames).Msg("client write failed")
			return
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			log.Warn().Err(err).Str("route", route).Msg("flush failed")
			return
		}
		frames++
		sseFramesTotal.WithLabelValues(route).Inc()
		log.Debug().Str("route", route).Str("line", line).Msg("stream>")
	}
	log.Info().Str("route", route).Int("frames", frames).Dur("dur", time.Since(start)).Msg("stream end")
}

func writeFrame(w io.Writer, line string) error {
	buf := make([]byte, 0, len(line)+8)
	buf = append(buf, "data: "...)
	buf = append(buf, line...)
	buf = append(buf, "\n\n"...)
	_, err := w.Write(buf)
	return err
}
