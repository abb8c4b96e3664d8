// Package realtime serves the dashboard's WebSocket channel. Clients send
// {"event": "refresh_models"} and receive {"event": "model_update",
// "data": {"refresh": true}} on the same connection.
package realtime

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"llmm/pkg/types"
)

// Event names on the wire.
const (
	EventRefreshModels = "refresh_models"
	EventModelUpdate   = "model_update"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// ErrUnknownConnection is returned by Emit for ids that are not connected.
var ErrUnknownConnection = errors.New("realtime: unknown connection")

// Envelope is the message shape in both directions.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Options configures a Hub.
type Options struct {
	// AllowedOrigins lists browser origins allowed to connect; "*" allows
	// any. When empty the Origin host must match the request host.
	AllowedOrigins []string
}

// Hub tracks live connections and answers their events.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[string]*conn
	closed bool
}

type conn struct {
	id string
	ws *websocket.Conn
	// gorilla/websocket allows one concurrent writer.
	wmu sync.Mutex
}

// New constructs a Hub.
func New(opts Options, log zerolog.Logger) *Hub {
	h := &Hub{
		log:   log.With().Str("component", "realtime").Logger(),
		conns: make(map[string]*conn),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(opts.AllowedOrigins),
	}
	return h
}

// originChecker returns nil (gorilla's same-origin check) when no origins
// are configured.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		_, ok := set[strings.ToLower(u.Scheme+"://"+u.Host)]
		return ok
	}
}

// ServeHTTP upgrades the request and runs the connection until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	c := &conn{id: uuid.NewString(), ws: ws}
	if !h.add(c) {
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
		_ = ws.Close()
		return
	}
	h.log.Info().Str("conn", c.id).Str("remote", r.RemoteAddr).Msg("client connected")

	done := make(chan struct{})
	go h.ping(c, done)
	h.read(c)
	close(done)

	h.remove(c.id)
	_ = ws.Close()
	h.log.Info().Str("conn", c.id).Msg("client disconnected")
}

func (h *Hub) read(c *conn) {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				h.log.Warn().Str("conn", c.id).Err(err).Msg("read failed")
			}
			return
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Warn().Str("conn", c.id).Err(err).Msg("ignoring malformed message")
			continue
		}
		eventsTotal.WithLabelValues(eventLabel(msg.Event)).Inc()
		h.dispatch(c, msg)
	}
}

func (h *Hub) dispatch(c *conn, msg inbound) {
	switch msg.Event {
	case EventRefreshModels:
		h.log.Info().Str("conn", c.id).Msg("client requested model refresh")
		if err := h.Emit(c.id, EventModelUpdate, types.ModelUpdate{Refresh: true}); err != nil {
			h.log.Warn().Str("conn", c.id).Err(err).Msg("emit model_update")
		}
	default:
		h.log.Debug().Str("conn", c.id).Str("event", msg.Event).Msg("ignoring unknown event")
	}
}

func (h *Hub) ping(c *conn, done <-chan struct{}) {
	t := time.NewTicker(pingPeriod)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			c.wmu.Lock()
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.wmu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// Emit sends one event to the connection with the given id.
func (h *Hub) Emit(id, event string, data any) error {
	h.mu.Lock()
	c, ok := h.conns[id]
	h.mu.Unlock()
	if !ok {
		return ErrUnknownConnection
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(Envelope{Event: event, Data: data})
}

// Count reports the number of live connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every client and rejects new ones. http.Server.Shutdown
// does not track hijacked connections, so serve calls this explicitly.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.wmu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
		c.wmu.Unlock()
		_ = c.ws.Close()
	}
}

func (h *Hub) add(c *conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[c.id] = c
	connectionsGauge.Inc()
	return true
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[id]; ok {
		delete(h.conns, id)
		connectionsGauge.Dec()
	}
}
