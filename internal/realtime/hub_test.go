package realtime

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newTestHub(t *testing.T, opts Options) (*Hub, *httptest.Server) {
	t.Helper()
	h := New(opts, zerolog.Nop())
	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		h.Close()
		srv.Close()
	})
	return h, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil { t.Fatalf("dial: %v", err) }
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) { t.Fatalf("condition not met in time") }
		time.Sleep(5 * time.Millisecond)
	}
}

func readText(t *testing.T, c *websocket.Conn) string {
	t.Helper()
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := c.ReadMessage()
	if err != nil { t.Fatalf("read: %v", err) }
	return string(data)
}

func expectSilence(t *testing.T, c *websocket.Conn) {
	t.Helper()
	_ = c.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	_, data, err := c.ReadMessage()
	if err == nil { t.Fatalf("unexpected message %s", data) }
	if ne, ok := err.(net.Error); !ok || !ne.Timeout() { t.Fatalf("expected timeout, got %v", err) }
}

func TestRefreshModelsRepliesToRequesterOnly(t *testing.T) {
	h, srv := newTestHub(t, Options{})
	a := dial(t, srv)
	b := dial(t, srv)
	waitFor(t, func() bool { return h.Count() == 2 })

	if err := a.WriteMessage(websocket.TextMessage, []byte(`{"event":"refresh_models"}`)); err != nil { t.Fatalf("write: %v", err) }
	if got := readText(t, a); got != `{"event":"model_update","data":{"refresh":true}}` { t.Fatalf("got %s", got) }
	expectSilence(t, b)
}

func TestUnknownAndMalformedMessagesAreIgnored(t *testing.T) {
	h, srv := newTestHub(t, Options{})
	a := dial(t, srv)
	waitFor(t, func() bool { return h.Count() == 1 })

	_ = a.WriteMessage(websocket.TextMessage, []byte(`{"event":"something_else","data":{"x":1}}`))
	_ = a.WriteMessage(websocket.TextMessage, []byte(`not json`))
	_ = a.WriteMessage(websocket.TextMessage, []byte(`{"event":"refresh_models"}`))

	// Only the refresh is answered and the connection survives the noise.
	if got := readText(t, a); !strings.Contains(got, "model_update") { t.Fatalf("got %s", got) }
	if h.Count() != 1 { t.Fatalf("count=%d", h.Count()) }
}

func TestDisconnectRemovesConnection(t *testing.T) {
	h, srv := newTestHub(t, Options{})
	a := dial(t, srv)
	waitFor(t, func() bool { return h.Count() == 1 })
	_ = a.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = a.Close()
	waitFor(t, func() bool { return h.Count() == 0 })
}

func TestEmitUnknownConnection(t *testing.T) {
	h := New(Options{}, zerolog.Nop())
	if err := h.Emit("nope", EventModelUpdate, nil); err != ErrUnknownConnection { t.Fatalf("err=%v", err) }
}

func TestCloseDisconnectsClientsAndRejectsNewOnes(t *testing.T) {
	h, srv := newTestHub(t, Options{})
	a := dial(t, srv)
	waitFor(t, func() bool { return h.Count() == 1 })
	h.Close()

	_ = a.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := a.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("expected going-away close, got %v", err)
	}
	waitFor(t, func() bool { return h.Count() == 0 })

	b := dial(t, srv)
	_ = b.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := b.ReadMessage(); err == nil { t.Fatalf("expected closed connection") }
	if h.Count() != 0 { t.Fatalf("count=%d", h.Count()) }
}

func TestOriginChecker(t *testing.T) {
	if originChecker(nil) != nil { t.Fatalf("empty list must use the same-origin default") }

	wildcard := originChecker([]string{"https://a.example", "*"})
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "https://evil.example")
	if !wildcard(r) { t.Fatalf("wildcard must allow every origin") }

	check := originChecker([]string{"https://a.example/"})
	r.Header.Set("Origin", "https://A.example")
	if !check(r) { t.Fatalf("listed origin rejected") }
	r.Header.Set("Origin", "https://b.example")
	if check(r) { t.Fatalf("unlisted origin accepted") }
	r.Header.Del("Origin")
	if !check(r) { t.Fatalf("non-browser clients carry no Origin") }
}

func TestCrossOriginRejectedByDefault(t *testing.T) {
	_, srv := newTestHub(t, Options{})
	u := "ws" + strings.TrimPrefix(srv.URL, "http")
	hdr := http.Header{"Origin": []string{"https://elsewhere.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(u, hdr)
	if err == nil { t.Fatalf("expected handshake failure") }
	if resp == nil || resp.StatusCode != http.StatusForbidden { t.Fatalf("resp=%v", resp) }
}
