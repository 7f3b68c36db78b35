package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"cryosure/internal/dashboard"
	"cryosure/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Options{})

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", defaultResync},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=10m", defaultResync},
		{"interval_ms_too_large", "/ws?interval_ms=400000", defaultResync},
		{"interval_invalid_string", "/ws?interval=bogus", defaultResync},
		{"interval_negative", "/ws?interval=-5s", defaultResync},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", defaultResync},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func dialWS(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial failed: %v (resp=%v)", err, resp)
	}
	return conn
}

type wsStateMsg struct {
	Type string          `json:"type"`
	Data dashboard.State `json:"data"`
}

func readState(t *testing.T, conn *websocket.Conn) wsStateMsg {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsStateMsg
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != wsTypeState {
		t.Fatalf("unexpected type %q", msg.Type)
	}
	return msg
}

func TestWebSocket_InitialAndPushedState(t *testing.T) {
	st := dashboard.InitialState()
	st.Version = 1
	mon := &mockMonitoring{state: st, updates: make(chan dashboard.State, 1)}
	s := &service.Service{Monitoring: mon}

	r := gin.New()
	h := NewHandler(s, nil, Options{})
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	// long resync so only the push can deliver the second frame
	conn := dialWS(t, srv, "interval=5m")
	defer conn.Close()

	first := readState(t, conn)
	if first.Data.Version != 1 || first.Data.View != dashboard.ViewConfig {
		t.Fatalf("unexpected initial state %+v", first.Data)
	}

	pushed := st
	pushed.Version = 2
	pushed.View = dashboard.ViewMonitoring
	mon.updates <- pushed

	second := readState(t, conn)
	if second.Data.Version != 2 || second.Data.View != dashboard.ViewMonitoring {
		t.Fatalf("unexpected pushed state %+v", second.Data)
	}
}

func TestWebSocket_PeriodicResync(t *testing.T) {
	st := dashboard.InitialState()
	st.Version = 7
	s := &service.Service{Monitoring: &mockMonitoring{state: st}}

	r := gin.New()
	r.GET("/ws", NewHandler(s, nil, Options{}).wsConnect)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dialWS(t, srv, "interval_ms=50")
	defer conn.Close()

	for i := 0; i < 3; i++ {
		if msg := readState(t, conn); msg.Data.Version != 7 {
			t.Fatalf("frame %d: version=%d", i, msg.Data.Version)
		}
	}
}
