package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sanisip/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// /ws sends the dashboard snapshot once on connect and then again only when
// the tracker version moves. ?interval= sets how often the version is checked.
const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsMaxInbound = 1 << 12 // 4 KB; clients only send control frames

	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

// Message types sent on the stream.
const (
	wsTypeSnapshot = "snapshot"
	wsTypeError    = "error"
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{CheckOrigin: sameOrigin}

// sameOrigin accepts non-browser clients (no Origin) and pages served by this host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// snapshotPusher writes snapshots to one connection, skipping unchanged ones.
type snapshotPusher struct {
	conn    *websocket.Conn
	mon     service.Monitoring
	sent    bool
	version uint64
}

// push sends the current snapshot if it differs from the last one sent.
// When the snapshot cannot be loaded the client gets an error envelope.
func (p *snapshotPusher) push(ctx context.Context) (bool, error) {
	snap, err := p.mon.GetSnapshot(ctx)
	if err != nil {
		_ = p.write(wsEnvelope{Type: wsTypeError, Error: errGetSnapshot})
		return false, err
	}
	if p.sent && snap.Version == p.version {
		return false, nil
	}
	if err := p.write(wsEnvelope{Type: wsTypeSnapshot, Data: snap}); err != nil {
		return false, err
	}
	p.sent, p.version = true, snap.Version
	return true, nil
}

func (p *snapshotPusher) write(env wsEnvelope) error {
	_ = p.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return p.conn.WriteJSON(env)
}

func (h *Handler) wsConnect(c *gin.Context) {
	every := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	closed := h.watchInbound(conn)
	ctx := c.Request.Context()
	p := &snapshotPusher{conn: conn, mon: h.services.Monitoring}

	if _, err := p.push(ctx); err != nil {
		h.wsClosing("ws_initial_snapshot_failed", err)
		return
	}

	check := time.NewTicker(every)
	ping := time.NewTicker(wsPingPeriod)
	defer check.Stop()
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				h.wsClosing("ws_ping_failed", err)
				return
			}
		case <-check.C:
			if _, err := p.push(ctx); err != nil {
				h.wsClosing("ws_push_failed", err)
				return
			}
		}
	}
}

func (h *Handler) wsClosing(key string, err error) {
	if h.log != nil {
		h.log.Infow(key, "err", err)
	}
}

// watchInbound drains client frames so pongs and close frames are handled.
// The returned channel closes when the client goes away.
func (h *Handler) watchInbound(conn *websocket.Conn) <-chan struct{} {
	done := make(chan struct{})
	conn.SetReadLimit(wsMaxInbound)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return done
}

// parseInterval reads ?interval=2s or ?interval_ms=2000, bounded to (0, 10s].
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}
