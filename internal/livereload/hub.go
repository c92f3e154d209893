package livereload

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/renderd/renderd/internal/web"
)

// Path is the websocket endpoint dev pages connect to.
const Path = "/__livereload"

// writeTimeout bounds a single broadcast write per connection.
const writeTimeout = 5 * time.Second

// Hub pushes reload notifications to connected browsers. It only runs
// in dev mode.
type Hub struct {
	log *slog.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{log: log, conns: make(map[*websocket.Conn]struct{})}
}

// Routes declares the websocket endpoint.
func (h *Hub) Routes(r web.Router) {
	r.GET(Path, h.serve)
}

// serve upgrades the connection and holds it until the browser leaves.
func (h *Hub) serve(c web.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		return web.ErrBadRequest("websocket upgrade failed", web.WithError(err))
	}

	h.add(conn)
	defer h.remove(conn)

	// Browsers never send anything meaningful here; reading just
	// detects disconnect.
	ctx := c.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return nil
		}
	}
}

// Broadcast tells every connected browser to reload.
func (h *Hub) Broadcast(msg string) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := conn.Write(ctx, websocket.MessageText, []byte(msg)); err != nil {
			h.log.Debug("livereload write failed", "error", err)
			h.remove(conn)
		}
		cancel()
	}
}

// Count returns the number of connected browsers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.CloseNow()
}
