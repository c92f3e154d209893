package livereload_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"

	"github.com/renderd/renderd/internal/livereload"
	"github.com/renderd/renderd/internal/web"
	"github.com/renderd/renderd/pkg/logger"
)

func TestHub(t *testing.T) {
	t.Parallel()

	hub := livereload.NewHub(logger.NewNope())
	app := web.New(web.WithHandlers(hub))

	srv := httptest.NewServer(app.Router())
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+srv.URL[4:]+livereload.Path, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	deadline := time.After(2 * time.Second)
	for hub.Count() == 0 {
		select {
		case <-deadline:
			t.Fatal("connection never registered")
		case <-time.After(5 * time.Millisecond):
		}
	}

	hub.Broadcast("reload")

	kind, msg, err := conn.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageText, kind)
	require.Equal(t, "reload", string(msg))
}
