package ws

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve upgrades every request and hands the server side of the connection to onConn.
func serve(t *testing.T, onConn func(*websocket.Conn)) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		onConn(c)
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestConn_SendAndClose(t *testing.T) {
	server := make(chan *Conn, 1)
	client := serve(t, func(c *websocket.Conn) {
		server <- NewConn(context.Background(), uuid.New(), c)
	})

	conn := <-server
	require.NoError(t, conn.Send(map[string]any{"type": "top_drivers"}))

	var got map[string]any
	require.NoError(t, client.ReadJSON(&got))
	assert.Equal(t, "top_drivers", got["type"])

	require.NoError(t, conn.Close())
	assert.Error(t, conn.Context().Err())
	assert.ErrorIs(t, conn.Send("late"), ErrConnClosed)
	assert.NoError(t, conn.Close(), "second close is a no-op")
}

func TestConn_Ping(t *testing.T) {
	server := make(chan *Conn, 1)
	client := serve(t, func(c *websocket.Conn) {
		server <- NewConn(context.Background(), uuid.New(), c)
	})
	conn := <-server

	pings := make(chan string, 1)
	client.SetPingHandler(func(data string) error {
		pings <- data
		return nil
	})
	go func() {
		// control frames are only dispatched while the client reads
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	require.NoError(t, conn.Ping())
	select {
	case data := <-pings:
		assert.Equal(t, "ping", data)
	case <-time.After(2 * time.Second):
		t.Fatal("ping was not delivered")
	}

	require.NoError(t, conn.Close())
	assert.ErrorIs(t, conn.Ping(), ErrConnClosed)
}

func TestConn_ListenStopsWhenPeerLeaves(t *testing.T) {
	server := make(chan *Conn, 1)
	client := serve(t, func(c *websocket.Conn) {
		server <- NewConn(context.Background(), uuid.New(), c)
	})
	conn := <-server

	done := make(chan error, 1)
	go func() {
		done <- conn.Listen(func(map[string]any) error { return nil })
	}()

	require.NoError(t, client.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listen did not return")
	}
	assert.Error(t, conn.Context().Err())
}

func TestConnectionHub(t *testing.T) {
	hub := NewConnHub(logger.InitLoggerWithWriter(io.Discard, "test", logger.LevelError))

	server := make(chan *Conn, 1)
	serve(t, func(c *websocket.Conn) {
		server <- NewConn(context.Background(), uuid.New(), c)
	})
	conn := <-server

	assert.ErrorIs(t, hub.Add(nil), ErrEmptyConn)
	require.NoError(t, hub.Add(conn))
	assert.Equal(t, 1, hub.Len())

	assert.ErrorIs(t, hub.Delete(uuid.New()), ErrConnIsNotFound)

	hub.Close()
	assert.Zero(t, hub.Len())
	assert.Error(t, conn.Context().Err())
}
