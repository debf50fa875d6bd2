package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pfassina/grimdark/internal/render"
)

// Same pump timing as the teacher's internal/server/client.go — a
// spectator connection has no gameplay deadline pressure, just the
// standard keepalive cadence.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is a single spectator connection. Unlike the teacher's
// gameplay Client, a spectator sends no commands — render.RenderContext
// flows one way, core to client — so Client only runs a writePump plus
// a minimal readPump whose sole job is detecting disconnects and
// answering pings.
type Client struct {
	conn *websocket.Conn
	send chan render.RenderContext
	hub  *Hub
	log  *logrus.Entry
}

func NewClient(hub *Hub, conn *websocket.Conn, log *logrus.Entry) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan render.RenderContext, 256),
		log:  log,
	}
}

// Serve registers the client, runs both pumps, and blocks until the
// connection closes. Callers invoke this in its own goroutine per
// accepted connection.
func (c *Client) Serve() {
	c.hub.Register(c)
	done := make(chan struct{})
	go func() {
		c.writePump()
		close(done)
	}()
	c.readPump()
	<-done
}

func (c *Client) readPump() {
	defer c.hub.Unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("spectator connection closed unexpectedly")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case ctx, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ctx); err != nil {
				c.log.WithError(err).Debug("write render context failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("spectator ping failed")
				return
			}
		}
	}
}
