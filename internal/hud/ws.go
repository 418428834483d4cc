package hud

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const writeTimeout = 2 * time.Second

// Broadcaster is a Sink that pushes every update as JSON to connected
// websocket clients. New clients receive the latest state on connect.
type Broadcaster struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*conn]struct{}
	last    *State
	closed  bool
}

// conn serializes writes to one websocket connection.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(v)
}

// NewBroadcaster creates a broadcaster. A nil logger discards logs.
func NewBroadcaster(logger *log.Logger) *Broadcaster {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Broadcaster{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*conn]struct{}),
	}
}

// ServeHTTP upgrades the request and keeps the client until it disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("hud upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := &conn{ws: ws}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		ws.Close()
		return
	}
	b.clients[c] = struct{}{}
	last := b.last
	b.mu.Unlock()

	b.logger.Info("hud client connected", "remote", r.RemoteAddr)
	if last != nil {
		if err := c.writeJSON(last); err != nil {
			b.drop(c)
			return
		}
	}

	// Clients never send anything meaningful; reading detects the close.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	b.drop(c)
	b.logger.Info("hud client disconnected", "remote", r.RemoteAddr)
}

// Update sends s to every client. Clients that fail to keep up are dropped.
func (b *Broadcaster) Update(s State) {
	b.mu.Lock()
	b.last = &s
	clients := make([]*conn, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.Unlock()

	for _, c := range clients {
		if err := c.writeJSON(s); err != nil {
			b.logger.Debug("hud write failed", "error", err)
			b.drop(c)
		}
	}
}

// Clients returns the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects every client and rejects new ones.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	b.closed = true
	clients := b.clients
	b.clients = make(map[*conn]struct{})
	b.mu.Unlock()

	for c := range clients {
		c.mu.Lock()
		c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(writeTimeout))
		c.ws.Close()
		c.mu.Unlock()
	}
	return nil
}

func (b *Broadcaster) drop(c *conn) {
	b.mu.Lock()
	_, ok := b.clients[c]
	delete(b.clients, c)
	b.mu.Unlock()
	if ok {
		c.ws.Close()
	}
}

var _ Sink = (*Broadcaster)(nil)
