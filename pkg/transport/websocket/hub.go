// Package websocket streams game frames to browser clients and, when given an
// input queue, accepts remote steering from them.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"

	"snakesearch/pkg/engine/input"
	"snakesearch/pkg/game/renderer"
	"snakesearch/pkg/game/state"
	"snakesearch/pkg/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Frames queued for the hub loop before new ones are dropped
	broadcastBuffer = 64
)

// Events carried in Message.Event
const (
	EventFrame = "frame"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is what the hub sends to clients
type Message struct {
	SessionID string          `json:"session_id"`
	Event     string          `json:"event"`
	Frame     *state.Snapshot `json:"frame,omitempty"`
}

// Command is what clients send to the hub. Code is a binding code such as
// "arrow_up" or "r"; Action is an action name such as "move_left".
type Command struct {
	Code   string `json:"code,omitempty"`
	Action string `json:"action,omitempty"`
}

// Client is one websocket connection
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub maintains the set of active clients and broadcasts frames to them.
// Clients subscribe to one session ID, or to every session with an empty ID.
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	// Outbound frames
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Remote commands are pushed here; nil ignores them
	input *input.QueueSource

	logger log.Logger
}

// NewHub creates a new hub. Commands from clients are queued on src when it
// is not nil. A nil logger means the process logger.
func NewHub(src *input.QueueSource, logger log.Logger) *Hub {
	if logger == nil {
		logger = logging.GlobalLogger()
	}
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		input:      src,
		logger:     log.With(logger, "component", "websocket"),
	}
}

// Run starts the hub's event loop and returns when ctx is done, closing every
// client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.sessions {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// RenderFrame implements renderer.Sink. Frames are dropped rather than
// stalling the game when the hub falls behind.
func (h *Hub) RenderFrame(s state.Snapshot) {
	message := &Message{SessionID: s.SessionID, Event: EventFrame, Frame: &s}
	select {
	case h.broadcast <- message:
	default:
		_ = level.Debug(h.logger).Log("msg", "frame dropped", "session", s.SessionID, "step", s.Step)
	}
}

// ServeHTTP upgrades the request and subscribes the client to the session
// named by the "session" query parameter
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.ServeWS(w, r, r.URL.Query().Get("session"))
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		_ = level.Warn(h.logger).Log("msg", "websocket upgrade failed", "err", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	_ = level.Info(h.logger).Log("msg", "client registered", "session", client.sessionID,
		"clients", len(h.sessions[client.sessionID]))
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.sessions[client.sessionID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty sessions
			if len(clients) == 0 {
				delete(h.sessions, client.sessionID)
			}

			_ = level.Info(h.logger).Log("msg", "client unregistered", "session", client.sessionID,
				"clients", len(clients))
		}
	}
}

// broadcastMessage sends a message to the clients of its session and to
// clients watching every session
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		_ = level.Error(h.logger).Log("msg", "failed to marshal message", "err", err)
		return
	}

	targets := []string{message.SessionID}
	if message.SessionID != "" {
		targets = append(targets, "")
	}
	for _, id := range targets {
		for client := range h.sessions[id] {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, close it
				h.unregisterClient(client)
			}
		}
	}
}

// command turns a client message into an intent
func (h *Hub) command(data []byte) {
	if h.input == nil {
		return
	}

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		_ = level.Debug(h.logger).Log("msg", "bad command", "err", err)
		return
	}

	switch {
	case cmd.Code != "":
		h.input.PushCode(input.DeviceRemote, cmd.Code)
	case cmd.Action != "":
		if action, ok := input.ParseAction(cmd.Action); ok {
			h.input.Push(input.Intent{Action: action})
		}
	}
}

// readPump pumps commands from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				_ = level.Warn(c.hub.logger).Log("msg", "websocket error", "err", err)
			}
			break
		}
		c.hub.command(data)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var _ renderer.Sink = (*Hub)(nil)
