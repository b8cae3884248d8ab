package wshub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// Message types.
const (
	TypeSelect = "select"
	TypeUpdate = "update"
	TypeError  = "error"
)

// ClientMessage is the JSON structure received from clients. Inputs are keyed
// by signal name, e.g. "teams-dropdown.value".
type ClientMessage struct {
	Type   string            `json:"t"`
	Output string            `json:"output,omitempty"`
	Inputs map[string]string `json:"inputs,omitempty"`
}

// ServerMessage is the JSON structure sent to clients.
type ServerMessage struct {
	Type   string `json:"t"`
	Output string `json:"output,omitempty"`
	Value  any    `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Client is one websocket connection. A browser session may hold several.
type Client struct {
	ID        string
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// ReadPump decodes client messages and queues the reply from handle back to
// this client only. It returns when the connection is closed or ctx ends.
func (c *Client) ReadPump(ctx context.Context, h *Hub, handle func(ClientMessage) ServerMessage) error {
	for {
		_, data, err := c.Conn.Read(ctx)
		if err != nil {
			return err
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.SendTo(c.ID, ServerMessage{Type: TypeError, Error: "invalid message"})
			continue
		}
		h.SendTo(c.ID, handle(msg))
	}
}

// Hub tracks open dashboard connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.Send)
		delete(h.clients, id)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendTo queues msg for one client. Non-blocking: returns false if the client
// is gone or its channel is full.
func (h *Hub) SendTo(id string, msg ServerMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal server message", zap.Error(err))
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[id]
	if !ok {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		h.logger.Warn("send buffer full, dropping message", zap.String("client", id))
		return false
	}
}
