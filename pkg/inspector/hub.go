package inspector

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// MessageType is the type of a stream message.
type MessageType string

const (
	MessageCommit  MessageType = "commit"
	MessageError   MessageType = "error"
	MessageReload  MessageType = "reload"
	MessageGoodbye MessageType = "goodbye"
)

// Message is sent to stream clients as JSON.
type Message struct {
	Type  MessageType `json:"type"`
	Root  string      `json:"root,omitempty"`
	Key   string      `json:"key,omitempty"`
	Error string      `json:"error,omitempty"`
	File  string      `json:"file,omitempty"`
}

// Hub fans stream messages out to connected WebSocket clients.
type Hub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
	// writeMu serializes writes; a websocket.Conn allows one writer at a
	// time. Taken before mu.
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHub creates a hub with no clients.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The inspector is a local development tool.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.logger.Debug("stream client connected", "remote", req.RemoteAddr)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends msg to every client. Clients that fail a write are
// dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
			c.Close()
		}
	}
}

// NotifyError tells clients that a reload failed.
func (h *Hub) NotifyError(file string, err error) {
	h.Broadcast(Message{Type: MessageError, File: file, Error: err.Error()})
}

// NotifyReload tells clients that file was reloaded.
func (h *Hub) NotifyReload(file string) {
	h.Broadcast(Message{Type: MessageReload, File: file})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close says goodbye to and disconnects every client.
func (h *Hub) Close() {
	data, _ := json.Marshal(Message{Type: MessageGoodbye})

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.WriteMessage(websocket.TextMessage, data)
		c.Close()
		delete(h.clients, c)
	}
}
