package services

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"veritas-ai/cmd/api/dto"
)

// FeedEvent is the websocket payload pushed when the community feed changes.
type FeedEvent struct {
	Type      string                  `json:"type"`
	EntryID   string                  `json:"entry_id,omitempty"`
	Items     []dto.CommunityEntryDTO `json:"items,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
}

// wsClient wraps a websocket connection with write locking.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) writeJSON(payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(payload)
}

// FeedNotifier tracks active websocket clients and broadcasts feed events.
type FeedNotifier struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

func NewFeedNotifier() *FeedNotifier {
	return &FeedNotifier{clients: make(map[*wsClient]struct{})}
}

// Register attaches a websocket connection and returns a client handle.
func (n *FeedNotifier) Register(conn *websocket.Conn) *wsClient {
	client := &wsClient{conn: conn}
	n.mu.Lock()
	n.clients[client] = struct{}{}
	n.mu.Unlock()
	return client
}

// Unregister removes the client and closes its socket.
func (n *FeedNotifier) Unregister(client *wsClient) {
	if client == nil {
		return
	}
	n.mu.Lock()
	delete(n.clients, client)
	n.mu.Unlock()
	_ = client.conn.Close()
}

// Broadcast sends the event to every registered client. Clients whose write
// fails are dropped.
func (n *FeedNotifier) Broadcast(event FeedEvent) {
	event.Timestamp = time.Now().UTC()

	n.mu.Lock()
	for client := range n.clients {
		if err := client.writeJSON(event); err != nil {
			delete(n.clients, client)
			_ = client.conn.Close()
		}
	}
	n.mu.Unlock()
}

// ClientCount reports the number of connected clients.
func (n *FeedNotifier) ClientCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.clients)
}
