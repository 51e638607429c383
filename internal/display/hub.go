package display

import (
	"context"
	"sync"

	"github.com/vogiaan1904/branchqueue/internal/announce"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/pkg/clock"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

const broadcastBuffer = 256

// Hub maintains the connected display clients and fans messages out to
// them. The latest board, media and flash messages are replayed to every
// new client.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan encodedMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	doneOnce   sync.Once

	mu        sync.RWMutex
	snapshots map[MessageType][]byte

	clock clock.Clock
	l     logger.Logger
}

func NewHub(l logger.Logger, c clock.Clock) *Hub {
	if c == nil {
		c = clock.Real()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan encodedMessage, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		snapshots:  make(map[MessageType][]byte),
		clock:      c,
		l:          l,
	}
}

// Run owns the client set until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	defer h.doneOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			for _, typ := range []MessageType{MessageBoard, MessageMedia, MessageFlash} {
				if data, ok := h.snapshots[typ]; ok {
					h.sendLocked(ctx, client, data)
				}
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.l.Info(ctx, "display client connected", "client_id", client.id, "total_clients", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.l.Info(ctx, "display client disconnected", "client_id", client.id, "total_clients", len(h.clients))
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			if msg.typ != MessageAnnouncement {
				h.snapshots[msg.typ] = msg.data
			}
			for client := range h.clients {
				h.sendLocked(ctx, client, msg.data)
			}
			h.mu.Unlock()
		}
	}
}

// Register hands a client to the hub. It reports false once the hub has
// stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client. It returns immediately once the hub has
// stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// sendLocked drops clients whose buffer is full. Must hold mu.
func (h *Hub) sendLocked(ctx context.Context, client *Client, data []byte) {
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
		h.l.Warn(ctx, "display client send buffer full, closing connection", "client_id", client.id)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// Broadcast queues a message for every client without blocking. When the
// hub is backed up the message is dropped.
func (h *Hub) Broadcast(typ MessageType, payload any) {
	ctx := context.Background()
	msg, err := encode(Message{Type: typ, Timestamp: h.clock.Now(), Payload: payload})
	if err != nil {
		h.l.Errorf(ctx, "display.Hub.Broadcast: %v", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.l.Warn(ctx, "display broadcast buffer full, message dropped", "type", typ)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) PublishBoard(b models.Board) {
	h.Broadcast(MessageBoard, b)
}

func (h *Hub) NotifyAnnouncement(a announce.Announcement) {
	h.Broadcast(MessageAnnouncement, a)
}

func (h *Hub) NotifyFlash(on bool) {
	h.Broadcast(MessageFlash, FlashPayload{On: on})
}

func (h *Hub) Render(item models.MarketingMedia) {
	h.Broadcast(MessageMedia, item)
}

// Clear tells displays that no media item is active.
func (h *Hub) Clear() {
	h.Broadcast(MessageMedia, nil)
}
