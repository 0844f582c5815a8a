package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"care-intake-be/internal/dto"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel carries stream frames between instances.
const ClusterChannel = "care_intake_stream"

type clusterFrame struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

// Hub fans bus events out to connected operator dashboards.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb      *redis.Client
	instance string

	logger logger.ILogger
}

// NewHub creates a hub. rdb may be nil for a single-instance deployment.
func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		instance:   uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"operator": client.Operator})

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"operator": client.Operator})
		}
	}
}

// Publish pushes an event to local clients and, when clustered, to the other instances.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(dto.EventMessage{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp().UTC().Format(time.RFC3339Nano),
		Data:       event.Payload(),
	})
	if err != nil {
		return err
	}

	h.deliver(data)

	if h.rdb == nil {
		return nil
	}

	frame, err := json.Marshal(clusterFrame{Origin: h.instance, Message: data})
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, ClusterChannel, frame).Err()
}

// join and leave give up once the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// deliver sends to every local client. Slow clients are dropped on the spot.
func (h *Hub) deliver(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"operator": client.Operator})
			h.remove(client)
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var frame clusterFrame
		if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
			h.logger.Warn("Hub", "Redis frame parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if frame.Origin == h.instance {
			continue
		}
		h.deliver(frame.Message)
	}
}
