package websocket

import (
	"encoding/json"
	"sync"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/pkg/logger"
)

// Client is one connected order-feed subscriber
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub fans completed orders out to back-office dashboards. Every
// subscriber sees every order; there is no room concept.
type Hub struct {
	// UserID -> sessions, multi-device support
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

// OrderEvent is the wire format of a feed entry
type OrderEvent struct {
	Type  string       `json:"type"`
	Order *model.Order `json:"order"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan []byte, 1024),
	}
}

// Run processes register, unregister, and broadcast events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("Order feed client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}

				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}

				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("Order feed client unregistered", map[string]interface{}{
				"user_id":            client.UserID,
				"remaining_sessions": len(h.clients[client.UserID]),
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for userID, clientList := range h.clients {
				for _, client := range clientList {
					select {
					case client.Send <- message:
						// delivered
					default:
						// Send channel is blocked, clean up asynchronously
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"user_id": userID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyOrderCreated pushes a completed order to every subscriber.
// Implements the checkout notifier; a full broadcast channel drops the
// event rather than stalling checkout.
func (h *Hub) NotifyOrderCreated(order *model.Order) {
	event := OrderEvent{
		Type:  "order_created",
		Order: order,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Broadcast channel full, order event dropped", map[string]interface{}{
			"order_id": order.ID,
		})
	}
}

// Register adds a client to the feed
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the feed
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsUserOnline reports whether a user has at least one open session
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
