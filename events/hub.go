package events

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Client is one websocket subscriber to an order's status stream.
type Client struct {
	Conn    *websocket.Conn
	Send    chan []byte
	OrderID string
}

type broadcastMsg struct {
	OrderID string
	Data    []byte
}

// StatusEvent is what subscribers receive whenever an order transitions.
type StatusEvent struct {
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// Hub fans order-status transitions out to websocket subscribers, one room
// per orderId.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	quit       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.OrderID] == nil {
				h.rooms[c.OrderID] = make(map[*Client]bool)
			}
			h.rooms[c.OrderID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			// a slow client may already have been evicted (and its channel
			// closed) by the broadcast case; close only if still registered
			if conns := h.rooms[c.OrderID]; conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.OrderID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.OrderID], c)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and closes every subscriber channel.
func (h *Hub) Stop() {
	close(h.quit)
}

// Broadcast publishes a status transition to the order's subscribers.
func (h *Hub) Broadcast(orderID, status string) {
	data, err := json.Marshal(StatusEvent{
		OrderID:   orderID,
		Status:    status,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		log.Printf("Broadcast marshal error: %v", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{OrderID: orderID, Data: data}:
	case <-h.quit:
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades the connection and streams status events for
// one order until the client goes away.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		orderID := ps.ByName("orderId")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn:    conn,
			Send:    make(chan []byte, 16),
			OrderID: orderID,
		}
		hub.register <- client

		// writer pump
		go func() {
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			conn.Close()
		}()

		// reader pump; we only care about detecting the close
		go func() {
			defer func() {
				// after Stop the Run loop is gone; don't block forever
				select {
				case hub.unregister <- client:
				case <-hub.quit:
				}
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
