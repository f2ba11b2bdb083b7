package ws

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Hub управляет WebSocket подключениями администраторов.
// Каждое событие модерации рассылается всем подключённым клиентам.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 32),
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.send(payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastEvent рассылает событие всем подключённым администраторам.
// Поле "type" содержит имя события, "data" — полезную нагрузку.
func (h *Hub) BroadcastEvent(event string, data any) error {
	payload := map[string]any{
		"type": event,
		"data": data,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	h.broadcast <- raw
	return nil
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) send(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Медленный клиент, закрываем асинхронно.
			go client.Close()
		}
	}
}
