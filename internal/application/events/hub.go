// Package events notifica cambios a los clientes suscritos (reemplaza el polling de saldo cada 5 s).
package events

import (
	"sync"
	"time"
)

// Tipos de evento.
const (
	TypeBalanceChanged = "balance.changed"
	TypePinsIssued     = "pins.issued"
)

// Event notificación dirigida a un usuario.
type Event struct {
	Type   string         `json:"type"`
	UserID string         `json:"user_id"`
	At     time.Time      `json:"at"`
	Data   map[string]any `json:"data,omitempty"`
}

// Hub distribuye eventos por usuario. Publish nunca bloquea: si el buffer de un suscriptor
// está lleno el evento se descarta para ese suscriptor.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[int]chan Event
	nextID int
	buffer int
}

// NewHub crea el hub con buffer por suscriptor.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 8
	}
	return &Hub{subs: make(map[string]map[int]chan Event), buffer: buffer}
}

// Subscribe registra un suscriptor para userID. cancel cierra el canal y es idempotente.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]chan Event)
	}
	h.subs[userID][id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], id)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish entrega e a los suscriptores de e.UserID. Devuelve cuántos lo recibieron.
func (h *Hub) Publish(e Event) int {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, ch := range h.subs[e.UserID] {
		select {
		case ch <- e:
			delivered++
		default:
		}
	}
	return delivered
}

// BalanceChanged atajo para publicar un cambio de saldo.
func (h *Hub) BalanceChanged(userID string) {
	h.Publish(Event{Type: TypeBalanceChanged, UserID: userID})
}

// PinsIssued avisa que se emitieron count pines de la orden orderID.
func (h *Hub) PinsIssued(userID, orderID string, count int) {
	h.Publish(Event{Type: TypePinsIssued, UserID: userID, Data: map[string]any{"order_id": orderID, "count": count}})
}

// Subscribers número de suscriptores activos de userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
