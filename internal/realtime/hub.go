package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub tracks one room per authenticated user. A room is just the set of that
// user's live connections; it is the fan-out unit for events and gives no
// cross-user visibility.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.uid]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.uid] = room
	}
	room[c] = struct{}{}
	h.log.Debug("websocket client joined", "uid", c.uid, "room_size", len(room))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.uid]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.uid)
	}
}

// Emit sends an event to every connection in the user's room. Absent room or
// a full send buffer drops the event silently; that is the contract.
func (h *Hub) Emit(uid string, event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to marshal event", "type", event.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[uid] {
		select {
		case c.send <- msg:
		default:
			// slow consumer; drop rather than block the emitter
		}
	}
}

// ConnectionCount reports the number of live connections for a user.
func (h *Hub) ConnectionCount(uid string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[uid])
}
