package voting

import "sync"

// Hub fans out vote-change notifications to subscribers. Surfaces showing
// vote counts subscribe once and refresh whenever a ballot lands; the hub
// never blocks publishers on slow subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan Ballot
	next int
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Ballot)}
}

// Subscribe registers a new subscriber and returns its channel plus a
// cancel function. The channel is buffered; events are dropped, not
// queued unboundedly, when the subscriber falls behind.
func (h *Hub) Subscribe() (<-chan Ballot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan Ballot, 8)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers a ballot event to every subscriber with buffer room.
func (h *Hub) Publish(b Ballot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- b:
		default:
		}
	}
}
