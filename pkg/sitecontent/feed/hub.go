// Package feed implements the in-process change feed: a subscription manager
// with deterministic create/teardown, plus SSE and WebSocket fan-out for
// browser and service subscribers.
package feed

import (
	"sync"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

// subKey scopes a subscription to one table, optionally narrowed to one key.
type subKey struct {
	table string
	key   string
}

// Hub fans change events out to keyed subscribers. Delivery is non-blocking:
// a subscriber that cannot keep up with its buffer misses events rather than
// stalling publishers. Zero value is not usable; call New.
type Hub struct {
	mu   sync.RWMutex
	subs map[subKey]map[int]chan sitecontent.Event
	next int
}

// New creates a hub.
func New() *Hub {
	return &Hub{subs: make(map[subKey]map[int]chan sitecontent.Event)}
}

const subscriberBuffer = 8

// Subscribe registers interest in events for table, narrowed to key when key
// is non-empty. The cancel func removes the subscription and closes the
// channel; calling it more than once is safe.
func (h *Hub) Subscribe(table, key string) (<-chan sitecontent.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sk := subKey{table: table, key: key}
	if h.subs[sk] == nil {
		h.subs[sk] = make(map[int]chan sitecontent.Event)
	}
	id := h.next
	h.next++
	ch := make(chan sitecontent.Event, subscriberBuffer)
	h.subs[sk][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[sk]; ok {
				if sub, ok := set[id]; ok {
					delete(set, id)
					close(sub)
				}
				if len(set) == 0 {
					delete(h.subs, sk)
				}
			}
		})
	}
	return ch, cancel
}

// Publish delivers evt to table-wide subscribers and to subscribers narrowed
// to the event's key. Buffers that are full are skipped.
func (h *Hub) Publish(evt sitecontent.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	deliver := func(set map[int]chan sitecontent.Event) {
		for _, ch := range set {
			select {
			case ch <- evt:
			default:
			}
		}
	}
	deliver(h.subs[subKey{table: evt.Table}])
	if evt.Key != "" {
		deliver(h.subs[subKey{table: evt.Table, key: evt.Key}])
	}
}

// SubscriberCount reports live subscriptions, for tests and health output.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.subs {
		n += len(set)
	}
	return n
}

var _ sitecontent.EventFeed = (*Hub)(nil)
