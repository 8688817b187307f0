// Package hub provides the in-memory subscriber registry and best-effort
// event fan-out. The hub is an explicit object injected into the services
// that publish, not a process-wide singleton; its lock is independent of any
// storage transaction, and Publish is only ever called after commit.
package hub

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event types produced by the workflow core. The outer layer forwards
// matched events verbatim to the remote peer.
const (
	EventLeadCreated   = "lead_created"
	EventLeadUpdated   = "lead_updated"
	EventLeadDeleted   = "lead_deleted"
	EventLeadClaimed   = "lead_claimed"
	EventLeadReleased  = "lead_released"
	EventBulkCompleted = "bulk_completed"
)

// Event is one published notification.
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// SendFunc delivers one event to a subscriber's connection. A non-nil error
// marks that delivery failed; it never affects other subscribers or the
// mutation that produced the event.
type SendFunc func(Event) error

// Filter selects which subscribers receive a published event. Exactly one
// selector is consulted, in order: explicit worker IDs, included roles,
// excluded roles. The zero Filter matches every subscriber.
type Filter struct {
	WorkerIDs    []int64
	Roles        []string
	ExcludeRoles []string
}

func (f Filter) matches(workerID int64, role string) bool {
	if len(f.WorkerIDs) > 0 {
		for _, id := range f.WorkerIDs {
			if id == workerID {
				return true
			}
		}
		return false
	}
	if len(f.Roles) > 0 {
		for _, r := range f.Roles {
			if r == role {
				return true
			}
		}
		return false
	}
	for _, r := range f.ExcludeRoles {
		if r == role {
			return false
		}
	}
	return true
}

type subscriber struct {
	connID   string
	workerID int64
	role     string
	send     SendFunc
}

// Hub is the subscriber registry. Safe for concurrent use.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*subscriber
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{subs: make(map[string]*subscriber)}
}

// Subscribe registers a connection. Subscriptions are ephemeral: they live
// exactly as long as the connection and are never persisted. Re-subscribing
// an existing connection ID replaces the previous registration.
func (h *Hub) Subscribe(connID string, workerID int64, role string, send SendFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[connID] = &subscriber{connID: connID, workerID: workerID, role: role, send: send}
}

// Unsubscribe removes a connection. Unknown IDs are ignored.
func (h *Hub) Unsubscribe(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, connID)
}

// SubscriberCount returns the number of registered connections.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish fans an event out to every currently-registered subscriber
// matching the filter, at most once each. Delivery runs on its own
// goroutine and never blocks the caller; there is no offline queue, so a
// connection registered after Publish returns never sees the event.
func (h *Hub) Publish(eventType string, payload any, filter Filter) {
	event := Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Payload: payload,
	}

	h.mu.RLock()
	matched := make([]*subscriber, 0, len(h.subs))
	for _, sub := range h.subs {
		if filter.matches(sub.workerID, sub.role) {
			matched = append(matched, sub)
		}
	}
	h.mu.RUnlock()

	go func() {
		for _, sub := range matched {
			if err := sub.send(event); err != nil {
				log.Printf("hub: delivery of %s to %s failed: %v", event.Type, sub.connID, err)
			}
		}
	}()
}
