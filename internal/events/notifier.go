// Package events announces catalog changes to other systems.
package events

import (
	"encoding/json"
	"log"
	"time"
)

// Actions carried by an Event.
const (
	Created = "created"
	Updated = "updated"
	Deleted = "deleted"
)

// Event describes one committed change to a catalog resource.
type Event struct {
	Event      string    `json:"event"`
	Resource   string    `json:"resource"`
	ID         uint      `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey is "<resource>.<event>", e.g. "product.created".
func (e Event) RoutingKey() string {
	return e.Resource + "." + e.Event
}

// Publisher delivers a message body under a routing key.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// Notifier publishes change events. A nil Notifier, or one without a publisher, does nothing.
// Publishing is best-effort: failures are logged and never reach the caller.
type Notifier struct {
	publisher Publisher
	now       func() time.Time
}

// NewNotifier creates a Notifier publishing through p.
func NewNotifier(p Publisher) *Notifier {
	return &Notifier{publisher: p, now: time.Now}
}

// Notify publishes that resource id went through action.
func (n *Notifier) Notify(resource, action string, id uint) {
	if n == nil || n.publisher == nil {
		return
	}
	event := Event{Event: action, Resource: resource, ID: id, OccurredAt: n.now().UTC()}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.RoutingKey(), err)
		return
	}
	if err := n.publisher.Publish(event.RoutingKey(), body); err != nil {
		log.Printf("Warning: failed to publish %s event for %s %d: %v", event.RoutingKey(), resource, id, err)
	}
}
