package pubsub

import (
	"sync"

	"github.com/twonds/idavoll/server/logs"
	"github.com/twonds/idavoll/server/store/types"
)

// EventKind identifies the notification type.
type EventKind string

const (
	// EventPublished announces items published to a node.
	EventPublished EventKind = "published"
	// EventRetracted announces items removed from a node.
	EventRetracted EventKind = "retracted"
	// EventPurged announces that all items of a node were removed.
	EventPurged EventKind = "purged"
	// EventDeleted announces that a node was deleted.
	EventDeleted EventKind = "deleted"
)

// Event is a notification produced by a state-changing operation. Items is
// set for published events, ItemIDs for retracted events.
type Event struct {
	Kind    EventKind
	Node    string
	Items   []types.Item
	ItemIDs []string
}

// Listener consumes events. Listeners run synchronously on the goroutine of
// the originating call and must not block.
type Listener func(Event)

// Dispatcher fans events out to registered listeners. Delivery is
// best-effort: a panicking listener is logged and skipped, the remaining
// listeners still run and the originating operation is unaffected.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewDispatcher creates a dispatcher with no listeners.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds a listener. Listeners cannot be removed.
func (d *Dispatcher) Register(l Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	d.listeners = append(d.listeners, l)
	d.mu.Unlock()
}

// Dispatch delivers the event to every registered listener in registration
// order.
func (d *Dispatcher) Dispatch(evt Event) {
	d.mu.RLock()
	listeners := make([]Listener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.RUnlock()

	for _, l := range listeners {
		deliver(l, evt)
	}
}

func deliver(l Listener, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			logs.Error.Println("pubsub: listener panic on", evt.Kind, "event:", r)
		}
	}()
	l(evt)
}
