package network

import (
	"sync"

	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
)

// subscriberBuffer is how many events a slow client may lag behind before
// events to it are dropped.
const subscriberBuffer = 256

// Broadcaster only fans events out to subscribers.
type Broadcaster struct {
	mu sync.RWMutex
	// session id -> personal channel
	subscribers map[string]chan api.Event
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.Event),
	}
}

// Register creates the personal channel of a session. A previous channel
// under the same id is closed.
func (b *Broadcaster) Register(session string) chan api.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[session]; ok {
		close(old)
	}

	ch := make(chan api.Event, subscriberBuffer)
	b.subscribers[session] = ch
	return ch
}

// Unregister removes a subscriber and closes its channel.
func (b *Broadcaster) Unregister(session string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[session]; ok {
		close(ch)
		delete(b.subscribers, session)
	}
}

// SendTo delivers to one session. A full channel drops the event.
func (b *Broadcaster) SendTo(session string, ev api.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[session]; ok {
		select {
		case ch <- ev:
		default:
			logger.Component("hub").WithField("session", session).Warn("Subscriber channel full, event dropped.")
		}
	}
}

// Broadcast delivers to every session.
func (b *Broadcaster) Broadcast(ev api.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for session, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			logger.Component("hub").WithField("session", session).Warn("Subscriber channel full, event dropped.")
		}
	}
}

// SubscriberCount returns the number of connected sessions.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
