// internal/domain/sync/notifier.go
package sync

import (
	"sync"

	"github.com/asaskevich/EventBus"
)

// Connectivity transition topics published on the event bus
const (
	TopicOnline  = "connectivity:online"
	TopicOffline = "connectivity:offline"
)

// Notifier tracks the terminal's two-state connectivity signal and publishes
// transitions on the event bus. The signal itself is driven externally (a
// probe or the operator); the notifier only debounces repeats into real
// transitions.
type Notifier struct {
	bus    EventBus.Bus
	mu     sync.RWMutex
	online bool
}

// NewNotifier creates a connectivity notifier with an initial state
func NewNotifier(bus EventBus.Bus, startOnline bool) *Notifier {
	return &Notifier{
		bus:    bus,
		online: startOnline,
	}
}

// IsOnline reports the current connectivity state
func (n *Notifier) IsOnline() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.online
}

// SetOnline records a connectivity report. Only actual transitions publish
// an event; repeating the current state is a no-op.
func (n *Notifier) SetOnline(online bool) {
	n.mu.Lock()
	changed := n.online != online
	n.online = online
	n.mu.Unlock()

	if !changed {
		return
	}
	if online {
		n.bus.Publish(TopicOnline)
	} else {
		n.bus.Publish(TopicOffline)
	}
}
