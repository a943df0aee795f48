package events

import "sync"

// Bus is a minimal in-process publish/subscribe hub. The store publishes
// after each committed mutation; the UI facade and the widget exporter
// subscribe. Delivery is synchronous and in subscription order, so
// subscribers must not call back into the store's mutation entry points.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener for every published event. There is no
// unsubscribe: listeners live as long as the process.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(event)
	}
}
