package events

import (
	"fmt"
	"sync"
)

// Bus is a synchronous event bus for UI services. Handlers run on the
// publishing goroutine, which for the TUI is the Bubble Tea update loop, so
// they may touch UI state directly.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]listener
	nextID    uint64
}

type listener struct {
	id      uint64
	handler func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]listener),
	}
}

// Subscribe registers a listener for an event type and returns its release func
func (b *Bus) Subscribe(eventType string, handler func(interface{})) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[eventType] = append(b.listeners[eventType], listener{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		ls := b.listeners[eventType]
		for i, l := range ls {
			if l.id == id {
				b.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all listeners of its type
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	ls := make([]listener, len(b.listeners[EventType(event)]))
	copy(ls, b.listeners[EventType(event)])
	b.mu.RUnlock()

	for _, l := range ls {
		l.handler(event)
	}
}

// Count returns the number of listeners for an event type
func (b *Bus) Count(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}

// EventType extracts the type name used to route an event
func EventType(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
