package events

// EventBus is a simple interface for publishing events
type EventBus interface {
	Publish(event interface{})
	Subscribe(eventType string, handler func(interface{})) func()
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event interface{}) {}
func (n *NullBus) Subscribe(eventType string, handler func(interface{})) func() {
	return func() {}
}

// PointerDownEvent is a mouse button press anywhere in the terminal
type PointerDownEvent struct {
	X, Y int
}

// PointerDownType is the routing key for PointerDownEvent
var PointerDownType = EventType(PointerDownEvent{})
