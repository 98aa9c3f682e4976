// pkg/event/event.go
package event

import (
	"sync"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// Type represents the type of event
type Type string

// Pointer and rendering event types delivered by the embedding environment.
const (
	PointerPicked   Type = "pointer_picked"
	PointerMoved    Type = "pointer_moved"
	PointerScrolled Type = "pointer_scrolled"
	PointerReleased Type = "pointer_released"
	RedrawRequested Type = "redraw_requested"
)

// Mouse buttons reported with pick events.
const (
	ButtonLeft = iota + 1
	ButtonMiddle
	ButtonRight
)

// BackgroundLayer tags drawables that must never be pick candidates.
const BackgroundLayer = "background"

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is a scoped guard for a registered handler. Closing it
// releases the handler; Close is idempotent so every exit path of a drag
// session can release without double-unsubscribe bookkeeping.
type Subscription struct {
	bus       *Bus
	eventType Type
	id        int
	once      sync.Once
}

// Close unregisters the subscription's handler.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.bus.unsubscribe(s.eventType, s.id)
	})
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type]map[int]Handler
	nextID   int
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[int]Handler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type and returns a
// guard that releases it.
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[eventType][id] = handler

	return &Subscription{bus: b, eventType: eventType, id: id}
}

// unsubscribe removes the handler registered under id.
func (b *Bus) unsubscribe(eventType Type, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handlers, ok := b.handlers[eventType]; ok {
		delete(handlers, id)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	registered := b.handlers[event.GetType()]
	handlers := make([]Handler, 0, len(registered))
	for _, h := range registered {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// PickEvent reports a pointer-down on the interaction surface.
type PickEvent struct {
	BaseEvent
	Location physics.Vector2D
	Button   int
	// Layer tags the element under the pointer; BackgroundLayer elements
	// are never pick candidates.
	Layer string
}

// NewPickEvent creates a new pick event
func NewPickEvent(source interface{}, location physics.Vector2D, button int, layer string) *PickEvent {
	return &PickEvent{
		BaseEvent: BaseEvent{EventType: PointerPicked, Source: source},
		Location:  location,
		Button:    button,
		Layer:     layer,
	}
}

// MoveEvent reports pointer motion while a button is held.
type MoveEvent struct {
	BaseEvent
	Location physics.Vector2D
	InBounds bool
}

// NewMoveEvent creates a new move event
func NewMoveEvent(source interface{}, location physics.Vector2D, inBounds bool) *MoveEvent {
	return &MoveEvent{
		BaseEvent: BaseEvent{EventType: PointerMoved, Source: source},
		Location:  location,
		InBounds:  inBounds,
	}
}

// ScrollEvent reports a discrete scroll-wheel step.
type ScrollEvent struct {
	BaseEvent
	Location physics.Vector2D
	// Step is the rotation increment in degrees per scroll notch.
	Step     float64
	InBounds bool
}

// NewScrollEvent creates a new scroll event
func NewScrollEvent(source interface{}, location physics.Vector2D, step float64, inBounds bool) *ScrollEvent {
	return &ScrollEvent{
		BaseEvent: BaseEvent{EventType: PointerScrolled, Source: source},
		Location:  location,
		Step:      step,
		InBounds:  inBounds,
	}
}

// ReleaseEvent reports a pointer-up ending a gesture. Its coordinates are
// the release event's own, which can differ from the last move location.
type ReleaseEvent struct {
	BaseEvent
	Location physics.Vector2D
}

// NewReleaseEvent creates a new release event
func NewReleaseEvent(source interface{}, location physics.Vector2D) *ReleaseEvent {
	return &ReleaseEvent{
		BaseEvent: BaseEvent{EventType: PointerReleased, Source: source},
		Location:  location,
	}
}

// RedrawEvent asks the external renderer to refresh the drawn scene.
type RedrawEvent struct {
	BaseEvent
	// ParticleID identifies the particle whose representation changed,
	// 0 when the whole scene should refresh.
	ParticleID uint64
}

// NewRedrawEvent creates a new redraw request
func NewRedrawEvent(source interface{}, particleID uint64) *RedrawEvent {
	return &RedrawEvent{
		BaseEvent:  BaseEvent{EventType: RedrawRequested, Source: source},
		ParticleID: particleID,
	}
}
