// pkg/event/event_test.go
package event

import (
	"testing"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}

	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}

	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{
			name:      "pointer_picked_event",
			eventType: PointerPicked,
			source:    "test_source",
		},
		{
			name:      "redraw_requested_event",
			eventType: RedrawRequested,
			source:    123,
		},
		{
			name:      "nil_source",
			eventType: PointerReleased,
			source:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{
				EventType: tt.eventType,
				Source:    tt.source,
			}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}

			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBus_Publish_DeliversToSubscribedHandler(t *testing.T) {
	bus := NewEventBus()

	var received Event
	sub := bus.Subscribe(PointerPicked, func(e Event) {
		received = e
	})
	defer sub.Close()

	pick := NewPickEvent("canvas", physics.Vector2D{X: 1, Y: 2}, ButtonLeft, "")
	bus.Publish(pick)

	if received == nil {
		t.Fatal("handler was not called")
	}
	got, ok := received.(*PickEvent)
	if !ok {
		t.Fatalf("received %T, want *PickEvent", received)
	}
	if got.Location.X != 1 || got.Location.Y != 2 || got.Button != ButtonLeft {
		t.Errorf("received event = %+v, want location (1,2) left button", got)
	}
}

func TestBus_Publish_IgnoresUnsubscribedTypes(t *testing.T) {
	bus := NewEventBus()

	called := false
	sub := bus.Subscribe(PointerMoved, func(e Event) {
		called = true
	})
	defer sub.Close()

	bus.Publish(NewReleaseEvent(nil, physics.Vector2D{}))

	if called {
		t.Error("handler called for an event type it was not subscribed to")
	}
}

func TestSubscription_Close_RemovesHandler(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	sub := bus.Subscribe(PointerScrolled, func(e Event) {
		calls++
	})

	bus.Publish(NewScrollEvent(nil, physics.Vector2D{}, 1, true))
	sub.Close()
	bus.Publish(NewScrollEvent(nil, physics.Vector2D{}, 1, true))

	if calls != 1 {
		t.Errorf("handler called %d times, want exactly 1", calls)
	}
}

func TestSubscription_Close_IsIdempotent(t *testing.T) {
	bus := NewEventBus()

	other := 0
	sub1 := bus.Subscribe(PointerMoved, func(e Event) {})
	sub2 := bus.Subscribe(PointerMoved, func(e Event) {
		other++
	})
	defer sub2.Close()

	// Closing twice must not disturb other registrations.
	sub1.Close()
	sub1.Close()

	bus.Publish(NewMoveEvent(nil, physics.Vector2D{X: 5, Y: 5}, true))

	if other != 1 {
		t.Errorf("surviving handler called %d times, want 1", other)
	}
}

func TestSubscription_Close_NilReceiverIsSafe(t *testing.T) {
	var sub *Subscription
	sub.Close()
}

func TestBus_Subscribe_MultipleHandlersAllReceive(t *testing.T) {
	bus := NewEventBus()

	received := make(map[int]bool)
	for i := 0; i < 3; i++ {
		i := i
		sub := bus.Subscribe(RedrawRequested, func(e Event) {
			received[i] = true
		})
		defer sub.Close()
	}

	bus.Publish(NewRedrawEvent(nil, 42))

	if len(received) != 3 {
		t.Errorf("%d handlers called, want 3", len(received))
	}
}
