// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/event"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// InputSystem translates Engo mouse state into pointer events on the
// event bus. The drag controller consumes those events without knowing
// anything about Engo.
type InputSystem struct {
	bus      *event.Bus
	renderer *EngoRenderer

	// LayerAt reports which pick layer covers a world position. A scene
	// that draws a background image sets it so clicks on the image carry
	// event.BackgroundLayer and are ignored by the drag controller. When
	// nil, picks carry no layer.
	LayerAt func(physics.Vector2D) string

	// Degrees of rotation per scroll wheel notch.
	scrollStepDegrees float64

	lastCursor physics.Vector2D
	dragging   bool
}

// NewInputSystem creates a new input system publishing to the given bus.
func NewInputSystem(bus *event.Bus, renderer *EngoRenderer, scrollStepDegrees float64) *InputSystem {
	return &InputSystem{
		bus:               bus,
		renderer:          renderer,
		scrollStepDegrees: scrollStepDegrees,
	}
}

// Add satisfies the ecs.System interface.
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface.
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update polls the mouse and publishes pointer events.
func (is *InputSystem) Update(dt float32) {
	mouse := engo.Input.Mouse
	cursor := is.renderer.screenToWorld(mouse.X, mouse.Y)
	inBounds := mouse.X >= 0 && mouse.X < engo.GameWidth() &&
		mouse.Y >= 0 && mouse.Y < engo.GameHeight()

	switch mouse.Action {
	case engo.Press:
		is.dragging = true
		is.bus.Publish(event.NewPickEvent(is, cursor, mapButton(mouse.Button), is.pickLayer(cursor)))
	case engo.Release:
		is.dragging = false
		is.bus.Publish(event.NewReleaseEvent(is, cursor))
	case engo.Move:
		if is.dragging && cursor != is.lastCursor {
			is.bus.Publish(event.NewMoveEvent(is, cursor, inBounds))
		}
	}

	if mouse.ScrollY != 0 {
		step := float64(mouse.ScrollY) * is.scrollStepDegrees
		is.bus.Publish(event.NewScrollEvent(is, cursor, step, inBounds))
	}

	is.lastCursor = cursor
}

// pickLayer resolves the pick layer under the cursor through the LayerAt
// hook.
func (is *InputSystem) pickLayer(cursor physics.Vector2D) string {
	if is.LayerAt == nil {
		return ""
	}
	return is.LayerAt(cursor)
}

// mapButton converts an Engo mouse button to a pointer event button.
func mapButton(button engo.MouseButton) int {
	switch button {
	case engo.MouseButtonLeft:
		return event.ButtonLeft
	case engo.MouseButtonMiddle:
		return event.ButtonMiddle
	case engo.MouseButtonRight:
		return event.ButtonRight
	}
	return 0
}
