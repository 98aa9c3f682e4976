// pkg/interaction/drag.go

// Package interaction translates pointer gestures into particle mutations.
// It is single-threaded and purely reactive: all mutation happens on the
// goroutine delivering pointer events, and the embedding application must
// serialize simulation ticks and gestures onto the same execution context.
package interaction

import (
	"context"
	"math"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/event"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/logging"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/particle"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// DefaultMaxPickRange is the default maximum distance between the pointer
// and a particle center for a pick to succeed.
const DefaultMaxPickRange = 2.0

// DragController is an event-driven state machine with two states: Idle
// (no particle held) and Dragging (exactly one particle held for the
// session). It resolves picks through the cell list when one is
// configured, falling back to a linear scan over all particles.
type DragController struct {
	logger   *logging.Logger
	bus      *event.Bus
	renderer particle.Renderer

	particles    []particle.Particle
	cells        *physics.CellList
	maxPickRange float64

	pickSub *event.Subscription
	session *dragSession
}

// dragSession exists only between a pick and its matching release. Every
// subscription it holds is released exactly once on every exit path.
type dragSession struct {
	held               particle.Particle
	pendingRotationDeg float64

	moveSub    *event.Subscription
	scrollSub  *event.Subscription
	releaseSub *event.Subscription
}

// NewDragController creates a drag controller over the given particle
// set. cells may be nil, in which case picks scan all particles. A
// non-positive maxPickRange falls back to DefaultMaxPickRange.
//
// The cell list is a best-effort accelerator: its cell size must be no
// smaller than maxPickRange or distant stale buckets can hide the true
// nearest particle.
func NewDragController(bus *event.Bus, renderer particle.Renderer, particles []particle.Particle, cells *physics.CellList, maxPickRange float64) *DragController {
	if maxPickRange <= 0 {
		maxPickRange = DefaultMaxPickRange
	}
	return &DragController{
		logger:       logging.NewLogger(),
		bus:          bus,
		renderer:     renderer,
		particles:    particles,
		cells:        cells,
		maxPickRange: maxPickRange,
	}
}

// Attach arms the base pick listener. The controller is purely reactive
// from here on.
func (c *DragController) Attach() {
	if c.pickSub != nil {
		return
	}
	c.pickSub = c.bus.Subscribe(event.PointerPicked, c.onPick)
}

// Detach releases all listeners, force-releasing any in-progress session
// at the held particle's current position.
func (c *DragController) Detach() {
	if c.session != nil {
		c.release(c.session.held.GetPosition())
	}
	c.pickSub.Close()
	c.pickSub = nil
}

// HeldParticle returns the particle currently being dragged, if any.
func (c *DragController) HeldParticle() (particle.Particle, bool) {
	if c.session == nil {
		return nil, false
	}
	return c.session.held, true
}

// PendingRotation returns the session's accumulated, not-yet-committed
// rotation in radians. Renderers apply it as a visual transform around
// the held particle's center.
func (c *DragController) PendingRotation() float64 {
	if c.session == nil {
		return 0
	}
	return c.session.pendingRotationDeg * math.Pi / 180
}

// RedrawHeld repaints the held particle with the session's pending
// rotation applied as a display transform. The committed rotation
// attribute is restored immediately; only the drawn representation shows
// the pending rotation, until release commits it. No-op when idle.
func (c *DragController) RedrawHeld() {
	if c.session == nil {
		return
	}
	held := c.session.held
	committed := held.GetRotation()
	held.SetRotation(committed + c.PendingRotation())
	held.EraseFrom(c.renderer)
	held.Render(c.renderer)
	held.SetRotation(committed)
}

// onPick handles Idle -> Dragging.
func (c *DragController) onPick(e event.Event) {
	pick, ok := e.(*event.PickEvent)
	if !ok {
		return
	}
	ctx := context.Background()

	if pick.Button != event.ButtonLeft {
		return
	}

	// A pick arriving mid-drag means the external event delivery lost a
	// release. Recover by committing the stuck session first.
	if c.session != nil {
		c.logger.Warn(ctx, "pick received while already dragging, forcing release",
			"held_particle", uint64(c.session.held.GetID()),
		)
		c.release(pick.Location)
	}

	if pick.Layer == event.BackgroundLayer {
		c.logger.Debug(ctx, "ignoring pick on background layer")
		return
	}

	held, distance := c.nearestParticle(pick.Location)
	if held == nil {
		c.logger.Warn(ctx, "no particle within pick range",
			"x", pick.Location.X,
			"y", pick.Location.Y,
			"max_pick_range", c.maxPickRange,
		)
		return
	}

	// The base pick listener stays armed so a duplicate pick can trigger
	// the forced-release recovery above.
	c.session = &dragSession{
		held:       held,
		moveSub:    c.bus.Subscribe(event.PointerMoved, c.onMove),
		scrollSub:  c.bus.Subscribe(event.PointerScrolled, c.onScroll),
		releaseSub: c.bus.Subscribe(event.PointerReleased, c.onRelease),
	}

	c.logger.Debug(ctx, "drag session started",
		"particle", uint64(held.GetID()),
		"distance", distance,
	)
}

// onMove handles pointer motion during a drag: translation is absolute,
// and excursions outside the interaction surface are ignored until the
// pointer returns.
func (c *DragController) onMove(e event.Event) {
	move, ok := e.(*event.MoveEvent)
	if !ok || c.session == nil {
		return
	}
	if !move.InBounds {
		return
	}

	c.session.held.SetPosition(move.Location)
	c.RedrawHeld()
	c.bus.Publish(event.NewRedrawEvent(c, uint64(c.session.held.GetID())))
}

// onScroll accumulates rotation for the session, wrapped into [0°, 360°).
// The committed rotation attribute is untouched until release; the held
// particle is repainted with the accumulator applied so the rotation is
// visible immediately.
func (c *DragController) onScroll(e event.Event) {
	scroll, ok := e.(*event.ScrollEvent)
	if !ok || c.session == nil {
		return
	}
	if !scroll.InBounds {
		return
	}

	deg := math.Mod(c.session.pendingRotationDeg+scroll.Step, 360)
	if deg < 0 {
		deg += 360
	}
	c.session.pendingRotationDeg = deg

	c.RedrawHeld()
	c.bus.Publish(event.NewRedrawEvent(c, uint64(c.session.held.GetID())))
}

// onRelease handles Dragging -> Idle.
func (c *DragController) onRelease(e event.Event) {
	rel, ok := e.(*event.ReleaseEvent)
	if !ok || c.session == nil {
		return
	}
	// The release event's own coordinates are committed. They can
	// legitimately differ from the last move location; this is the
	// externally observed contract.
	c.release(rel.Location)
}

// release commits the session and returns the controller to Idle. It is
// the single exit path from Dragging, used by real releases, forced
// recovery and Detach alike.
func (c *DragController) release(location physics.Vector2D) {
	session := c.session
	if session == nil {
		return
	}

	held := session.held
	held.SetPosition(location)
	held.SetRotation(held.GetRotation() + session.pendingRotationDeg*math.Pi/180)

	// Repositioning the underlying primitive is not attribute mutation
	// for every element kind; erase and redraw the held particle.
	held.EraseFrom(c.renderer)
	held.Render(c.renderer)

	session.moveSub.Close()
	session.scrollSub.Close()
	session.releaseSub.Close()
	c.session = nil

	if c.pickSub == nil {
		c.pickSub = c.bus.Subscribe(event.PointerPicked, c.onPick)
	}

	c.bus.Publish(event.NewRedrawEvent(c, uint64(held.GetID())))
}

// nearestParticle resolves the pick target: the particle whose center is
// closest to the location, but only within maxPickRange. The cell list,
// when configured, pre-filters candidates; a stale grid only degrades
// hit-testing, never physics.
func (c *DragController) nearestParticle(location physics.Vector2D) (particle.Particle, float64) {
	var candidates []particle.Particle
	if c.cells != nil {
		for _, idx := range c.cells.QueryNearby(location) {
			if idx >= 0 && idx < len(c.particles) {
				candidates = append(candidates, c.particles[idx])
			}
		}
	} else {
		candidates = c.particles
	}

	minDistance := math.Inf(1)
	var nearest particle.Particle
	for _, p := range candidates {
		if d := p.GetPosition().Distance(location); d < minDistance {
			minDistance = d
			nearest = p
		}
	}

	if nearest == nil || minDistance >= c.maxPickRange {
		return nil, minDistance
	}
	return nearest, minDistance
}
