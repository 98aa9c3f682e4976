// pkg/particle/particle.go
package particle

import (
	"errors"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// ID is a unique identifier for a particle, stable for its lifetime.
type ID uint64

// Structural graph violations discovered during geometric queries.
// These indicate a corrupted graph upstream and fail the operation
// that found them; they are never silently approximated.
var (
	// ErrBrokenChain is returned when a chain traversal runs out of
	// unvisited neighbors before reaching a terminal node.
	ErrBrokenChain = errors.New("chain traversal found no unvisited neighbor before reaching a node")

	// ErrDegenerateBoundingBox is returned when a bounding box does not
	// yield exactly two short-side midpoints.
	ErrDegenerateBoundingBox = errors.New("bounding box does not have exactly two short sides")

	// ErrZeroLengthChain is returned when both terminal nodes of a chain
	// coincide. The rotation returned alongside it is still usable as a
	// fallback; callers should treat this as a warning, not a failure.
	ErrZeroLengthChain = errors.New("chain terminal nodes coincide")
)

// DrawableID identifies the drawn representation of a particle on a
// Renderer. The zero value means nothing is currently drawn.
type DrawableID int64

// NoDrawable is the sentinel for "nothing drawn".
const NoDrawable DrawableID = 0

// Renderer is the external drawing surface consumed by particles.
// Draw calls return a handle; the engine decides when to redraw,
// the renderer decides how.
type Renderer interface {
	DrawNode(node *Node) DrawableID
	DrawEdge(edge *Edge) DrawableID
	Erase(id DrawableID)
	Clear()
	Present()
}

// Particle is the base interface for all physical bodies in the map graph.
type Particle interface {
	GetID() ID
	GetPosition() physics.Vector2D
	SetPosition(pos physics.Vector2D)
	GetRotation() float64
	SetRotation(rotation float64)
	BoundingBox() physics.OrientedRect
	InteractionRadius() float64
	ConnectedParticles() []Particle
	Connect(other Particle)

	// AttractionForces returns the pull this particle feels toward other,
	// together with the anchor point on this particle where the force
	// applies. Torque is derived externally from the anchor offset.
	AttractionForces(other Particle) (force, anchor physics.Vector2D, err error)

	// RepulsionForce returns the short-range push away from other,
	// zero beyond the sum of both interaction radii.
	RepulsionForce(other Particle) physics.Vector2D

	// Integrate advances velocity and position by one time step under
	// the given net force and torque.
	Integrate(force physics.Vector2D, torque, dt float64)

	SetParameters(params map[string]float64)
	Attributes() map[string]any

	Render(r Renderer) DrawableID
	EraseFrom(r Renderer)
	Drawable() DrawableID
}

// Link connects two particles symmetrically. Adjacency is non-owning:
// the graph container owns particle lifetimes.
func Link(a, b Particle) {
	a.Connect(b)
	b.Connect(a)
}
