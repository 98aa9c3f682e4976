// pkg/particle/base.go
package particle

import (
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// BaseParticle contains the physical state and behavior shared by all
// particle variants.
type BaseParticle struct {
	ID              ID
	Position        physics.Vector2D
	Rotation        float64 // radians, normalized mod 2π on write
	Velocity        physics.Vector2D
	AngularVelocity float64

	Mass                 float64
	BoundingBoxSize      physics.Vector2D // half-extents of the bounding rectangle
	InteractRadius       float64
	RepulsionStrength    float64
	VelocityDecay        float64
	AngularVelocityDecay float64

	// Connected holds non-owning adjacency references. The relation is
	// kept symmetric through Link.
	Connected []Particle

	drawable DrawableID
}

// GetID returns the particle's unique identifier.
func (b *BaseParticle) GetID() ID {
	return b.ID
}

// GetPosition returns the particle's position.
func (b *BaseParticle) GetPosition() physics.Vector2D {
	return b.Position
}

// SetPosition moves the particle. The bounding box is derived from
// position and rotation on demand, so no other state needs updating.
func (b *BaseParticle) SetPosition(pos physics.Vector2D) {
	b.Position = pos
}

// GetRotation returns the particle's rotation in radians.
func (b *BaseParticle) GetRotation() float64 {
	return b.Rotation
}

// SetRotation sets the particle's rotation, normalized into [0, 2π).
func (b *BaseParticle) SetRotation(rotation float64) {
	b.Rotation = physics.NormalizeAngle(rotation)
}

// BoundingBox returns the rotated rectangle around the particle's position.
func (b *BaseParticle) BoundingBox() physics.OrientedRect {
	return physics.OrientedRect{
		Center:   b.Position,
		HalfSize: b.BoundingBoxSize,
		Rotation: b.Rotation,
	}
}

// InteractionRadius returns the radius within which repulsion acts.
func (b *BaseParticle) InteractionRadius() float64 {
	return b.InteractRadius
}

// ConnectedParticles returns the particle's adjacency list.
func (b *BaseParticle) ConnectedParticles() []Particle {
	return b.Connected
}

// Connect appends a one-directional adjacency reference. Use Link to
// keep the relation symmetric.
func (b *BaseParticle) Connect(other Particle) {
	b.Connected = append(b.Connected, other)
}

// RepulsionForce returns the push away from other. It is zero when the
// distance between centers exceeds the sum of both interaction radii,
// grows quadratically with overlap depth (continuous at the boundary),
// and is capped to zero at coincident centers where the direction is
// undefined.
func (b *BaseParticle) RepulsionForce(other Particle) physics.Vector2D {
	offset := b.Position.Sub(other.GetPosition())
	distance := offset.Length()
	reach := b.InteractRadius + other.InteractionRadius()

	if distance >= reach {
		return physics.Vector2D{}
	}
	if distance == 0 {
		return physics.Vector2D{}
	}

	overlap := reach - distance
	return offset.Normalize().Scale(b.RepulsionStrength * overlap * overlap)
}

// Integrate advances the particle by one time step using semi-implicit
// Euler integration with per-particle velocity decay.
func (b *BaseParticle) Integrate(force physics.Vector2D, torque, dt float64) {
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}

	b.Velocity = b.Velocity.Add(force.Scale(dt / mass)).Scale(b.VelocityDecay)
	b.AngularVelocity = (b.AngularVelocity + torque*dt/mass) * b.AngularVelocityDecay

	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.SetRotation(b.Rotation + b.AngularVelocity*dt)
}

// setBaseParameters applies the shared parameter keys with partial-update
// semantics: keys that are absent leave the current value unchanged.
func (b *BaseParticle) setBaseParameters(params map[string]float64) {
	if v, ok := params["mass"]; ok {
		b.Mass = v
	}
	if v, ok := params["velocity_decay"]; ok {
		b.VelocityDecay = v
	}
	if v, ok := params["angular_velocity_decay"]; ok {
		b.AngularVelocityDecay = v
	}
	if v, ok := params["repulsion_strength"]; ok {
		b.RepulsionStrength = v
	}
	if v, ok := params["interaction_radius"]; ok {
		b.InteractRadius = v
	}
}

// baseAttributes returns the flat attribute mapping shared by all
// particle variants, suitable for serialization by an external store.
func (b *BaseParticle) baseAttributes(particleType string) map[string]any {
	return map[string]any{
		"id":       uint64(b.ID),
		"type":     particleType,
		"position": []float64{b.Position.X, b.Position.Y},
		"rotation": b.Rotation,
	}
}

// Drawable returns the handle of the particle's current drawn
// representation, or NoDrawable.
func (b *BaseParticle) Drawable() DrawableID {
	return b.drawable
}

// EraseFrom removes the particle's drawn representation from the renderer.
func (b *BaseParticle) EraseFrom(r Renderer) {
	if b.drawable != NoDrawable {
		r.Erase(b.drawable)
		b.drawable = NoDrawable
	}
}
