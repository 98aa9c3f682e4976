// pkg/particle/node.go
package particle

import (
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// Node is a labeled location on the map. It is the terminal element of
// every edge chain. Attraction toward a node is computed from the other
// particle's perspective, so the node itself exerts no pull.
type Node struct {
	BaseParticle
	Name string
}

// NewNode creates a location node at the given position.
func NewNode(id ID, name string, position physics.Vector2D) *Node {
	return &Node{
		BaseParticle: BaseParticle{
			ID:                   id,
			Position:             position,
			BoundingBoxSize:      physics.Vector2D{X: 1.5, Y: 1.5},
			Mass:                 1,
			InteractRadius:       3,
			RepulsionStrength:    1,
			VelocityDecay:        0.9999,
			AngularVelocityDecay: 0.9999,
		},
		Name: name,
	}
}

// AttractionForces implements Particle. Nodes are pulled by edges, not
// the other way around, so the force is zero and the anchor is the
// node's own center.
func (n *Node) AttractionForces(other Particle) (physics.Vector2D, physics.Vector2D, error) {
	return physics.Vector2D{}, n.Position, nil
}

// SetParameters applies node parameter overrides with partial-update
// semantics.
func (n *Node) SetParameters(params map[string]float64) {
	n.setBaseParameters(params)
}

// Attributes returns the node's flat attribute mapping for persistence.
func (n *Node) Attributes() map[string]any {
	attrs := n.baseAttributes("node")
	attrs["location_name"] = n.Name
	return attrs
}

// Render implements Particle.
func (n *Node) Render(r Renderer) DrawableID {
	n.drawable = r.DrawNode(n)
	return n.drawable
}
