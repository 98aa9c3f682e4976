// pkg/particle/base_test.go
package particle

import (
	"math"
	"testing"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestBaseParticle_SetRotation_NormalizesModTwoPi(t *testing.T) {
	tests := []struct {
		name     string
		rotation float64
		expected float64
	}{
		{name: "in_range_unchanged", rotation: 1.0, expected: 1.0},
		{name: "above_full_turn_wraps", rotation: 2*math.Pi + 1, expected: 1.0},
		{name: "negative_wraps_positive", rotation: -math.Pi / 2, expected: 3 * math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode(1, "Berlin", physics.Vector2D{})
			n.SetRotation(tt.rotation)
			if !almostEqual(n.GetRotation(), tt.expected) {
				t.Errorf("GetRotation() = %v, expected %v", n.GetRotation(), tt.expected)
			}
		})
	}
}

func TestBaseParticle_RepulsionForce_ZeroBeyondInteractionRadii(t *testing.T) {
	a := NewNode(1, "A", physics.Vector2D{X: 0, Y: 0})
	b := NewNode(2, "B", physics.Vector2D{X: 100, Y: 0})

	force := a.RepulsionForce(b)
	if force.Length() != 0 {
		t.Errorf("RepulsionForce() = %v, expected zero beyond radii sum", force)
	}
}

func TestBaseParticle_RepulsionForce_ContinuousAtBoundary(t *testing.T) {
	a := NewNode(1, "A", physics.Vector2D{X: 0, Y: 0})
	b := NewNode(2, "B", physics.Vector2D{})

	reach := a.InteractionRadius() + b.InteractionRadius()

	// Magnitude just inside the boundary must approach the zero value
	// outside: no jump discontinuity.
	b.SetPosition(physics.Vector2D{X: reach - 1e-6, Y: 0})
	inside := a.RepulsionForce(b).Length()

	b.SetPosition(physics.Vector2D{X: reach, Y: 0})
	outside := a.RepulsionForce(b).Length()

	if outside != 0 {
		t.Errorf("force at boundary = %v, expected 0", outside)
	}
	if inside > 1e-9 {
		t.Errorf("force just inside boundary = %v, expected near 0", inside)
	}
}

func TestBaseParticle_RepulsionForce_PushesAwayFromOther(t *testing.T) {
	a := NewNode(1, "A", physics.Vector2D{X: 0, Y: 0})
	b := NewNode(2, "B", physics.Vector2D{X: 2, Y: 0})

	force := a.RepulsionForce(b)
	if force.X >= 0 {
		t.Errorf("RepulsionForce() = %v, expected push in -x away from other", force)
	}
	if force.Length() == 0 {
		t.Error("expected nonzero repulsion inside interaction radii")
	}
}

func TestBaseParticle_RepulsionForce_CoincidentCentersCapped(t *testing.T) {
	a := NewNode(1, "A", physics.Vector2D{X: 3, Y: 3})
	b := NewNode(2, "B", physics.Vector2D{X: 3, Y: 3})

	force := a.RepulsionForce(b)
	if force.Length() != 0 {
		t.Errorf("RepulsionForce() at zero distance = %v, expected capped to zero", force)
	}
}

func TestBaseParticle_Integrate_AppliesDecayAndMovesParticle(t *testing.T) {
	n := NewNode(1, "A", physics.Vector2D{})
	n.Mass = 2
	n.VelocityDecay = 0.5
	n.AngularVelocityDecay = 0.5

	n.Integrate(physics.Vector2D{X: 4, Y: 0}, 2, 1)

	// velocity = (0 + 4/2*1) * 0.5 = 1, position = 1*1
	if !almostEqual(n.Velocity.X, 1) {
		t.Errorf("Velocity.X = %v, expected 1", n.Velocity.X)
	}
	if !almostEqual(n.Position.X, 1) {
		t.Errorf("Position.X = %v, expected 1", n.Position.X)
	}
	// angular velocity = (0 + 2/2*1) * 0.5 = 0.5
	if !almostEqual(n.AngularVelocity, 0.5) {
		t.Errorf("AngularVelocity = %v, expected 0.5", n.AngularVelocity)
	}
	if !almostEqual(n.GetRotation(), 0.5) {
		t.Errorf("GetRotation() = %v, expected 0.5", n.GetRotation())
	}
}

func TestBaseParticle_SetParameters_PartialUpdate(t *testing.T) {
	n := NewNode(1, "A", physics.Vector2D{})
	originalMass := n.Mass

	n.SetParameters(map[string]float64{
		"repulsion_strength": 2.5,
	})

	if n.RepulsionStrength != 2.5 {
		t.Errorf("RepulsionStrength = %v, expected 2.5", n.RepulsionStrength)
	}
	if n.Mass != originalMass {
		t.Errorf("Mass = %v, expected unchanged %v", n.Mass, originalMass)
	}
}

func TestLink_AdjacencyIsSymmetric(t *testing.T) {
	a := NewNode(1, "A", physics.Vector2D{})
	e := NewEdge(2, "A", "B", 0, "#ff0000")

	Link(a, e)

	if len(a.ConnectedParticles()) != 1 || a.ConnectedParticles()[0].GetID() != 2 {
		t.Errorf("node adjacency = %v, expected [edge 2]", a.ConnectedParticles())
	}
	if len(e.ConnectedParticles()) != 1 || e.ConnectedParticles()[0].GetID() != 1 {
		t.Errorf("edge adjacency = %v, expected [node 1]", e.ConnectedParticles())
	}
}

func TestNode_AttractionForces_AlwaysZero(t *testing.T) {
	n := NewNode(1, "A", physics.Vector2D{X: 1, Y: 2})
	other := NewEdge(2, "A", "B", 0, "#ff0000")
	other.SetPosition(physics.Vector2D{X: 50, Y: 50})

	force, anchor, err := n.AttractionForces(other)
	if err != nil {
		t.Fatalf("AttractionForces() error = %v", err)
	}
	if force.Length() != 0 {
		t.Errorf("node attraction force = %v, expected zero", force)
	}
	if anchor != n.GetPosition() {
		t.Errorf("anchor = %v, expected node position %v", anchor, n.GetPosition())
	}
}

func TestNode_Attributes_ContainsLocationName(t *testing.T) {
	n := NewNode(7, "Paris", physics.Vector2D{X: 1, Y: 2})
	n.SetRotation(0.25)

	attrs := n.Attributes()

	if attrs["id"] != uint64(7) {
		t.Errorf("id = %v, expected 7", attrs["id"])
	}
	if attrs["type"] != "node" {
		t.Errorf("type = %v, expected node", attrs["type"])
	}
	if attrs["location_name"] != "Paris" {
		t.Errorf("location_name = %v, expected Paris", attrs["location_name"])
	}
	pos, ok := attrs["position"].([]float64)
	if !ok || pos[0] != 1 || pos[1] != 2 {
		t.Errorf("position = %v, expected [1 2]", attrs["position"])
	}
}
