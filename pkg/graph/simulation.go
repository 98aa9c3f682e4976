// pkg/graph/simulation.go
package graph

import (
	"errors"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/logging"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/particle"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// Step advances the simulation by one tick of dt seconds.
//
// Forces are accumulated for every particle first and integrated second,
// so the result does not depend on arena order within a tick. Each
// particle feels attraction toward its connected particles (applied at
// the attraction anchor, producing torque from the anchor offset) and
// repulsion from every other particle within interaction range.
//
// Structural geometry errors (degenerate bounding boxes) abort the tick;
// they indicate a corrupted graph, not a tunable condition.
func (g *Graph) Step(dt float64) error {
	n := len(g.particles)
	forces := make([]physics.Vector2D, n)
	torques := make([]float64, n)

	for i, p := range g.particles {
		for _, other := range p.ConnectedParticles() {
			force, anchor, err := p.AttractionForces(other)
			if err != nil {
				return logging.WrapError(err, "attraction between particles %d and %d", p.GetID(), other.GetID())
			}
			forces[i] = forces[i].Add(force)
			torques[i] += anchor.Sub(p.GetPosition()).Cross(force)
		}

		for j, other := range g.particles {
			if i == j {
				continue
			}
			forces[i] = forces[i].Add(p.RepulsionForce(other))
		}
	}

	for i, p := range g.particles {
		p.Integrate(forces[i], torques[i], dt)
	}

	return nil
}

// Run advances the simulation by the given number of ticks, stopping at
// the first structural error.
func (g *Graph) Run(ticks int, dt float64) error {
	for i := 0; i < ticks; i++ {
		if err := g.Step(dt); err != nil {
			return logging.WrapError(err, "simulation tick %d", i)
		}
	}
	return nil
}

// IsStructural reports whether an error is a fatal graph-structure
// violation rather than a recoverable condition.
func IsStructural(err error) bool {
	return errors.Is(err, particle.ErrBrokenChain) ||
		errors.Is(err, particle.ErrDegenerateBoundingBox)
}
