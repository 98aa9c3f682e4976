// pkg/graph/graph.go
package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/logging"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/particle"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

var (
	// ErrDuplicateLocation is returned when a location name is added twice.
	ErrDuplicateLocation = errors.New("location name already exists")

	// ErrUnknownLocation is returned when a connection references a
	// location that was never added.
	ErrUnknownLocation = errors.New("unknown location name")
)

// Graph is the particle arena: it owns all node and edge particles of a
// map and drives their simulation. Adjacency between particles is
// non-owning; removal and lifetime are the graph's responsibility.
type Graph struct {
	logger *logging.Logger

	particles   []particle.Particle
	nodesByName map[string]*particle.Node
	nextID      particle.ID

	cells *physics.CellList
}

// New creates an empty particle graph.
func New() *Graph {
	return &Graph{
		logger:      logging.NewLogger(),
		nodesByName: make(map[string]*particle.Node),
		nextID:      1,
	}
}

// AddNode creates a location node. Location names are unique.
func (g *Graph) AddNode(name string, position physics.Vector2D) (*particle.Node, error) {
	if _, exists := g.nodesByName[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateLocation, name)
	}

	node := particle.NewNode(g.nextID, name, position)
	g.nextID++
	g.particles = append(g.particles, node)
	g.nodesByName[name] = node
	return node, nil
}

// Node returns the node for a location name, or nil.
func (g *Graph) Node(name string) *particle.Node {
	return g.nodesByName[name]
}

// AddConnection creates a chain of length edge segments between two
// existing locations. Segments are placed evenly along the straight line
// between the nodes, oriented along it, and linked symmetrically
// node - edge - ... - edge - node so that every intermediate segment has
// exactly two neighbors and every endpoint segment has a node on one side.
func (g *Graph) AddConnection(location1, location2 string, length int, color string) ([]*particle.Edge, error) {
	node1, ok := g.nodesByName[location1]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, location1)
	}
	node2, ok := g.nodesByName[location2]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, location2)
	}
	if length < 1 {
		return nil, fmt.Errorf("connection %s-%s: length must be at least 1, got %d", location1, location2, length)
	}

	span := node2.GetPosition().Sub(node1.GetPosition())
	rotation := span.Angle()

	edges := make([]*particle.Edge, length)
	var prev particle.Particle = node1
	for i := 0; i < length; i++ {
		edge := particle.NewEdge(g.nextID, location1, location2, i, color)
		g.nextID++

		// Segment centers sit at the midpoints of an even split of the
		// straight line between the nodes.
		t := (float64(i) + 0.5) / float64(length)
		edge.SetPosition(node1.GetPosition().Add(span.Scale(t)))
		edge.SetRotation(rotation)

		particle.Link(prev, edge)
		prev = edge

		g.particles = append(g.particles, edge)
		edges[i] = edge
	}
	particle.Link(prev, node2)

	return edges, nil
}

// Particles returns all particles in the arena. The slice is owned by
// the graph; callers must not mutate it.
func (g *Graph) Particles() []particle.Particle {
	return g.particles
}

// ApplyNodeParameters applies parameter overrides to every node with
// partial-update semantics.
func (g *Graph) ApplyNodeParameters(params map[string]float64) {
	for _, p := range g.particles {
		if node, ok := p.(*particle.Node); ok {
			node.SetParameters(params)
		}
	}
}

// ApplyEdgeParameters applies parameter overrides to every edge with
// partial-update semantics.
func (g *Graph) ApplyEdgeParameters(params map[string]float64) {
	for _, p := range g.particles {
		if edge, ok := p.(*particle.Edge); ok {
			edge.SetParameters(params)
		}
	}
}

// BuildCellList (re)builds the spatial index over the current particle
// positions. The index is rebuilt only on demand: it is a best-effort
// hit-testing accelerator and is allowed to go stale between rebuilds.
// Forces always read live positions and never consult it.
func (g *Graph) BuildCellList(cellSize float64) *physics.CellList {
	minPos := physics.Vector2D{}
	maxPos := physics.Vector2D{}
	for i, p := range g.particles {
		pos := p.GetPosition()
		if i == 0 {
			minPos, maxPos = pos, pos
			continue
		}
		if pos.X < minPos.X {
			minPos.X = pos.X
		}
		if pos.Y < minPos.Y {
			minPos.Y = pos.Y
		}
		if pos.X > maxPos.X {
			maxPos.X = pos.X
		}
		if pos.Y > maxPos.Y {
			maxPos.Y = pos.Y
		}
	}

	// One cell of margin keeps border particles inside the grid.
	origin := minPos.Sub(physics.Vector2D{X: cellSize, Y: cellSize})
	width := maxPos.X - origin.X + 2*cellSize
	height := maxPos.Y - origin.Y + 2*cellSize

	cells := physics.NewCellList(origin, width, height, cellSize)
	for i, p := range g.particles {
		cells.Insert(i, p.GetPosition())
	}

	g.cells = cells
	return cells
}

// CellList returns the most recently built spatial index, or nil.
func (g *Graph) CellList() *physics.CellList {
	return g.cells
}

// Snapshot returns the flat attribute mappings of all particles,
// suitable for serialization by an external store.
func (g *Graph) Snapshot() []map[string]any {
	snapshot := make([]map[string]any, len(g.particles))
	for i, p := range g.particles {
		snapshot[i] = p.Attributes()
	}
	return snapshot
}

// DrawAll renders every particle and presents the frame.
func (g *Graph) DrawAll(r particle.Renderer) {
	r.Clear()
	for _, p := range g.particles {
		p.Render(r)
	}
	r.Present()
}

// Warn surfaces a recoverable diagnostic through the graph's logger.
func (g *Graph) Warn(ctx context.Context, msg string, args ...any) {
	g.logger.Warn(ctx, msg, args...)
}
