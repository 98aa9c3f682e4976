// pkg/particle/edge.go
package particle

import (
	"errors"
	"math"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// midpointEpsilon is the floating tolerance used when classifying the
// short sides of a bounding rectangle.
const midpointEpsilon = 1e-8

// Edge is one rigid segment of a connection between two locations.
// A connection of length n is represented by n edge particles chained
// between the two location nodes; PathIndex is the 0-based position of
// this segment along that chain.
type Edge struct {
	BaseParticle

	Location1Name string
	Location2Name string
	PathIndex     int

	NodeAttraction float64
	EdgeAttraction float64

	Color         string
	BorderColor   string
	ImageFilePath string
}

// NewEdge creates an edge segment belonging to the connection between
// two named locations.
func NewEdge(id ID, location1, location2 string, pathIndex int, color string) *Edge {
	return &Edge{
		BaseParticle: BaseParticle{
			ID:                   id,
			BoundingBoxSize:      physics.Vector2D{X: 2, Y: 0.5},
			Mass:                 0.1,
			InteractRadius:       5,
			RepulsionStrength:    1,
			VelocityDecay:        0.9999,
			AngularVelocityDecay: 0.9999,
		},
		Location1Name:  location1,
		Location2Name:  location2,
		PathIndex:      pathIndex,
		NodeAttraction: 0.1,
		EdgeAttraction: 0.1,
		Color:          color,
		BorderColor:    "#555555",
	}
}

// AttractionForces implements Particle. Edges are pulled toward other
// edges via bounding-box geometry and toward anything else (a node) via
// its position directly.
func (e *Edge) AttractionForces(other Particle) (physics.Vector2D, physics.Vector2D, error) {
	if otherEdge, ok := other.(*Edge); ok {
		return e.edgeAttractionForces(otherEdge)
	}
	return e.nodeAttractionForces(other)
}

// edgeAttractionForces computes the pull toward another edge from the
// closest pair of short-side midpoints between the two bounding boxes.
// The force applies at the winning point on this edge, not its centroid.
func (e *Edge) edgeAttractionForces(other *Edge) (physics.Vector2D, physics.Vector2D, error) {
	ownPoints, err := e.EdgeMidpoints()
	if err != nil {
		return physics.Vector2D{}, physics.Vector2D{}, err
	}
	otherPoints, err := other.EdgeMidpoints()
	if err != nil {
		return physics.Vector2D{}, physics.Vector2D{}, err
	}

	minDistance := math.Inf(1)
	var ownAnchor, otherAnchor physics.Vector2D
	for _, p1 := range ownPoints {
		for _, p2 := range otherPoints {
			if d := p1.Distance(p2); d < minDistance {
				minDistance = d
				ownAnchor = p1
				otherAnchor = p2
			}
		}
	}

	// Coincident anchor points leave the direction undefined.
	if minDistance == 0 {
		return physics.Vector2D{}, ownAnchor, nil
	}

	direction := otherAnchor.Sub(ownAnchor).Scale(1 / minDistance)
	force := direction.Scale(e.EdgeAttraction * attractionFromDistance(minDistance))
	return force, ownAnchor, nil
}

// nodeAttractionForces computes the pull toward a node from the closest
// short-side midpoint; a node has no bounding-box facing to average over.
func (e *Edge) nodeAttractionForces(node Particle) (physics.Vector2D, physics.Vector2D, error) {
	ownPoints, err := e.EdgeMidpoints()
	if err != nil {
		return physics.Vector2D{}, physics.Vector2D{}, err
	}

	target := node.GetPosition()
	minDistance := math.Inf(1)
	var anchor physics.Vector2D
	for _, p := range ownPoints {
		if d := p.Distance(target); d < minDistance {
			minDistance = d
			anchor = p
		}
	}

	if minDistance == 0 {
		return physics.Vector2D{}, anchor, nil
	}

	direction := target.Sub(anchor).Scale(1 / minDistance)
	force := direction.Scale(e.NodeAttraction * attractionFromDistance(minDistance))
	return force, anchor, nil
}

// EdgeMidpoints returns the midpoints of the two short sides of the
// edge's bounding rectangle: the attraction anchors representing the two
// ends of the rigid segment. Corners are enumerated in fixed
// counterclockwise order, so for a square box the first two matching
// sides win deterministically. Anything other than exactly two matches
// is a degenerate box and fails with ErrDegenerateBoundingBox.
func (e *Edge) EdgeMidpoints() ([2]physics.Vector2D, error) {
	corners := e.BoundingBox().Corners()
	shortSide := 2 * math.Min(e.BoundingBoxSize.X, e.BoundingBoxSize.Y)

	var midpoints [2]physics.Vector2D
	found := 0
	for i := 0; i < 4; i++ {
		c1 := corners[i]
		c2 := corners[(i+1)%4]
		if c1.Distance(c2)-shortSide < midpointEpsilon {
			midpoints[found] = c1.Midpoint(c2)
			found++
			if found == 2 {
				break
			}
		}
	}

	if found != 2 {
		return midpoints, ErrDegenerateBoundingBox
	}
	return midpoints, nil
}

// attractionFromDistance maps distance to force magnitude. Quadratic
// growth without saturation favors long-range pull over short-range
// precision; tunable.
func attractionFromDistance(distance float64) float64 {
	return distance * distance / 2
}

// ImageRotation resolves the visually upright rotation for this segment,
// consistent across the whole chain regardless of how the committed
// rotation evolved through simulation.
//
// It walks outward in both adjacency directions to the chain's terminal
// nodes, derives the upright normal of the straight line between them,
// and flips the segment's rotation by π when its heading sits on the
// wrong side of that normal.
//
// A broken chain returns ErrBrokenChain. Coincident terminal nodes make
// the orientation ambiguous: the segment's own rotation is returned with
// ErrZeroLengthChain, which callers should log as a warning and accept.
func (e *Edge) ImageRotation() (float64, error) {
	node1, node2, err := e.terminalNodes()
	if err != nil {
		return 0, err
	}

	span := node2.GetPosition().Sub(node1.GetPosition())
	if span.Length() == 0 {
		return e.Rotation, ErrZeroLengthChain
	}

	normal := span.Normalize().Perpendicular()
	if normal.Y < 0 {
		normal = normal.Scale(-1)
	}

	// A positive cross product puts the upright normal to the visual
	// right of the current heading; flip by half a turn to align.
	heading := physics.FromAngle(e.Rotation, 1)
	if normal.Cross(heading) > 0 {
		return e.Rotation + math.Pi, nil
	}
	return e.Rotation, nil
}

// terminalNodes walks the chain outward in both adjacency directions,
// skipping already-visited particle ids, until a node is reached on each
// side. Running out of unvisited neighbors means the path graph is
// malformed; that is reported, never looped over silently.
func (e *Edge) terminalNodes() (*Node, *Node, error) {
	visited := map[ID]bool{e.ID: true}
	var terminals [2]*Node

	for side := 0; side < 2; side++ {
		var current Particle = e
		for {
			var next Particle
			for _, neighbor := range current.ConnectedParticles() {
				if !visited[neighbor.GetID()] {
					next = neighbor
					break
				}
			}
			if next == nil {
				return nil, nil, ErrBrokenChain
			}
			visited[next.GetID()] = true
			current = next

			if node, ok := current.(*Node); ok {
				terminals[side] = node
				break
			}
		}
	}

	return terminals[0], terminals[1], nil
}

// DisplayRotation returns the rotation renderers draw the segment with:
// the chain-consistent upright rotation when the chain resolves, the
// committed rotation otherwise. A zero-length chain already carries the
// committed rotation as its fallback, so only a broken chain falls back
// here.
func (e *Edge) DisplayRotation() float64 {
	upright, err := e.ImageRotation()
	if err != nil && !errors.Is(err, ErrZeroLengthChain) {
		return e.Rotation
	}
	return upright
}

// SetImage sets the edge to display the image at the given path when
// drawn. An empty path reverts to a flat colored rectangle.
func (e *Edge) SetImage(imageFilePath string) {
	e.ImageFilePath = imageFilePath
}

// SetParameters applies edge parameter overrides with partial-update
// semantics.
func (e *Edge) SetParameters(params map[string]float64) {
	e.setBaseParameters(params)
	if v, ok := params["edge-node"]; ok {
		e.NodeAttraction = v
	}
	if v, ok := params["edge-edge"]; ok {
		e.EdgeAttraction = v
	}
}

// Attributes returns the edge's flat attribute mapping for persistence.
func (e *Edge) Attributes() map[string]any {
	attrs := e.baseAttributes("edge")
	attrs["location_1_name"] = e.Location1Name
	attrs["location_2_name"] = e.Location2Name
	attrs["path_index"] = e.PathIndex
	attrs["node_attraction"] = e.NodeAttraction
	attrs["edge_attraction"] = e.EdgeAttraction
	attrs["color"] = e.Color
	attrs["border_color"] = e.BorderColor
	return attrs
}

// Render implements Particle.
func (e *Edge) Render(r Renderer) DrawableID {
	e.drawable = r.DrawEdge(e)
	return e.drawable
}
