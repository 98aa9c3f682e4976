// pkg/physics/rect.go
package physics

// OrientedRect represents a rectangle centered at a point and rotated
// around its own center. HalfSize holds the half-extents along the
// rectangle's local x and y axes before rotation.
type OrientedRect struct {
	Center   Vector2D
	HalfSize Vector2D
	Rotation float64
}

// Corners returns the four corner points of the rectangle in
// counterclockwise order starting from the local (+x, +y) corner.
// The fixed enumeration order makes downstream side selection
// deterministic, including for square rectangles.
func (r OrientedRect) Corners() [4]Vector2D {
	local := [4]Vector2D{
		{X: r.HalfSize.X, Y: r.HalfSize.Y},
		{X: -r.HalfSize.X, Y: r.HalfSize.Y},
		{X: -r.HalfSize.X, Y: -r.HalfSize.Y},
		{X: r.HalfSize.X, Y: -r.HalfSize.Y},
	}

	var corners [4]Vector2D
	for i, p := range local {
		corners[i] = r.Center.Add(p.Rotate(r.Rotation))
	}
	return corners
}

// Contains reports whether a point lies inside the rectangle.
func (r OrientedRect) Contains(point Vector2D) bool {
	// Transform the point into the rectangle's local frame.
	local := point.Sub(r.Center).Rotate(-r.Rotation)
	return local.X >= -r.HalfSize.X && local.X <= r.HalfSize.X &&
		local.Y >= -r.HalfSize.Y && local.Y <= r.HalfSize.Y
}

// Circle represents a circular interaction region
type Circle struct {
	Center Vector2D
	Radius float64
}

// Overlaps checks if two circles overlap
func (c Circle) Overlaps(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}
