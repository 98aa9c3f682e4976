// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/logging"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/particle"
)

// NullRenderer is a headless implementation of particle.Renderer. It hands
// out drawable handles and logs every call, which makes it useful for batch
// layout runs and for tests that only care about call order.
type NullRenderer struct {
	logger *logging.Logger
	nextID particle.DrawableID
	active map[particle.DrawableID]bool
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
		nextID: 1,
		active: make(map[particle.DrawableID]bool),
	}
}

// DrawNode implements particle.Renderer.
func (d *NullRenderer) DrawNode(node *particle.Node) particle.DrawableID {
	ctx := context.Background()
	if node == nil {
		d.logger.Debug(ctx, "DrawNode called with nil node")
		return particle.NoDrawable
	}
	id := d.allocate()
	d.logger.Debug(ctx, "DrawNode called",
		"node_id", node.ID,
		"node_name", node.Name,
		"drawable_id", id,
	)
	return id
}

// DrawEdge implements particle.Renderer.
func (d *NullRenderer) DrawEdge(edge *particle.Edge) particle.DrawableID {
	ctx := context.Background()
	if edge == nil {
		d.logger.Debug(ctx, "DrawEdge called with nil edge")
		return particle.NoDrawable
	}
	id := d.allocate()
	d.logger.Debug(ctx, "DrawEdge called",
		"edge_id", edge.ID,
		"connection", edge.Location1Name+"-"+edge.Location2Name,
		"drawable_id", id,
	)
	return id
}

// Erase implements particle.Renderer. Erasing a handle the renderer does
// not know is logged and otherwise ignored.
func (d *NullRenderer) Erase(id particle.DrawableID) {
	ctx := context.Background()
	if !d.active[id] {
		d.logger.Debug(ctx, "Erase called with unknown drawable", "drawable_id", id)
		return
	}
	delete(d.active, id)
	d.logger.Debug(ctx, "Erase called", "drawable_id", id)
}

// Clear implements particle.Renderer.
func (d *NullRenderer) Clear() {
	ctx := context.Background()
	d.active = make(map[particle.DrawableID]bool)
	d.logger.Debug(ctx, "Clear called")
}

// Present implements particle.Renderer.
func (d *NullRenderer) Present() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Present called", "active_drawables", len(d.active))
}

func (d *NullRenderer) allocate() particle.DrawableID {
	id := d.nextID
	d.nextID++
	d.active[id] = true
	return id
}
