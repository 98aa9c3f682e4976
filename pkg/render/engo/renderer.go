// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/particle"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/render"
)

// drawable tracks the ECS entity backing one drawable handle so the
// handle can be erased again later.
type drawable struct {
	basic  ecs.BasicEntity
	render *common.RenderComponent
	space  *common.SpaceComponent
}

// EngoRenderer implements particle.Renderer using the Engo game engine.
// Every draw call creates one ECS entity in the render system; erasing a
// handle removes that entity again.
type EngoRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem

	scale     float32
	nextID    particle.DrawableID
	drawables map[particle.DrawableID]*drawable
}

// NewEngoRenderer creates a new Engo-based renderer. Scale converts world
// units to pixels.
func NewEngoRenderer(world *ecs.World, scale float32) *EngoRenderer {
	return &EngoRenderer{
		world:     world,
		scale:     scale,
		nextID:    1,
		drawables: make(map[particle.DrawableID]*drawable),
	}
}

// Initialize sets up the renderer's systems.
func (r *EngoRenderer) Initialize() error {
	for _, system := range r.world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			r.renderSystem = rs
			return nil
		}
	}
	r.renderSystem = &common.RenderSystem{}
	r.world.AddSystem(r.renderSystem)
	return nil
}

// DrawNode implements particle.Renderer.
func (r *EngoRenderer) DrawNode(node *particle.Node) particle.DrawableID {
	if node == nil {
		return particle.NoDrawable
	}

	size := node.BoundingBoxSize.Scale(2)
	renderComponent := &common.RenderComponent{
		Drawable: common.Circle{},
		Color:    color.RGBA{230, 230, 230, 255},
	}
	spaceComponent := r.newSpaceComponent(node.Position, size, 0)

	return r.retain(renderComponent, spaceComponent)
}

// DrawEdge implements particle.Renderer. Image backed edges draw their
// sprite with the chain-consistent rotation so connected segments keep a
// shared up direction; plain edges draw as colored rectangles.
func (r *EngoRenderer) DrawEdge(edge *particle.Edge) particle.DrawableID {
	if edge == nil {
		return particle.NoDrawable
	}

	size := edge.BoundingBoxSize.Scale(2)
	renderComponent := r.edgeRenderComponent(edge)
	spaceComponent := r.newSpaceComponent(edge.Position, size, edge.DisplayRotation())

	return r.retain(renderComponent, spaceComponent)
}

// edgeRenderComponent picks the edge's drawable: the loaded sprite when the
// edge carries an image and the texture is available, a rectangle otherwise.
func (r *EngoRenderer) edgeRenderComponent(edge *particle.Edge) *common.RenderComponent {
	if edge.ImageFilePath != "" {
		if texture, err := common.LoadedSprite(edge.ImageFilePath); err == nil {
			return &common.RenderComponent{
				Drawable: texture,
				Color:    color.RGBA{255, 255, 255, 255},
			}
		}
	}
	return &common.RenderComponent{
		Drawable: common.Rectangle{
			BorderWidth: 1,
			BorderColor: hexToRGBA(edge.BorderColor),
		},
		Color: hexToRGBA(edge.Color),
	}
}

// Erase implements particle.Renderer. Unknown handles are ignored.
func (r *EngoRenderer) Erase(id particle.DrawableID) {
	d, exists := r.drawables[id]
	if !exists {
		return
	}
	r.renderSystem.Remove(d.basic)
	delete(r.drawables, id)
}

// Clear implements particle.Renderer.
func (r *EngoRenderer) Clear() {
	for id, d := range r.drawables {
		r.renderSystem.Remove(d.basic)
		delete(r.drawables, id)
	}
}

// Present implements particle.Renderer. Engo presents frames through its
// render system, so there is nothing left to do here.
func (r *EngoRenderer) Present() {
}

func (r *EngoRenderer) retain(renderComponent *common.RenderComponent, spaceComponent *common.SpaceComponent) particle.DrawableID {
	basic := ecs.NewBasic()
	r.renderSystem.Add(&basic, renderComponent, spaceComponent)

	id := r.nextID
	r.nextID++
	r.drawables[id] = &drawable{
		basic:  basic,
		render: renderComponent,
		space:  spaceComponent,
	}
	return id
}

// newSpaceComponent builds a SpaceComponent centered on a world position.
// Engo positions entities by their top left corner and rotates in degrees.
func (r *EngoRenderer) newSpaceComponent(center physics.Vector2D, size physics.Vector2D, rotation float64) *common.SpaceComponent {
	width := float32(size.X) * r.scale
	height := float32(size.Y) * r.scale
	screen := r.worldToScreen(center)

	return &common.SpaceComponent{
		Position: engo.Point{X: screen.X - width/2, Y: screen.Y - height/2},
		Width:    width,
		Height:   height,
		Rotation: float32(rotation * 180 / math.Pi),
	}
}

// worldToScreen converts world coordinates to screen coordinates.
func (r *EngoRenderer) worldToScreen(worldPos physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(worldPos.X)*r.scale + engo.GameWidth()/2,
		Y: float32(worldPos.Y)*r.scale + engo.GameHeight()/2,
	}
}

// screenToWorld converts screen coordinates back to world coordinates.
func (r *EngoRenderer) screenToWorld(screenX, screenY float32) physics.Vector2D {
	return physics.Vector2D{
		X: float64((screenX - engo.GameWidth()/2) / r.scale),
		Y: float64((screenY - engo.GameHeight()/2) / r.scale),
	}
}

// hexToRGBA converts a hex color string to an RGBA color. Invalid strings
// fall back to gray.
func hexToRGBA(hex string) color.RGBA {
	red, green, blue, ok := render.ParseHexColor(hex)
	if !ok {
		return color.RGBA{128, 128, 128, 255}
	}
	return color.RGBA{red, green, blue, 255}
}
