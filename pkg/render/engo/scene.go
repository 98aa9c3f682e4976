// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/config"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/event"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/graph"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/interaction"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/logging"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/particle"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// MapScene is the interactive map view. It runs the layout simulation,
// renders the particle graph and feeds mouse input into the drag
// controller through the event bus.
type MapScene struct {
	world *ecs.World

	cfg      *config.MapConfig
	eventBus *event.Bus
	logger   *logging.Logger

	mapGraph *graph.Graph
	renderer *EngoRenderer
	input    *InputSystem
	drag     *interaction.DragController
	layout   *layoutSystem

	redrawSub *event.Subscription
}

// NewMapScene creates a scene for the given graph and configuration.
func NewMapScene(mapGraph *graph.Graph, cfg *config.MapConfig, eventBus *event.Bus) *MapScene {
	return &MapScene{
		cfg:      cfg,
		eventBus: eventBus,
		mapGraph: mapGraph,
		logger:   logging.NewLogger(),
		world:    &ecs.World{},
	}
}

// Type returns the scene type (required by Engo).
func (scene *MapScene) Type() string {
	return "MapScene"
}

// Preload is called before the scene starts (required by Engo). Edge
// images must be registered with the asset loader here so DrawEdge can
// resolve them as sprites later; edges whose image fails to load fall
// back to rectangle drawables.
func (scene *MapScene) Preload() {
	loaded := make(map[string]bool)
	for _, p := range scene.mapGraph.Particles() {
		edge, ok := p.(*particle.Edge)
		if !ok || edge.ImageFilePath == "" || loaded[edge.ImageFilePath] {
			continue
		}
		loaded[edge.ImageFilePath] = true
		if err := engo.Files.Load(edge.ImageFilePath); err != nil {
			scene.logger.Warn(context.Background(), "edge image failed to load",
				"path", edge.ImageFilePath,
				"error", err)
		}
	}
}

// Setup is called when the scene starts (required by Engo).
func (scene *MapScene) Setup(u engo.Updater) {
	scene.world = &ecs.World{}

	// Add the common systems (required for Engo)
	scene.world.AddSystem(&common.RenderSystem{})
	scene.world.AddSystem(&common.MouseSystem{})

	scene.renderer = NewEngoRenderer(scene.world, scene.viewScale())
	if err := scene.renderer.Initialize(); err != nil {
		panic("Failed to initialize renderer: " + err.Error())
	}

	scene.input = NewInputSystem(scene.eventBus, scene.renderer, scene.cfg.Interaction.ScrollStepDegrees)
	scene.world.AddSystem(scene.input)

	scene.mapGraph.BuildCellList(scene.cfg.Interaction.CellSize)
	scene.drag = interaction.NewDragController(
		scene.eventBus,
		scene.renderer,
		scene.mapGraph.Particles(),
		scene.mapGraph.CellList(),
		scene.cfg.Interaction.MaxPickRange,
	)
	scene.drag.Attach()

	scene.layout = &layoutSystem{
		mapGraph: scene.mapGraph,
		renderer: scene.renderer,
		drag:     scene.drag,
		timeStep: scene.cfg.Simulation.TimeStep,
	}
	scene.world.AddSystem(scene.layout)

	scene.subscribeToEvents()
	scene.mapGraph.DrawAll(scene.renderer)
}

// subscribeToEvents sets up event handlers.
func (scene *MapScene) subscribeToEvents() {
	scene.redrawSub = scene.eventBus.Subscribe(event.RedrawRequested, func(e event.Event) {
		redraw, ok := e.(*event.RedrawEvent)
		if !ok {
			return
		}
		if redraw.ParticleID == 0 {
			scene.mapGraph.DrawAll(scene.renderer)
			return
		}
		scene.redrawParticle(particle.ID(redraw.ParticleID))
	})
}

// redrawParticle erases and redraws the particle with the given ID. The
// held particle is repainted through the drag controller so its pending
// rotation is not overdrawn with the committed one.
func (scene *MapScene) redrawParticle(id particle.ID) {
	if held, ok := scene.drag.HeldParticle(); ok && held.GetID() == id {
		scene.drag.RedrawHeld()
		return
	}
	for _, p := range scene.mapGraph.Particles() {
		if p.GetID() == id {
			p.EraseFrom(scene.renderer)
			p.Render(scene.renderer)
			return
		}
	}
	scene.logger.Debug(context.Background(), "redraw requested for unknown particle",
		"particle_id", uint64(id))
}

// viewScale derives pixels per world unit from the configured world size.
func (scene *MapScene) viewScale() float32 {
	if scene.cfg.WorldSize <= 0 {
		return 10
	}
	return engo.GameWidth() / float32(scene.cfg.WorldSize)
}

// Exit is called when the scene is exiting (required by Engo).
func (scene *MapScene) Exit() {
	if scene.drag != nil {
		scene.drag.Detach()
	}
	scene.redrawSub.Close()
}

// layoutSystem advances the force simulation every frame and keeps the
// rendered frame in sync with particle positions. The held particle is
// pinned under the cursor, so stepping the simulation never fights the
// drag controller.
type layoutSystem struct {
	mapGraph *graph.Graph
	renderer *EngoRenderer
	drag     *interaction.DragController
	timeStep float64
}

// Add satisfies the ecs.System interface.
func (ls *layoutSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for layout system
}

// Remove satisfies the ecs.System interface.
func (ls *layoutSystem) Remove(basic ecs.BasicEntity) {
	// Not used for layout system
}

// Update steps the simulation and redraws the graph.
func (ls *layoutSystem) Update(dt float32) {
	step := ls.timeStep
	if step <= 0 {
		step = float64(dt)
	}

	held, holding := ls.drag.HeldParticle()
	var pinnedPosition physics.Vector2D
	var pinnedRotation float64
	if holding {
		pinnedPosition = held.GetPosition()
		pinnedRotation = held.GetRotation()
	}

	if err := ls.mapGraph.Step(step); err != nil {
		ls.mapGraph.Warn(context.Background(), "simulation step failed", "error", err)
	}

	if holding {
		held.SetPosition(pinnedPosition)
		held.SetRotation(pinnedRotation)
	}

	ls.mapGraph.DrawAll(ls.renderer)

	// DrawAll painted the held particle with its committed rotation;
	// repaint it so the pending scroll rotation stays visible.
	ls.drag.RedrawHeld()
}
