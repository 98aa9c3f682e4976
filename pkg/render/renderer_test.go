package render

import (
	"testing"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/particle"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

func TestNullRenderer_DrawNode_AllocatesDistinctHandles(t *testing.T) {
	r := NewNullRenderer()
	node := particle.NewNode(1, "Lisboa", physics.Vector2D{X: 1, Y: 2})

	first := r.DrawNode(node)
	second := r.DrawNode(node)

	if first == particle.NoDrawable || second == particle.NoDrawable {
		t.Fatal("expected real drawable handles")
	}
	if first == second {
		t.Errorf("expected distinct handles, got %d twice", first)
	}
}

func TestNullRenderer_DrawNode_NilNode(t *testing.T) {
	r := NewNullRenderer()
	if id := r.DrawNode(nil); id != particle.NoDrawable {
		t.Errorf("expected NoDrawable for nil node, got %d", id)
	}
}

func TestNullRenderer_Erase_UnknownHandleIgnored(t *testing.T) {
	r := NewNullRenderer()
	r.Erase(42)
	r.Erase(particle.NoDrawable)

	node := particle.NewNode(1, "Lisboa", physics.Vector2D{})
	if id := r.DrawNode(node); id == particle.NoDrawable {
		t.Error("renderer unusable after erasing unknown handles")
	}
}

func TestNullRenderer_Erase_RemovesHandle(t *testing.T) {
	r := NewNullRenderer()
	node := particle.NewNode(1, "Lisboa", physics.Vector2D{})

	id := r.DrawNode(node)
	r.Erase(id)

	if r.active[id] {
		t.Errorf("handle %d still active after erase", id)
	}
}

func TestNullRenderer_Clear_DropsAllHandles(t *testing.T) {
	r := NewNullRenderer()
	node := particle.NewNode(1, "Lisboa", physics.Vector2D{})
	r.DrawNode(node)
	r.DrawNode(node)

	r.Clear()

	if len(r.active) != 0 {
		t.Errorf("expected no active drawables after clear, got %d", len(r.active))
	}
}
