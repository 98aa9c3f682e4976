package render

import (
	"math"
	"testing"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/particle"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

func TestTerminalRenderer_WorldToScreen(t *testing.T) {
	r := NewTerminalRenderer(80, 24, 1.0)

	tests := []struct {
		name  string
		pos   physics.Vector2D
		wantX int
		wantY int
	}{
		{"origin maps to screen center", physics.Vector2D{X: 0, Y: 0}, 40, 12},
		{"positive offset", physics.Vector2D{X: 10, Y: 5}, 50, 17},
		{"negative offset", physics.Vector2D{X: -10, Y: -5}, 30, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := r.worldToScreen(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)",
					tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTerminalRenderer_WorldToScreen_Scaled(t *testing.T) {
	r := NewTerminalRenderer(80, 24, 2.0)
	r.SetCenter(physics.Vector2D{X: 10, Y: 0})

	x, y := r.worldToScreen(physics.Vector2D{X: 14, Y: 4})
	if x != 42 || y != 14 {
		t.Errorf("worldToScreen = (%d, %d), want (42, 14)", x, y)
	}
}

func TestTerminalRenderer_DrawAndErase(t *testing.T) {
	r := NewTerminalRenderer(40, 20, 1.0)
	node := particle.NewNode(1, "Lisboa", physics.Vector2D{X: 0, Y: 0})

	id := r.DrawNode(node)
	if id == particle.NoDrawable {
		t.Fatal("expected a drawable handle")
	}

	r.rebuildBuffer()
	if r.buffer[10][20] != 'O' {
		t.Errorf("expected node glyph at screen center, got %q", r.buffer[10][20])
	}
	if r.buffer[10][22] != 'L' {
		t.Errorf("expected label to start two cells right of the glyph, got %q", r.buffer[10][22])
	}

	r.Erase(id)
	r.rebuildBuffer()
	if r.buffer[10][20] != ' ' {
		t.Errorf("expected cleared cell after erase, got %q", r.buffer[10][20])
	}
}

func TestTerminalRenderer_Erase_UnknownHandleIgnored(t *testing.T) {
	r := NewTerminalRenderer(40, 20, 1.0)
	r.Erase(99)

	if len(r.drawables) != 0 {
		t.Errorf("expected no drawables, got %d", len(r.drawables))
	}
}

func TestTerminalRenderer_Clear_DropsDrawables(t *testing.T) {
	r := NewTerminalRenderer(40, 20, 1.0)
	edge := particle.NewEdge(1, "Lisboa", "Madrid", 0, "#aa2222")
	r.DrawEdge(edge)

	r.Clear()

	if len(r.drawables) != 0 {
		t.Errorf("expected no drawables after clear, got %d", len(r.drawables))
	}
}

func TestTerminalRenderer_OffscreenDrawableSkipped(t *testing.T) {
	r := NewTerminalRenderer(10, 10, 1.0)
	node := particle.NewNode(1, "Far", physics.Vector2D{X: 1000, Y: 1000})

	r.DrawNode(node)
	r.rebuildBuffer()

	for y := range r.buffer {
		for x := range r.buffer[y] {
			if r.buffer[y][x] != ' ' {
				t.Fatalf("expected empty buffer, found %q at (%d, %d)", r.buffer[y][x], x, y)
			}
		}
	}
}

func TestEdgeGlyph(t *testing.T) {
	tests := []struct {
		name     string
		rotation float64
		want     rune
	}{
		{"horizontal", 0, '='},
		{"diagonal up", math.Pi / 4, '/'},
		{"vertical", math.Pi / 2, '|'},
		{"diagonal down", 3 * math.Pi / 4, '\\'},
		{"flipped horizontal", math.Pi, '='},
		{"negative angle normalized", -math.Pi / 2, '|'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edgeGlyph(tt.rotation); got != tt.want {
				t.Errorf("edgeGlyph(%v) = %q, want %q", tt.rotation, got, tt.want)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantR   uint8
		wantG   uint8
		wantB   uint8
		wantOK  bool
	}{
		{"six digit red", "#ff0000", 255, 0, 0, true},
		{"six digit mixed", "#aa2222", 170, 34, 34, true},
		{"three digit white", "#fff", 255, 255, 255, true},
		{"three digit expansion", "#a2c", 170, 34, 204, true},
		{"missing hash", "ff0000", 0, 0, 0, false},
		{"bad length", "#ff00", 0, 0, 0, false},
		{"bad digit", "#zz0000", 0, 0, 0, false},
		{"empty", "", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, ok := ParseHexColor(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseHexColor(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && (r != tt.wantR || g != tt.wantG || b != tt.wantB) {
				t.Errorf("ParseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tt.input, r, g, b, tt.wantR, tt.wantG, tt.wantB)
			}
		})
	}
}

func TestColorForHex_InvalidFallsBackToWhite(t *testing.T) {
	if c := colorForHex("not-a-color"); c == nil {
		t.Error("expected a usable color for invalid input")
	}
}
