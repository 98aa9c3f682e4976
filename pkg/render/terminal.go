package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/simulatedScience/go-ttr-mapgen/pkg/particle"
	"github.com/simulatedScience/go-ttr-mapgen/pkg/physics"
)

// terminalDrawable is one retained draw call. The buffer is rebuilt from
// the retained set on every Present, so Erase only has to drop the record.
type terminalDrawable struct {
	position physics.Vector2D
	glyph    rune
	label    string
	color    *color.Color
}

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// Nodes render as named markers, edge segments as colored glyphs.
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	colors    [][]*color.Color
	scale     float64
	centerPos physics.Vector2D
	nextID    particle.DrawableID
	drawables map[particle.DrawableID]terminalDrawable
}

// NewTerminalRenderer creates a new terminal renderer with the specified dimensions.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	colors := make([][]*color.Color, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
		colors[i] = make([]*color.Color, width)
	}

	return &TerminalRenderer{
		width:     width,
		height:    height,
		buffer:    buffer,
		colors:    colors,
		scale:     scale,
		nextID:    1,
		drawables: make(map[particle.DrawableID]terminalDrawable),
	}
}

// SetCenter sets the center position of the view.
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// worldToScreen converts world coordinates to screen coordinates.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := int((pos.Y-r.centerPos.Y)/r.scale + float64(r.height)/2)
	return screenX, screenY
}

// DrawNode implements particle.Renderer.
func (r *TerminalRenderer) DrawNode(node *particle.Node) particle.DrawableID {
	if node == nil {
		return particle.NoDrawable
	}
	return r.retain(terminalDrawable{
		position: node.Position,
		glyph:    'O',
		label:    node.Name,
		color:    color.New(color.FgWhite, color.Bold),
	})
}

// DrawEdge implements particle.Renderer.
func (r *TerminalRenderer) DrawEdge(edge *particle.Edge) particle.DrawableID {
	if edge == nil {
		return particle.NoDrawable
	}
	return r.retain(terminalDrawable{
		position: edge.Position,
		glyph:    edgeGlyph(edge.Rotation),
		color:    colorForHex(edge.Color),
	})
}

// Erase implements particle.Renderer. Unknown handles are ignored.
func (r *TerminalRenderer) Erase(id particle.DrawableID) {
	delete(r.drawables, id)
}

// Clear implements particle.Renderer.
func (r *TerminalRenderer) Clear() {
	r.drawables = make(map[particle.DrawableID]terminalDrawable)
}

// Present implements particle.Renderer.
func (r *TerminalRenderer) Present() {
	r.rebuildBuffer()

	// Clear terminal
	fmt.Print("\033[H\033[2J")

	// Draw border
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")

	// Draw buffer
	for y := range r.buffer {
		fmt.Print("|")
		for x := range r.buffer[y] {
			if c := r.colors[y][x]; c != nil {
				fmt.Print(c.Sprint(string(r.buffer[y][x])))
			} else {
				fmt.Print(string(r.buffer[y][x]))
			}
		}
		fmt.Println("|")
	}

	// Draw border
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
}

func (r *TerminalRenderer) retain(d terminalDrawable) particle.DrawableID {
	id := r.nextID
	r.nextID++
	r.drawables[id] = d
	return id
}

func (r *TerminalRenderer) rebuildBuffer() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
			r.colors[y][x] = nil
		}
	}

	for _, d := range r.drawables {
		x, y := r.worldToScreen(d.position)
		r.setCell(x, y, d.glyph, d.color)
		for i, ch := range d.label {
			r.setCell(x+2+i, y, ch, d.color)
		}
	}
}

func (r *TerminalRenderer) setCell(x, y int, ch rune, c *color.Color) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.buffer[y][x] = ch
	r.colors[y][x] = c
}

// edgeGlyph picks a glyph that roughly matches the segment orientation.
func edgeGlyph(rotation float64) rune {
	oriented := math.Mod(physics.NormalizeAngle(rotation), math.Pi)
	sector := int((oriented+math.Pi/8)/(math.Pi/4)) % 4
	switch sector {
	case 0:
		return '='
	case 1:
		return '/'
	case 2:
		return '|'
	default:
		return '\\'
	}
}

// colorForHex maps a hex color string to the closest basic terminal color.
func colorForHex(hex string) *color.Color {
	red, green, blue, ok := ParseHexColor(hex)
	if !ok {
		return color.New(color.FgWhite)
	}

	attr := color.FgWhite
	switch {
	case red > green && red > blue:
		attr = color.FgRed
	case green > red && green > blue:
		attr = color.FgGreen
	case blue > red && blue > green:
		attr = color.FgBlue
	case red == green && red > blue:
		attr = color.FgYellow
	case green == blue && green > red:
		attr = color.FgCyan
	case red == blue && red > green:
		attr = color.FgMagenta
	}
	return color.New(attr)
}

// ParseHexColor parses #rgb and #rrggbb strings.
func ParseHexColor(s string) (red, green, blue uint8, ok bool) {
	if len(s) == 0 || s[0] != '#' {
		return 0, 0, 0, false
	}
	hexDigit := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}

	switch len(s) {
	case 4:
		var parts [3]uint8
		for i := 0; i < 3; i++ {
			v, valid := hexDigit(s[1+i])
			if !valid {
				return 0, 0, 0, false
			}
			parts[i] = v * 17
		}
		return parts[0], parts[1], parts[2], true
	case 7:
		var parts [3]uint8
		for i := 0; i < 3; i++ {
			hi, okHi := hexDigit(s[1+2*i])
			lo, okLo := hexDigit(s[2+2*i])
			if !okHi || !okLo {
				return 0, 0, 0, false
			}
			parts[i] = hi*16 + lo
		}
		return parts[0], parts[1], parts[2], true
	}
	return 0, 0, 0, false
}
