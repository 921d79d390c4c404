package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PaletteAction is a one-shot command requested from the palette.
type PaletteAction uint8

const (
	ActionNone PaletteAction = iota
	ActionSave
	ActionLoad
	ActionCopy
	ActionGenerate
)

// PaletteState is the editor state the palette reads and edits in place.
type PaletteState struct {
	Selected      string
	ShowGrid      bool
	ShowWorldGrid bool
	Zoom          float32
	MinZoom       float32
	MaxZoom       float32
}

// Palette is the editor side panel: tile type buttons, grid toggles, map
// buttons and a zoom slider.
type Palette struct {
	x, y  int32
	width int32
	types []string
}

// NewPalette creates a palette anchored at (x, y).
func NewPalette(x, y, width int32) *Palette {
	return &Palette{x: x, y: y, width: width}
}

// SetTypes replaces the listed tile types.
func (p *Palette) SetTypes(types []string) {
	p.types = append(p.types[:0], types...)
}

// height returns the panel height for the current type list.
func (p *Palette) height() int32 {
	t := style
	rows := int32(len(p.types))
	// Title, types, two checkboxes, two button rows, slider
	return t.Pad*2 + t.Line + rows*(t.Button+4) + 2*(t.Line+6) + 2*(t.Button+6) + t.Line + t.Button
}

// Bounds returns the palette rectangle in screen space.
func (p *Palette) Bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(p.x), Y: float32(p.y), Width: float32(p.width), Height: float32(p.height())}
}

// Contains reports whether a screen point is over the palette.
func (p *Palette) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, p.Bounds())
}

// Draw renders the palette, applies widget changes to state and returns any
// button action pressed this frame.
func (p *Palette) Draw(state *PaletteState) PaletteAction {
	t := style
	inner := float32(p.width - t.Pad*2)
	x := float32(p.x + t.Pad)

	drawPanel(p.x, p.y, p.width, p.height())
	y := drawHeader(p.x+t.Pad, p.y+t.Pad, "Tiles")

	for _, typ := range p.types {
		label := typ
		if typ == state.Selected {
			label = "> " + typ
		}
		if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: float32(t.Button)}, label) {
			state.Selected = typ
		}
		y += t.Button + 4
	}

	y += 2
	state.ShowGrid = gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 12, Height: 12}, "Tile grid", state.ShowGrid)
	y += t.Line + 6
	state.ShowWorldGrid = gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 12, Height: 12}, "World grid", state.ShowWorldGrid)
	y += t.Line + 6

	action := ActionNone
	half := (inner - 6) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: float32(t.Button)}, "Save") {
		action = ActionSave
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: float32(t.Button)}, "Load") {
		action = ActionLoad
	}
	y += t.Button + 6
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: float32(t.Button)}, "Copy") {
		action = ActionCopy
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: float32(t.Button)}, "Generate") {
		action = ActionGenerate
	}
	y += t.Button + 6

	rl.DrawText(fmt.Sprintf("Zoom %.2f", state.Zoom), int32(x), y, t.Text, t.Label)
	y += t.Line
	state.Zoom = gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: float32(t.Button) - 8},
		"", "",
		state.Zoom, state.MinZoom, state.MaxZoom,
	)

	return action
}
