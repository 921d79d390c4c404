// Package renderer implements the drawing and texture collaborators on raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tileworld/draw"
)

// Raylib draws primitives with raylib. Coordinates are whatever space the
// caller has set up (world space inside BeginMode2D, screen space outside).
type Raylib struct{}

var _ draw.Drawer = Raylib{}

func (Raylib) DrawLine(x1, y1, x2, y2, thickness float32, c color.Color) {
	rl.DrawLineEx(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, thickness, draw.RGBA(c))
}

func (Raylib) DrawBox(x, y, w, h float32, filled bool, c color.Color) {
	rec := rl.Rectangle{X: x, Y: y, Width: w, Height: h}
	if filled {
		rl.DrawRectangleRec(rec, draw.RGBA(c))
		return
	}
	rl.DrawRectangleLinesEx(rec, 1, draw.RGBA(c))
}

func (Raylib) DrawCircle(x, y, radius float32, c color.Color) {
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, draw.RGBA(c))
}

// DrawText draws text centred on x with its top at y, outlined one pixel in
// each direction.
func (Raylib) DrawText(text string, x, y float32, size int32, c, outline color.Color) {
	fill := draw.RGBA(c)
	edge := draw.RGBA(outline)

	left := int32(x) - rl.MeasureText(text, size)/2
	top := int32(y)
	for _, o := range [4][2]int32{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		rl.DrawText(text, left+o[0], top+o[1], size, edge)
	}
	rl.DrawText(text, left, top, size, fill)
}

// DrawImage draws img stretched to (x, y, w, h), rotated by rotation degrees
// about its centre. Images that are not textures are skipped.
func (Raylib) DrawImage(img draw.Image, x, y, w, h, rotation float32) {
	tex, ok := img.(*Texture)
	if !ok || tex == nil {
		return
	}
	src := rl.Rectangle{Width: float32(tex.tex.Width), Height: float32(tex.tex.Height)}
	dst := rl.Rectangle{X: x + w/2, Y: y + h/2, Width: w, Height: h}
	rl.DrawTexturePro(tex.tex, src, dst, rl.Vector2{X: w / 2, Y: h / 2}, rotation, rl.White)
}
