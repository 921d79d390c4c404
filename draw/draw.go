// Package draw defines the drawing collaborator the runtime renders through.
// Implementations live elsewhere (renderer for raylib, Recorder for tests).
package draw

import (
	"errors"
	"image/color"
)

// ErrNoColor is the panic value raised when a primitive is drawn without a colour.
var ErrNoColor = errors.New("draw: missing colour")

// Image is a drawable image handle.
type Image interface {
	Size() (w, h float32)
}

// Drawer is the set of primitives the runtime draws with. All coordinates are in
// the space of the active transform (world space inside a camera pass).
//
// A nil colour is a programmer error: implementations panic with ErrNoColor.
type Drawer interface {
	DrawLine(x1, y1, x2, y2, thickness float32, c color.Color)
	// DrawBox draws a rectangle with its top-left corner at (x, y). When filled
	// is false only the outline is drawn.
	DrawBox(x, y, w, h float32, filled bool, c color.Color)
	DrawCircle(x, y, radius float32, c color.Color)
	// DrawText draws text horizontally centred on x with a one pixel outline.
	DrawText(text string, x, y float32, size int32, c, outline color.Color)
	// DrawImage draws img into the box at (x, y) sized w by h, rotated
	// clockwise by rotation degrees about the box centre.
	DrawImage(img Image, x, y, w, h, rotation float32)
}

// MustColor panics with ErrNoColor when c is nil.
func MustColor(c color.Color) color.Color {
	if c == nil {
		panic(ErrNoColor)
	}
	return c
}

// RGBA converts any colour to 8-bit non-premultiplied RGBA.
func RGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	n := color.NRGBAModel.Convert(MustColor(c)).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}
