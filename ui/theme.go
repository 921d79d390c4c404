// Package ui draws the screen-space overlays: the editor palette, the HUD and
// the perf panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Style holds the colours and metrics shared by every panel.
type Style struct {
	Panel, Border rl.Color
	Header        rl.Color
	Label, Value  rl.Color
	Track, Fill   rl.Color

	Pad, Line    int32 // Inner padding and row height
	LabelW       int32 // Column where values and bars start
	Text, Title  int32 // Font sizes
	Button, BarH int32
}

var style = Style{
	Panel:  rl.Color{R: 20, G: 25, B: 30, A: 240},
	Border: rl.Color{R: 60, G: 70, B: 80, A: 255},
	Header: rl.Yellow,
	Label:  rl.LightGray,
	Value:  rl.White,
	Track:  rl.Color{R: 40, G: 40, B: 40, A: 255},
	Fill:   rl.Color{R: 100, G: 150, B: 200, A: 255},
	Pad:    10,
	Line:   16,
	LabelW: 70,
	Text:   12,
	Title:  14,
	Button: 24,
	BarH:   10,
}

func drawPanel(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, style.Panel)
	rl.DrawRectangleLines(x, y, w, h, style.Border)
}

// Row helpers draw one line at y and return the y of the next line.

func drawHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, style.Title, style.Header)
	return y + style.Line
}

func drawField(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, style.Text, style.Label)
	rl.DrawText(value, x+style.LabelW, y, style.Text, style.Value)
	return y + style.Line
}

// drawFraction draws a horizontal bar filled to frac, clamped to [0, 1].
func drawFraction(x, y int32, label string, frac float32, w int32) int32 {
	frac = max(0, min(1, frac))
	trackW := w - style.LabelW
	rl.DrawText(label+":", x, y, style.Text, style.Label)
	rl.DrawRectangle(x+style.LabelW, y+2, trackW, style.BarH, style.Track)
	rl.DrawRectangle(x+style.LabelW, y+2, int32(float32(trackW)*frac), style.BarH, style.Fill)
	return y + style.Line
}
