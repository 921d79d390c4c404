package draw

import "image/color"

// Op identifies a recorded primitive.
type Op uint8

const (
	OpLine Op = iota
	OpBox
	OpCircle
	OpText
	OpImage
)

// Call is one recorded draw call.
type Call struct {
	Op       Op
	X, Y     float32
	W, H     float32
	Rotation float32
	Filled   bool
	Text     string
	Color    color.RGBA
	Image    Image
}

// Recorder is a Drawer that records calls instead of drawing them.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) DrawLine(x1, y1, x2, y2, thickness float32, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpLine, X: x1, Y: y1, W: x2, H: y2, Color: RGBA(c)})
}

func (r *Recorder) DrawBox(x, y, w, h float32, filled bool, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpBox, X: x, Y: y, W: w, H: h, Filled: filled, Color: RGBA(c)})
}

func (r *Recorder) DrawCircle(x, y, radius float32, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpCircle, X: x, Y: y, W: radius, H: radius, Color: RGBA(c)})
}

func (r *Recorder) DrawText(text string, x, y float32, size int32, c, outline color.Color) {
	MustColor(outline)
	r.Calls = append(r.Calls, Call{Op: OpText, X: x, Y: y, H: float32(size), Text: text, Color: RGBA(c)})
}

func (r *Recorder) DrawImage(img Image, x, y, w, h, rotation float32) {
	r.Calls = append(r.Calls, Call{Op: OpImage, X: x, Y: y, W: w, H: h, Rotation: rotation, Image: img})
}

// Count returns the number of recorded calls of the given kind.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset discards recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
