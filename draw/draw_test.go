package draw

import (
	"errors"
	"image/color"
	"testing"
)

func expectNoColorPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoColor) {
			t.Errorf("%s: expected ErrNoColor panic, got %v", name, r)
		}
	}()
	fn()
}

func TestMissingColorPanics(t *testing.T) {
	r := &Recorder{}
	expectNoColorPanic(t, "line", func() { r.DrawLine(0, 0, 1, 1, 1, nil) })
	expectNoColorPanic(t, "box", func() { r.DrawBox(0, 0, 1, 1, true, nil) })
	expectNoColorPanic(t, "circle", func() { r.DrawCircle(0, 0, 1, nil) })
	expectNoColorPanic(t, "text", func() { r.DrawText("x", 0, 0, 10, nil, color.Black) })
	expectNoColorPanic(t, "text outline", func() { r.DrawText("x", 0, 0, 10, color.White, nil) })

	if len(r.Calls) != 0 {
		t.Errorf("expected no recorded calls, got %d", len(r.Calls))
	}
}

func TestRGBA(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want color.RGBA
	}{
		{"rgba passthrough", color.RGBA{R: 1, G: 2, B: 3, A: 4}, color.RGBA{R: 1, G: 2, B: 3, A: 4}},
		{"nrgba", color.NRGBA{R: 255, G: 0, B: 0, A: 255}, color.RGBA{R: 255, A: 255}},
		{"gray", color.Gray{Y: 128}, color.RGBA{R: 128, G: 128, B: 128, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBA(tt.in); got != tt.want {
				t.Errorf("RGBA(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecorderCount(t *testing.T) {
	r := &Recorder{}
	r.DrawBox(0, 0, 10, 10, false, color.White)
	r.DrawBox(0, 0, 10, 10, true, color.White)
	r.DrawLine(0, 0, 10, 10, 1, color.White)

	if got := r.Count(OpBox); got != 2 {
		t.Errorf("Count(OpBox) = %d, want 2", got)
	}
	r.Reset()
	if got := r.Count(OpBox); got != 0 {
		t.Errorf("Count after Reset = %d, want 0", got)
	}
}
