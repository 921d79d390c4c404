package tiles

import (
	"image/color"
	"testing"

	"github.com/pthm-cable/tileworld/camera"
	"github.com/pthm-cable/tileworld/draw"
)

func TestDrawGrid(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 20}

	tests := []struct {
		name   string
		camX   float32
		offset float32
		// First vertical line position and line counts
		firstX     float32
		vertical   int
		horizontal int
	}{
		// 800x600 view: x lines at 0..800, y lines at 0..600
		{"world grid", 0, 0, 0, 9, 7},
		// Display grid at -50, 50, ... 750
		{"display grid", 0, -50, 50, 8, 6},
		{"scrolled world grid", 130, 0, 200, 8, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := camera.New(tt.camX, 0, 800, 600)
			var rec draw.Recorder
			n := DrawGrid(&rec, cam, 100, tt.offset, white)
			if n != tt.vertical+tt.horizontal {
				t.Errorf("DrawGrid() = %d, want %d", n, tt.vertical+tt.horizontal)
			}

			var vertical, horizontal int
			for _, c := range rec.Calls {
				if c.X == c.W {
					vertical++
				} else {
					horizontal++
				}
			}
			if vertical != tt.vertical || horizontal != tt.horizontal {
				t.Errorf("lines = %d vertical, %d horizontal; want %d, %d", vertical, horizontal, tt.vertical, tt.horizontal)
			}
			if rec.Calls[0].X != tt.firstX {
				t.Errorf("first line at x=%v, want %v", rec.Calls[0].X, tt.firstX)
			}
		})
	}
}

func TestDrawGridZeroSize(t *testing.T) {
	var rec draw.Recorder
	if n := DrawGrid(&rec, camera.New(0, 0, 800, 600), 0, 0, color.White); n != 0 {
		t.Errorf("DrawGrid() = %d, want 0", n)
	}
}

func TestDrawHighlight(t *testing.T) {
	var rec draw.Recorder
	DrawHighlight(&rec, Coord{Row: -1, Col: 2}, 50, color.White, color.Black)

	if len(rec.Calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(rec.Calls))
	}
	fill, border := rec.Calls[0], rec.Calls[1]
	if !fill.Filled || fill.X != 100 || fill.Y != -50 || fill.W != 50 {
		t.Errorf("fill = %+v", fill)
	}
	if border.Filled {
		t.Error("border should be stroked")
	}
}
