package tiles

import (
	"image/color"
	"math"

	"github.com/pthm-cable/tileworld/camera"
	"github.com/pthm-cable/tileworld/draw"
)

// DrawGrid draws vertical and horizontal lines every size world units, shifted
// by offset, over the camera's visible area only. Lines stay one screen pixel
// wide at any zoom. Returns the number of lines drawn.
//
// World cells use offset 0; display tiles sit on cell corners and use -size/2.
func DrawGrid(d draw.Drawer, cam *camera.Camera, size, offset float32, c color.Color) int {
	if size <= 0 {
		return 0
	}
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	thickness := 1 / max(cam.Zoom, camera.MinZoom)
	n := 0

	for x := firstLine(minX, size, offset); x <= maxX; x += size {
		d.DrawLine(x, minY, x, maxY, thickness, c)
		n++
	}
	for y := firstLine(minY, size, offset); y <= maxY; y += size {
		d.DrawLine(minX, y, maxX, y, thickness, c)
		n++
	}
	return n
}

// firstLine returns the smallest k*size+offset that is >= lo.
func firstLine(lo, size, offset float32) float32 {
	k := math.Ceil(float64((lo - offset) / size))
	return float32(k)*size + offset
}

// DrawHighlight outlines a world cell with a translucent fill and a border.
func DrawHighlight(d draw.Drawer, cell Coord, size float32, fill, border color.Color) {
	x := float32(cell.Col) * size
	y := float32(cell.Row) * size
	d.DrawBox(x, y, size, size, true, fill)
	d.DrawBox(x, y, size, size, false, border)
}
