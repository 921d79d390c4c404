package tiles

import (
	"github.com/pthm-cable/tileworld/camera"
	"github.com/pthm-cable/tileworld/draw"
)

// Sprites looks up the image for a tile type's variant. A sprite that has not
// finished loading reports false.
type Sprites interface {
	Sprite(typ string, v Variant) (draw.Image, bool)
}

// Render draws the display tiles of every type within the camera's visible
// range. Each corner point's sprite is centred on the point and rotated about
// its own centre. Missing sprites are skipped.
func (e *Engine) Render(d draw.Drawer, cam *camera.Camera, sprites Sprites) int {
	r := cam.VisibleTileRange(e.size)
	half := e.size / 2
	drawn := 0

	for _, typ := range e.Types() {
		memo := e.display[typ]
		if len(memo) == 0 {
			continue
		}
		for row := r.MinY; row <= r.MaxY; row++ {
			for col := r.MinX; col <= r.MaxX; col++ {
				dt, ok := memo[Coord{Row: row, Col: col}]
				if !ok {
					continue
				}
				img, ok := sprites.Sprite(typ, dt.Variant)
				if !ok {
					continue
				}
				x := float32(col)*e.size - half
				y := float32(row)*e.size - half
				d.DrawImage(img, x, y, e.size, e.size, float32(dt.Rotation))
				drawn++
			}
		}
	}
	return drawn
}
