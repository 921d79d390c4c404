package entities

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/pthm-cable/tileworld/camera"
	"github.com/pthm-cable/tileworld/draw"
)

var (
	labelColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{A: 255}
	collideColor = color.RGBA{R: 230, G: 41, B: 55, A: 255}
)

const labelSize = 10

// Draw renders every entity inside the camera's view, sorted by foot position so
// lower entities overlap higher ones. Returns the number drawn.
func (w *World) Draw(d draw.Drawer, cam *camera.Camera, debug bool) int {
	w.drawList = w.drawList[:0]
	query := w.filter.Query()
	for query.Next() {
		_, pos, body, motion, app, _ := query.Get()
		if !cam.IsVisible(pos.X, pos.Y-body.Height/2, body.Width, body.Height) {
			continue
		}
		w.drawList = append(w.drawList, drawItem{pos: *pos, body: *body, colliding: motion.Colliding, app: *app})
	}

	sortByFoot(w.drawList)

	for _, it := range w.drawList {
		left := it.pos.X - it.body.Width/2
		top := it.pos.Y - it.body.Height
		d.DrawBox(left, top, it.body.Width, it.body.Height, true, it.app.Color)
		if debug {
			c := outlineColor
			if it.colliding {
				c = collideColor
			}
			d.DrawBox(left, it.pos.Y-it.body.CollisionHeight, it.body.Width, it.body.CollisionHeight, false, c)
		}
		if it.app.Label != "" {
			d.DrawText(it.app.Label, it.pos.X, top-labelSize, labelSize, labelColor, outlineColor)
		}
	}
	return len(w.drawList)
}

type drawItem struct {
	pos       Position
	body      Body
	colliding bool
	app       Appearance
}

// sortByFoot orders items by Y then X, stable for equal positions.
func sortByFoot(items []drawItem) {
	slices.SortStableFunc(items, func(a, b drawItem) int {
		if c := cmp.Compare(a.pos.Y, b.pos.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.pos.X, b.pos.X)
	})
}
