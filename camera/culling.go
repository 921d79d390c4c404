package camera

import "math"

// TileRange is an inclusive range of tile indices.
type TileRange struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Contains reports whether tile (x, y) lies in the range.
func (r TileRange) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// VisibleTileRange returns the tile indices covering the viewport for tiles of
// the given size, padded by one tile on every side so partially visible tiles
// at the edges are never skipped.
func (c *Camera) VisibleTileRange(size float32) TileRange {
	viewW, viewH := c.ViewSize()
	s := float64(size)
	return TileRange{
		MinX: int(math.Floor(float64(c.X)/s)) - 1,
		MinY: int(math.Floor(float64(c.Y)/s)) - 1,
		MaxX: int(math.Ceil(float64(c.X+viewW)/s)) + 1,
		MaxY: int(math.Ceil(float64(c.Y+viewH)/s)) + 1,
	}
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	viewW, viewH := c.ViewSize()
	return c.X, c.Y, c.X + viewW, c.Y + viewH
}
