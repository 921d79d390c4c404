package entities

import "math"

type cellKey struct {
	col, row int
}

// spatialHash buckets collision boxes by grid cell so a collision query only
// looks at boxes in the cells it covers. The world is unbounded, so cells are
// keyed by coordinate rather than stored in a fixed grid.
type spatialHash struct {
	cellSize float32
	cells    map[cellKey][]int
}

func newSpatialHash(cellSize float32) *spatialHash {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &spatialHash{cellSize: cellSize, cells: make(map[cellKey][]int)}
}

// Clear empties the hash. Buckets are dropped so the map only ever holds the
// cells touched since the last Clear.
func (h *spatialHash) Clear() {
	clear(h.cells)
}

// Buckets returns the number of non-empty cells.
func (h *spatialHash) Buckets() int {
	return len(h.cells)
}

// Insert adds idx to every cell the box overlaps.
func (h *spatialHash) Insert(idx int, b Box) {
	minC, minR, maxC, maxR := h.span(b)
	for r := minR; r <= maxR; r++ {
		for c := minC; c <= maxC; c++ {
			k := cellKey{c, r}
			h.cells[k] = append(h.cells[k], idx)
		}
	}
}

// QueryInto appends the indices stored in the cells the box overlaps. An index
// may appear more than once.
func (h *spatialHash) QueryInto(dst []int, b Box) []int {
	minC, minR, maxC, maxR := h.span(b)
	for r := minR; r <= maxR; r++ {
		for c := minC; c <= maxC; c++ {
			dst = append(dst, h.cells[cellKey{c, r}]...)
		}
	}
	return dst
}

// span returns the inclusive cell range covered by a box.
func (h *spatialHash) span(b Box) (minC, minR, maxC, maxR int) {
	minC = h.index(b.X - b.Width/2)
	maxC = h.index(b.X + b.Width/2)
	minR = h.index(b.Y - b.Height)
	maxR = h.index(b.Y)
	return
}

func (h *spatialHash) index(v float32) int {
	return int(math.Floor(float64(v / h.cellSize)))
}
