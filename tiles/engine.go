// Package tiles maintains the sparse per-type tile grid and the autotile display
// state derived from it.
package tiles

import (
	"log/slog"
	"slices"
)

type cellSet map[Coord]struct{}

// Engine owns the world tile grid and the display tiles derived from it.
// Display tiles are a memo of Classify over the grid; every edit invalidates and
// recomputes exactly the four corner points of the edited cell.
//
// Engine is not safe for concurrent use. Edits must happen between frames.
type Engine struct {
	size    float32
	world   map[string]cellSet
	display map[string]map[Coord]DisplayTile
}

// NewEngine creates an empty grid with the given tile size in world units.
func NewEngine(size float32) *Engine {
	return &Engine{
		size:    size,
		world:   make(map[string]cellSet),
		display: make(map[string]map[Coord]DisplayTile),
	}
}

// Size returns the tile edge length in world units.
func (e *Engine) Size() float32 {
	return e.size
}

// SetWorldTile places a tile of type typ at the snapped world position (x, y).
func (e *Engine) SetWorldTile(x, y float32, typ string) {
	e.SetCell(CellAt(x, y, e.size), typ)
}

// RemoveWorldTile removes every tile type at the snapped world position (x, y).
func (e *Engine) RemoveWorldTile(x, y float32) {
	e.RemoveCell(CellAt(x, y, e.size))
}

// SetCell places a tile of type typ at cell c. An empty type is ignored.
func (e *Engine) SetCell(c Coord, typ string) {
	if typ == "" {
		return
	}
	cells, ok := e.world[typ]
	if !ok {
		cells = make(cellSet)
		e.world[typ] = cells
	}
	cells[c] = struct{}{}
	e.invalidate(typ, c)
	slog.Debug("tile set", "type", typ, "row", c.Row, "col", c.Col)
}

// RemoveCell removes every tile type present at cell c. Removing an empty cell
// is a no-op.
func (e *Engine) RemoveCell(c Coord) {
	for _, typ := range e.TypesAt(c) {
		e.RemoveCellType(c, typ)
	}
}

// RemoveCellType removes a single tile type from cell c.
func (e *Engine) RemoveCellType(c Coord, typ string) {
	cells, ok := e.world[typ]
	if !ok {
		return
	}
	if _, ok := cells[c]; !ok {
		return
	}
	delete(cells, c)
	if len(cells) == 0 {
		delete(e.world, typ)
	}
	e.invalidate(typ, c)
	slog.Debug("tile removed", "type", typ, "row", c.Row, "col", c.Col)
}

// Clear removes all tiles.
func (e *Engine) Clear() {
	clear(e.world)
	clear(e.display)
}

// Has reports whether a tile of type typ occupies cell c.
func (e *Engine) Has(c Coord, typ string) bool {
	_, ok := e.world[typ][c]
	return ok
}

// TypesAt returns the tile types at cell c in sorted order.
func (e *Engine) TypesAt(c Coord) []string {
	var types []string
	for typ, cells := range e.world {
		if _, ok := cells[c]; ok {
			types = append(types, typ)
		}
	}
	slices.Sort(types)
	return types
}

// Types returns every tile type that has at least one placed tile, sorted.
// Render draws types in this order, so later types draw on top.
func (e *Engine) Types() []string {
	types := make([]string, 0, len(e.world))
	for typ := range e.world {
		types = append(types, typ)
	}
	slices.Sort(types)
	return types
}

// Len returns the number of placed tiles across all types.
func (e *Engine) Len() int {
	n := 0
	for _, cells := range e.world {
		n += len(cells)
	}
	return n
}

// Each calls fn for every placed tile, ordered by type, row, then column.
func (e *Engine) Each(fn func(typ string, c Coord)) {
	for _, typ := range e.Types() {
		cells := make([]Coord, 0, len(e.world[typ]))
		for c := range e.world[typ] {
			cells = append(cells, c)
		}
		slices.SortFunc(cells, compareCoord)
		for _, c := range cells {
			fn(typ, c)
		}
	}
}

// CalculateDisplayTile classifies corner point p for tile type typ from the
// current grid, without consulting the memo.
func (e *Engine) CalculateDisplayTile(p Coord, typ string) (DisplayTile, bool) {
	n := Neighbours(p)
	return Classify(MaskOf(e.Has(n[0], typ), e.Has(n[1], typ), e.Has(n[2], typ), e.Has(n[3], typ)))
}

// Display returns the memoized display tile at corner point p for typ.
func (e *Engine) Display(p Coord, typ string) (DisplayTile, bool) {
	dt, ok := e.display[typ][p]
	return dt, ok
}

// invalidate recomputes the four corner points of cell c for typ.
func (e *Engine) invalidate(typ string, c Coord) {
	memo, ok := e.display[typ]
	if !ok {
		memo = make(map[Coord]DisplayTile)
		e.display[typ] = memo
	}
	for _, p := range Corners(c) {
		if dt, ok := e.CalculateDisplayTile(p, typ); ok {
			memo[p] = dt
		} else {
			delete(memo, p)
		}
	}
	if len(memo) == 0 {
		delete(e.display, typ)
	}
}

func compareCoord(a, b Coord) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}
