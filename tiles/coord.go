package tiles

import "math"

// Coord is a signed grid coordinate. For world cells it indexes the tile whose
// centre sits at (Col*size + size/2, Row*size + size/2). For corner points it
// indexes the point at (Col*size, Row*size), shared by the four cells around it.
type Coord struct {
	Row, Col int
}

// GridIndex converts a world position on one axis to a cell index:
// (world - size/2) / size, rounded half up. Snapped tile centres divide exactly.
func GridIndex(world, size float32) int {
	return int(math.Floor(float64((world-size/2)/size) + 0.5))
}

// CellAt returns the cell containing the snapped world position (x, y).
func CellAt(x, y, size float32) Coord {
	return Coord{Row: GridIndex(y, size), Col: GridIndex(x, size)}
}

// CellCentre returns the world position of the cell's centre.
func CellCentre(c Coord, size float32) (x, y float32) {
	return float32(c.Col)*size + size/2, float32(c.Row)*size + size/2
}

// Snap moves a world position on one axis to the nearest tile centre.
func Snap(world, size float32) float32 {
	return float32(GridIndex(world, size))*size + size/2
}

// Corners returns the four corner points whose display tile depends on cell c:
// (x,y), (x+1,y), (x,y+1), (x+1,y+1).
func Corners(c Coord) [4]Coord {
	return [4]Coord{
		{Row: c.Row, Col: c.Col},
		{Row: c.Row, Col: c.Col + 1},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col + 1},
	}
}

// Neighbours returns the four cells touching corner point p, in mask order:
// top-left, top-right, bottom-left, bottom-right.
func Neighbours(p Coord) [4]Coord {
	return [4]Coord{
		{Row: p.Row - 1, Col: p.Col - 1},
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col},
	}
}
