package tiles

// Variant names one of the five autotile sprites of a tile type.
type Variant uint8

const (
	VariantNone Variant = iota
	Center
	Corner
	Straight
	Nook
	DoubleNook
)

// Variants lists the drawable variants in catalog order.
var Variants = [...]Variant{Center, Corner, Straight, Nook, DoubleNook}

func (v Variant) String() string {
	switch v {
	case Center:
		return "center"
	case Corner:
		return "corner"
	case Straight:
		return "straight"
	case Nook:
		return "nook"
	case DoubleNook:
		return "doubleNook"
	default:
		return "none"
	}
}

// Mask is the presence of one tile type in the four cells around a corner point.
type Mask uint8

const (
	TopLeft Mask = 1 << iota
	TopRight
	BottomLeft
	BottomRight

	All = TopLeft | TopRight | BottomLeft | BottomRight
)

// DisplayTile is the sprite drawn at a corner point. Rotation is clockwise in
// degrees, one of 0, 90, 180, 270.
type DisplayTile struct {
	Variant  Variant
	Rotation int
}

// Base orientations at rotation 0: corner fills bottom-right, straight fills the
// bottom pair, nook is missing top-left. Each 90 degree step turns clockwise.
var classifyTable = map[Mask]DisplayTile{
	All: {Center, 0},

	TopRight | BottomLeft | BottomRight: {Nook, 0},
	TopLeft | BottomLeft | BottomRight:  {Nook, 90},
	TopLeft | TopRight | BottomLeft:     {Nook, 180},
	TopLeft | TopRight | BottomRight:    {Nook, 270},

	BottomLeft | BottomRight: {Straight, 0},
	TopLeft | BottomLeft:     {Straight, 90},
	TopLeft | TopRight:       {Straight, 180},
	TopRight | BottomRight:   {Straight, 270},

	BottomRight: {Corner, 0},
	BottomLeft:  {Corner, 90},
	TopLeft:     {Corner, 180},
	TopRight:    {Corner, 270},
}

// Classify maps a neighbour mask to its display tile. The table is closed:
// the empty mask and both diagonal pairs have no display tile.
func Classify(m Mask) (DisplayTile, bool) {
	dt, ok := classifyTable[m&All]
	return dt, ok
}

// MaskOf builds a mask from four presence flags.
func MaskOf(tl, tr, bl, br bool) Mask {
	var m Mask
	if tl {
		m |= TopLeft
	}
	if tr {
		m |= TopRight
	}
	if bl {
		m |= BottomLeft
	}
	if br {
		m |= BottomRight
	}
	return m
}
