package entities

// Box is a collision box anchored at its bottom-middle point.
type Box struct {
	X, Y          float32
	Width, Height float32
}

// Overlaps reports whether two boxes overlap. Boxes that only touch do not.
func Overlaps(a, b Box) bool {
	leftA, rightA := a.X-a.Width/2, a.X+a.Width/2
	topA, bottomA := a.Y-a.Height, a.Y
	leftB, rightB := b.X-b.Width/2, b.X+b.Width/2
	topB, bottomB := b.Y-b.Height, b.Y

	return leftA < rightB && rightA > leftB && topA < bottomB && bottomA > topB
}

// collisionBox returns the collision box of an entity at position p.
func collisionBox(p Position, b Body) Box {
	return Box{X: p.X, Y: p.Y, Width: b.Width, Height: b.CollisionHeight}
}
