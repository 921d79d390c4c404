// Package entities stores world objects (static props, moving characters and the
// player) as ECS records and runs their movement and collision.
package entities

import "image/color"

// Kind tags what an entity is capable of.
type Kind uint8

const (
	KindStatic  Kind = iota // Never moves
	KindDynamic             // Moves under a controller
	KindPlayer              // Moves under player input; the camera follows it
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	case KindPlayer:
		return "player"
	}
	return "unknown"
}

// Position is the bottom-middle anchor of an entity in world space.
type Position struct {
	X, Y float32
}

// Body is the drawn size of an entity. The collision box shares the anchor and
// width and extends CollisionHeight upward from the feet.
type Body struct {
	Width, Height   float32
	CollisionHeight float32
}

// Motion holds movement state.
type Motion struct {
	Speed     float32 // World units per second
	DirX      float32 // Last non-zero direction
	DirY      float32
	Moving    bool
	Colliding bool
}

// Appearance holds how an entity is drawn.
type Appearance struct {
	Color color.RGBA
	Label string
}

// ControlMode selects the controller strategy.
type ControlMode uint8

const (
	ControlNone ControlMode = iota
	ControlInput
	ControlScripted
)

// Controller drives an entity's movement each tick.
type Controller struct {
	Mode   ControlMode
	Patrol Patrol // Used by ControlScripted
}

// Patrol walks back and forth along a fixed vector.
type Patrol struct {
	DX, DY    float32 // Unit direction of the outbound leg
	Distance  float32 // Leg length in world units
	Travelled float32
	Returning bool
}
