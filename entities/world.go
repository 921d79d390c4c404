package entities

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tileworld/config"
	"github.com/pthm-cable/tileworld/input"
)

// ErrUnknownCharacter is returned when spawning a character missing from config.
var ErrUnknownCharacter = errors.New("entities: unknown character")

// diagonalScale normalises diagonal input to roughly unit length.
const diagonalScale = 0.707

// World holds every entity of a session.
type World struct {
	world *ecs.World

	mapper *ecs.Map6[
		Kind,
		Position,
		Body,
		Motion,
		Appearance,
		Controller,
	]
	filter *ecs.Filter6[
		Kind,
		Position,
		Body,
		Motion,
		Appearance,
		Controller,
	]
	posMap *ecs.Map1[Position]

	cfg      *config.Config
	controls input.Controls

	player    ecs.Entity
	hasPlayer bool
	count     int

	// Reused between updates
	boxes      []entityBox
	hash       *spatialHash
	candidates []int
	drawList   []drawItem
}

// entityBox is a per-tick snapshot used for collision queries.
type entityBox struct {
	entity ecs.Entity
	box    Box
}

// NewWorld creates an empty entity world.
func NewWorld(cfg *config.Config, controls input.Controls) *World {
	world := ecs.NewWorld()
	return &World{
		world: world,
		mapper: ecs.NewMap6[
			Kind,
			Position,
			Body,
			Motion,
			Appearance,
			Controller,
		](world),
		filter: ecs.NewFilter6[
			Kind,
			Position,
			Body,
			Motion,
			Appearance,
			Controller,
		](world),
		posMap:   ecs.NewMap1[Position](world),
		cfg:      cfg,
		controls: controls,
		hash:     newSpatialHash(cfg.Derived.TileSize32),
	}
}

// SpawnCharacter creates a character from config at (x, y) driven by mode.
// A ControlInput character becomes the player.
func (w *World) SpawnCharacter(name string, x, y float32, mode ControlMode) (ecs.Entity, error) {
	ch, ok := w.cfg.Characters[name]
	if !ok {
		return ecs.Entity{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, name)
	}

	kind := KindDynamic
	if mode == ControlInput {
		kind = KindPlayer
	}

	k := kind
	pos := Position{X: x, Y: y}
	body := Body{Width: float32(ch.Width), Height: float32(ch.Height), CollisionHeight: float32(ch.Height) / 2}
	motion := Motion{Speed: float32(ch.Speed), DirY: 1}
	app := Appearance{Color: w.cfg.Derived.CharacterColors[name], Label: name}
	ctrl := Controller{Mode: mode}

	e := w.mapper.NewEntity(&k, &pos, &body, &motion, &app, &ctrl)
	w.count++
	if kind == KindPlayer {
		w.player = e
		w.hasPlayer = true
	}
	slog.Debug("character spawned", "name", name, "kind", kind.String(), "x", x, "y", y)
	return e, nil
}

// SpawnPatrol creates a scripted character walking distance units along
// (dx, dy) and back.
func (w *World) SpawnPatrol(name string, x, y, dx, dy, distance float32) (ecs.Entity, error) {
	e, err := w.SpawnCharacter(name, x, y, ControlScripted)
	if err != nil {
		return e, err
	}
	_, _, _, _, _, ctrl := w.mapper.Get(e)
	ctrl.Patrol = Patrol{DX: dx, DY: dy, Distance: distance}
	return e, nil
}

// SpawnStatic creates an immovable prop.
func (w *World) SpawnStatic(x, y float32, body Body, app Appearance) ecs.Entity {
	k := KindStatic
	pos := Position{X: x, Y: y}
	if body.CollisionHeight == 0 {
		body.CollisionHeight = body.Height
	}
	motion := Motion{}
	ctrl := Controller{Mode: ControlNone}
	w.count++
	return w.mapper.NewEntity(&k, &pos, &body, &motion, &app, &ctrl)
}

// Remove deletes an entity.
func (w *World) Remove(e ecs.Entity) {
	if !w.world.Alive(e) {
		return
	}
	if w.hasPlayer && e == w.player {
		w.hasPlayer = false
	}
	w.world.RemoveEntity(e)
	w.count--
}

// Len returns the number of entities.
func (w *World) Len() int {
	return w.count
}

// Player returns the player's position.
func (w *World) Player() (Position, bool) {
	if !w.hasPlayer || !w.world.Alive(w.player) {
		return Position{}, false
	}
	return *w.posMap.Get(w.player), true
}

// PlayerEntity returns the player entity.
func (w *World) PlayerEntity() (ecs.Entity, bool) {
	return w.player, w.hasPlayer && w.world.Alive(w.player)
}

// Get returns the components of an entity.
func (w *World) Get(e ecs.Entity) (Kind, Position, Body, Motion) {
	k, p, b, m, _, _ := w.mapper.Get(e)
	return *k, *p, *b, *m
}

// Update moves every controlled entity by one tick of dt seconds. Movement that
// would overlap another entity's collision box is cancelled for that tick.
func (w *World) Update(dt float32, held []input.Key) {
	w.snapshotBoxes()

	i := 0
	query := w.filter.Query()
	for query.Next() {
		_, pos, body, motion, _, ctrl := query.Get()
		idx := i
		i++

		var dx, dy, speed float32
		switch ctrl.Mode {
		case ControlInput:
			dx, dy, speed = w.inputStep(motion, held)
		case ControlScripted:
			dx, dy, speed = patrolStep(motion, &ctrl.Patrol, dt)
		default:
			continue
		}

		motion.Moving = dx != 0 || dy != 0
		if motion.Moving {
			motion.DirX, motion.DirY = dx, dy
		}

		next := Position{X: pos.X + dx*speed*dt, Y: pos.Y + dy*speed*dt}
		motion.Colliding = w.blocked(idx, collisionBox(next, *body))
		if motion.Colliding {
			continue
		}
		if ctrl.Mode == ControlScripted {
			advancePatrol(&ctrl.Patrol, speed*dt)
		}
		*pos = next
		w.boxes[idx].box = collisionBox(next, *body)
		// Stale buckets for the old box are harmless: queries test the current box
		w.hash.Insert(idx, w.boxes[idx].box)
	}
}

// inputStep returns the input-driven direction and speed.
func (w *World) inputStep(m *Motion, held []input.Key) (dx, dy, speed float32) {
	dx, dy = w.controls.Axis(held)
	speed = m.Speed
	if w.controls.Active(input.Sprint, held) {
		speed *= 2
	}
	if dx != 0 && dy != 0 {
		dx *= diagonalScale
		dy *= diagonalScale
	}
	return dx, dy, speed
}

// patrolStep returns the direction for the current patrol leg.
func patrolStep(m *Motion, p *Patrol, dt float32) (dx, dy, speed float32) {
	if p.Distance <= 0 || dt <= 0 {
		return 0, 0, 0
	}
	dx, dy = p.DX, p.DY
	if p.Returning {
		dx, dy = -dx, -dy
	}
	return dx, dy, m.Speed
}

// advancePatrol records distance walked and turns around at the end of a leg.
func advancePatrol(p *Patrol, step float32) {
	p.Travelled += step
	if p.Travelled >= p.Distance {
		p.Travelled = 0
		p.Returning = !p.Returning
	}
}

// snapshotBoxes captures collision boxes in filter order and indexes them.
func (w *World) snapshotBoxes() {
	w.boxes = w.boxes[:0]
	w.hash.Clear()
	query := w.filter.Query()
	for query.Next() {
		_, pos, body, _, _, _ := query.Get()
		b := collisionBox(*pos, *body)
		w.hash.Insert(len(w.boxes), b)
		w.boxes = append(w.boxes, entityBox{entity: query.Entity(), box: b})
	}
}

// blocked reports whether box overlaps any snapshot box other than self.
func (w *World) blocked(self int, box Box) bool {
	w.candidates = w.hash.QueryInto(w.candidates[:0], box)
	for _, i := range w.candidates {
		if i == self {
			continue
		}
		if Overlaps(box, w.boxes[i].box) {
			return true
		}
	}
	return false
}
