package entities

import (
	"errors"
	"slices"
	"testing"

	"github.com/pthm-cable/tileworld/camera"
	"github.com/pthm-cable/tileworld/config"
	"github.com/pthm-cable/tileworld/draw"
	"github.com/pthm-cable/tileworld/input"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	controls, err := input.ParseControls(cfg.Controls)
	if err != nil {
		t.Fatalf("ParseControls: %v", err)
	}
	return NewWorld(cfg, controls)
}

func TestOverlaps(t *testing.T) {
	a := Box{X: 0, Y: 0, Width: 30, Height: 25}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"same", a, true},
		{"partial", Box{X: 20, Y: 10, Width: 30, Height: 25}, true},
		{"touching right edge", Box{X: 30, Y: 0, Width: 30, Height: 25}, false},
		{"touching top edge", Box{X: 0, Y: -25, Width: 30, Height: 25}, false},
		{"far", Box{X: 500, Y: 500, Width: 30, Height: 25}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%+v, %+v) = %v, want %v", a, tt.b, got, tt.want)
			}
			if got := Overlaps(tt.b, a); got != tt.want {
				t.Errorf("Overlaps not symmetric for %+v", tt.b)
			}
		})
	}
}

func TestSpawnCharacter(t *testing.T) {
	w := newTestWorld(t)

	e, err := w.SpawnCharacter("peter", 100, 100, ControlInput)
	if err != nil {
		t.Fatalf("SpawnCharacter: %v", err)
	}
	kind, pos, body, motion := w.Get(e)
	if kind != KindPlayer {
		t.Errorf("kind = %v, want player", kind)
	}
	if pos != (Position{X: 100, Y: 100}) {
		t.Errorf("pos = %+v", pos)
	}
	if body.Width != 30 || body.Height != 50 || body.CollisionHeight != 25 {
		t.Errorf("body = %+v", body)
	}
	if motion.Speed != 200 {
		t.Errorf("speed = %v, want 200", motion.Speed)
	}

	if p, ok := w.Player(); !ok || p.X != 100 {
		t.Errorf("Player() = %+v, %v", p, ok)
	}

	if _, err := w.SpawnCharacter("nobody", 0, 0, ControlNone); !errors.Is(err, ErrUnknownCharacter) {
		t.Errorf("expected ErrUnknownCharacter, got %v", err)
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Len())
	}
}

func TestPlayerMovement(t *testing.T) {
	tests := []struct {
		name   string
		held   []input.Key
		dx, dy float32
	}{
		{"idle", nil, 0, 0},
		{"right", []input.Key{input.KeyD}, 20, 0},
		{"up", []input.Key{input.KeyW}, 0, -20},
		{"sprint left", []input.Key{input.KeyA, input.KeyLeftShift}, -40, 0},
		{"diagonal", []input.Key{input.KeyS, input.KeyD}, 20 * diagonalScale, 20 * diagonalScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			e, err := w.SpawnCharacter("peter", 0, 0, ControlInput)
			if err != nil {
				t.Fatal(err)
			}
			w.Update(0.1, tt.held)

			_, pos, _, motion := w.Get(e)
			if !near(pos.X, tt.dx) || !near(pos.Y, tt.dy) {
				t.Errorf("pos = %+v, want (%v, %v)", pos, tt.dx, tt.dy)
			}
			if motion.Moving != (tt.dx != 0 || tt.dy != 0) {
				t.Errorf("Moving = %v", motion.Moving)
			}
		})
	}
}

func TestDirectionRemembered(t *testing.T) {
	w := newTestWorld(t)
	e, _ := w.SpawnCharacter("peter", 0, 0, ControlInput)

	w.Update(0.1, []input.Key{input.KeyA})
	w.Update(0.1, nil)

	_, _, _, motion := w.Get(e)
	if motion.Moving {
		t.Error("expected not moving")
	}
	if motion.DirX != -1 || motion.DirY != 0 {
		t.Errorf("direction = (%v, %v), want (-1, 0)", motion.DirX, motion.DirY)
	}
}

func TestCollisionBlocksMovement(t *testing.T) {
	w := newTestWorld(t)
	e, _ := w.SpawnCharacter("peter", 0, 0, ControlInput)
	// Wall just right of the player's collision box
	w.SpawnStatic(40, 0, Body{Width: 20, Height: 40}, Appearance{Label: "wall"})

	// 0.1s at 200 units/s moves 20 units, which would overlap the wall
	w.Update(0.1, []input.Key{input.KeyD})

	_, pos, _, motion := w.Get(e)
	if pos.X != 0 {
		t.Errorf("expected movement blocked, pos = %+v", pos)
	}
	if !motion.Colliding {
		t.Error("expected Colliding to be set")
	}

	// Moving away is allowed and clears the flag
	w.Update(0.1, []input.Key{input.KeyA})
	_, pos, _, motion = w.Get(e)
	if !near(pos.X, -20) || motion.Colliding {
		t.Errorf("pos = %+v colliding = %v", pos, motion.Colliding)
	}
}

func TestCollisionUsesFeetOnly(t *testing.T) {
	w := newTestWorld(t)
	e, _ := w.SpawnCharacter("peter", 0, 100, ControlInput)
	// Prop whose box sits above the player's feet box but overlaps its drawn body
	w.SpawnStatic(0, 70, Body{Width: 30, Height: 10}, Appearance{})

	w.Update(0.01, []input.Key{input.KeyD})
	_, pos, _, motion := w.Get(e)
	if motion.Colliding || pos.X == 0 {
		t.Errorf("expected free movement, pos = %+v colliding = %v", pos, motion.Colliding)
	}
}

func TestPatrol(t *testing.T) {
	w := newTestWorld(t)
	e, err := w.SpawnPatrol("marty", 0, 0, 1, 0, 40)
	if err != nil {
		t.Fatal(err)
	}

	// 200 units/s * 0.1s = 20 per tick; two ticks reach the end of the leg
	w.Update(0.1, nil)
	w.Update(0.1, nil)
	_, pos, _, _ := w.Get(e)
	if !near(pos.X, 40) {
		t.Fatalf("after outbound leg pos = %+v, want x=40", pos)
	}

	w.Update(0.1, nil)
	_, pos, _, motion := w.Get(e)
	if !near(pos.X, 20) {
		t.Errorf("after turning pos = %+v, want x=20", pos)
	}
	if motion.DirX != -1 {
		t.Errorf("DirX = %v, want -1", motion.DirX)
	}
}

func TestUncontrolledStaysPut(t *testing.T) {
	w := newTestWorld(t)
	e, _ := w.SpawnCharacter("steve", 0, 0, ControlNone)
	w.Update(0.1, []input.Key{input.KeyD})
	if _, pos, _, _ := w.Get(e); pos.X != 0 {
		t.Errorf("uncontrolled entity moved to %+v", pos)
	}
}

func TestRemove(t *testing.T) {
	w := newTestWorld(t)
	e, _ := w.SpawnCharacter("peter", 0, 0, ControlInput)
	other, _ := w.SpawnCharacter("marty", 100, 0, ControlNone)
	w.Remove(e)
	w.Remove(e)

	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Len())
	}
	w.Remove(other)
	if w.Len() != 0 {
		t.Errorf("Len() = %d, want 0", w.Len())
	}
	if _, ok := w.Player(); ok {
		t.Error("expected no player after removal")
	}
}

func TestDrawCullsAndSorts(t *testing.T) {
	w := newTestWorld(t)
	w.SpawnCharacter("peter", 100, 300, ControlInput)
	w.SpawnCharacter("marty", 200, 200, ControlNone)
	w.SpawnCharacter("steve", 5000, 5000, ControlNone)

	cam := camera.New(0, 0, 800, 600)
	var rec draw.Recorder
	if n := w.Draw(&rec, cam, false); n != 2 {
		t.Fatalf("Draw() = %d, want 2", n)
	}

	var labels []string
	for _, c := range rec.Calls {
		if c.Op == draw.OpText {
			labels = append(labels, c.Text)
		}
	}
	if len(labels) != 2 || labels[0] != "marty" || labels[1] != "peter" {
		t.Errorf("labels = %v, want [marty peter]", labels)
	}

	box := rec.Calls[0]
	if box.Op != draw.OpBox || box.X != 185 || box.Y != 150 || !box.Filled {
		t.Errorf("first call = %+v, want filled box at (185, 150)", box)
	}
}

func TestDrawDebugOutlines(t *testing.T) {
	w := newTestWorld(t)
	w.SpawnCharacter("peter", 100, 100, ControlInput)

	var rec draw.Recorder
	w.Draw(&rec, camera.New(0, 0, 800, 600), true)
	if got := rec.Count(draw.OpBox); got != 2 {
		t.Errorf("box calls = %d, want 2", got)
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}

func TestSpatialHashQuery(t *testing.T) {
	h := newSpatialHash(100)
	h.Insert(0, Box{X: 50, Y: 50, Width: 20, Height: 20})
	h.Insert(1, Box{X: -150, Y: 250, Width: 20, Height: 20})
	// Spans four cells
	h.Insert(2, Box{X: 300, Y: 310, Width: 40, Height: 40})

	tests := []struct {
		name string
		box  Box
		want []int
	}{
		{"same cell", Box{X: 60, Y: 60, Width: 10, Height: 10}, []int{0}},
		{"negative cell", Box{X: -120, Y: 220, Width: 10, Height: 10}, []int{1}},
		{"straddling box", Box{X: 310, Y: 290, Width: 10, Height: 10}, []int{2}},
		{"empty region", Box{X: 1000, Y: 1000, Width: 10, Height: 10}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.QueryInto(nil, tt.box)
			for _, w := range tt.want {
				if !slices.Contains(got, w) {
					t.Errorf("QueryInto = %v, missing %d", got, w)
				}
			}
			if len(tt.want) == 0 && len(got) != 0 {
				t.Errorf("QueryInto = %v, want none", got)
			}
		})
	}

	h.Clear()
	if got := h.QueryInto(nil, Box{X: 60, Y: 60, Width: 10, Height: 10}); len(got) != 0 {
		t.Errorf("after Clear QueryInto = %v", got)
	}
}

func TestCollisionAcrossCells(t *testing.T) {
	w := newTestWorld(t)
	// Player just left of a cell boundary at x=100, wall just right of it
	e, _ := w.SpawnCharacter("peter", 80, 40, ControlInput)
	w.SpawnStatic(120, 40, Body{Width: 20, Height: 30}, Appearance{})

	w.Update(0.1, []input.Key{input.KeyD})
	if _, pos, _, motion := w.Get(e); pos.X != 80 || !motion.Colliding {
		t.Errorf("expected block across cell boundary, pos = %+v", pos)
	}
}

func TestSpatialHashClearDropsBuckets(t *testing.T) {
	h := newSpatialHash(100)
	for tick := 0; tick < 1000; tick++ {
		h.Clear()
		x := float32(tick*100 + 50)
		h.Insert(0, Box{X: x, Y: 50, Width: 20, Height: 20})
	}
	if got := h.Buckets(); got != 1 {
		t.Errorf("Buckets() = %d after moving across 1000 cells, want 1", got)
	}
}

func TestUpdateKeepsHashBounded(t *testing.T) {
	w := newTestWorld(t)
	if _, err := w.SpawnPatrol("marty", 50, 50, 1, 0, 1e6); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500; i++ {
		w.Update(1, nil)
	}
	if _, pos, _, _ := w.Get(w.boxes[0].entity); pos.X < 50000 {
		t.Fatalf("patrol did not travel: %+v", pos)
	}
	// Snapshot box plus moved box, each spanning at most four cells
	if got := w.hash.Buckets(); got > 8 {
		t.Errorf("Buckets() = %d after 500 ticks, want <= 8", got)
	}
}
