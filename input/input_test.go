package input

import (
	"slices"
	"testing"
	"time"
)

func TestHeldKeepsPressOrder(t *testing.T) {
	s := NewState(150 * time.Millisecond)
	now := time.Unix(0, 0)

	s.Apply(Sample{Down: []Key{KeyW}, Focused: true}, now)
	s.Apply(Sample{Down: []Key{KeyD, KeyW}, Focused: true}, now)
	s.Apply(Sample{Down: []Key{KeyA, KeyD, KeyW}, Focused: true}, now)

	if got, want := s.Held(), []Key{KeyW, KeyD, KeyA}; !slices.Equal(got, want) {
		t.Errorf("Held() = %v, want %v", got, want)
	}

	s.Apply(Sample{Down: []Key{KeyA, KeyW}, Focused: true}, now)
	if got, want := s.Held(), []Key{KeyW, KeyA}; !slices.Equal(got, want) {
		t.Errorf("after release Held() = %v, want %v", got, want)
	}
}

func TestFocusLossClearsKeys(t *testing.T) {
	s := NewState(0)
	var events []Event
	s.OnChange(func(ev Event) { events = append(events, ev) })

	s.Apply(Sample{Down: []Key{KeyW}, Focused: true}, time.Time{})
	s.Apply(Sample{Down: []Key{KeyW}, Focused: false}, time.Time{})

	if len(s.Held()) != 0 {
		t.Errorf("expected no held keys, got %v", s.Held())
	}
	if want := []Event{EventKeyDown, EventFocusLost}; !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestWheelLatch(t *testing.T) {
	s := NewState(150 * time.Millisecond)
	t0 := time.Unix(100, 0)

	s.Apply(Sample{Mouse: Mouse{Wheel: WheelDown}, Focused: true}, t0)
	if s.Mouse().Wheel != WheelDown {
		t.Fatalf("expected wheel down, got %v", s.Mouse().Wheel)
	}

	// Opposite direction inside the same burst keeps the first direction
	s.Apply(Sample{Mouse: Mouse{Wheel: WheelUp}, Focused: true}, t0.Add(50*time.Millisecond))
	if s.Mouse().Wheel != WheelDown {
		t.Errorf("expected latched wheel down, got %v", s.Mouse().Wheel)
	}

	s.Apply(Sample{Focused: true}, t0.Add(100*time.Millisecond))
	if s.Mouse().Wheel != WheelDown {
		t.Errorf("expected wheel still latched, got %v", s.Mouse().Wheel)
	}

	s.Apply(Sample{Focused: true}, t0.Add(250*time.Millisecond))
	if s.Mouse().Wheel != WheelNone {
		t.Errorf("expected wheel released, got %v", s.Mouse().Wheel)
	}
}

func TestMouseEvents(t *testing.T) {
	s := NewState(0)
	var events []Event
	s.OnChange(func(ev Event) { events = append(events, ev) })

	s.Apply(Sample{Mouse: Mouse{X: 10, Y: 20, Left: true}, Focused: true}, time.Time{})
	s.Apply(Sample{Mouse: Mouse{X: 10, Y: 20, Left: true}, Focused: true}, time.Time{})

	if want := []Event{EventMouseMove, EventClick}; !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if m := s.Mouse(); m.X != 10 || m.Y != 20 || !m.Left {
		t.Errorf("Mouse() = %+v", m)
	}
}

func TestKeyByName(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"W", KeyW, true},
		{"up", KeyUp, true},
		{"LeftShift", KeyLeftShift, true},
		{"z", KeyA + 25, true},
		{"7", KeyZero + 7, true},
		{"hyper", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyByName(tt.name)
			if got != tt.want || ok != tt.ok {
				t.Errorf("KeyByName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestControlsAxis(t *testing.T) {
	c, err := ParseControls(map[string][]string{
		MoveUp:    {"W", "Up"},
		MoveDown:  {"S", "Down"},
		MoveLeft:  {"A", "Left"},
		MoveRight: {"D", "Right"},
		Sprint:    {"LeftShift"},
	})
	if err != nil {
		t.Fatalf("ParseControls: %v", err)
	}

	tests := []struct {
		name   string
		held   []Key
		dx, dy float32
	}{
		{"idle", nil, 0, 0},
		{"up", []Key{KeyW}, 0, -1},
		{"arrow right", []Key{KeyRight}, 1, 0},
		{"diagonal", []Key{KeyS, KeyA}, -1, 1},
		{"last pressed wins", []Key{KeyW, KeyDown}, 0, 1},
		{"last pressed wins reversed", []Key{KeyRight, KeyA}, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := c.Axis(tt.held)
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("Axis(%v) = (%v, %v), want (%v, %v)", tt.held, dx, dy, tt.dx, tt.dy)
			}
		})
	}

	if !c.Active(Sprint, []Key{KeyLeftShift}) {
		t.Error("expected sprint active")
	}
}

func TestParseControlsUnknownKey(t *testing.T) {
	if _, err := ParseControls(map[string][]string{MoveUp: {"Hyper"}}); err == nil {
		t.Error("expected error for unknown key")
	}
}
