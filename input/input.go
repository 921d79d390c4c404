// Package input defines the input collaborator: held keys, mouse state and change
// notification. Platform polling lives in the game package.
package input

import (
	"slices"
	"time"
)

// Key is a logical key code. Values match raylib's key codes.
type Key int32

const (
	KeySpace        Key = 32
	KeyZero         Key = 48
	KeyA            Key = 65
	KeyC            Key = 67
	KeyD            Key = 68
	KeyE            Key = 69
	KeyG            Key = 71
	KeyL            Key = 76
	KeyQ            Key = 81
	KeyS            Key = 83
	KeyW            Key = 87
	KeyEscape       Key = 256
	KeyEnter        Key = 257
	KeyTab          Key = 258
	KeyRight        Key = 262
	KeyLeft         Key = 263
	KeyDown         Key = 264
	KeyUp           Key = 265
	KeyF1           Key = 290
	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
)

// Wheel is the latched scroll direction.
type Wheel int8

const (
	WheelNone Wheel = 0
	WheelUp   Wheel = 1
	WheelDown Wheel = -1
)

// Event names what changed in a State update.
type Event uint8

const (
	EventKeyDown Event = iota
	EventKeyUp
	EventClick
	EventWheel
	EventMouseMove
	EventFocusLost
)

// Mouse is the mouse state in screen pixels.
type Mouse struct {
	X, Y   float32
	Left   bool
	Right  bool
	Middle bool
	Wheel  Wheel
}

// Source is what gameplay and editor code read each frame.
type Source interface {
	// Held returns the currently held keys in the order they were pressed.
	Held() []Key
	IsHeld(k Key) bool
	Mouse() Mouse
	OnChange(fn func(Event))
}

var _ Source = (*State)(nil)

// Sample is one frame of raw platform input.
type Sample struct {
	Down    []Key // Keys currently down, any order
	Mouse   Mouse // Wheel is the raw direction this frame
	Focused bool
}

// State accumulates frame samples into a Source. Keys keep press order, the
// wheel direction stays latched until no wheel movement has been seen for the
// hold duration, and listeners hear every change.
type State struct {
	held      []Key
	mouse     Mouse
	hold      time.Duration
	lastWheel time.Time
	listeners []func(Event)
}

// NewState creates an empty state with the given wheel hold duration.
func NewState(wheelHold time.Duration) *State {
	return &State{hold: wheelHold}
}

// OnChange registers a listener called once per change event.
func (s *State) OnChange(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

func (s *State) notify(ev Event) {
	for _, fn := range s.listeners {
		fn(ev)
	}
}

// Held implements Source.
func (s *State) Held() []Key {
	return s.held
}

// Mouse implements Source.
func (s *State) Mouse() Mouse {
	return s.mouse
}

// IsHeld reports whether k is held.
func (s *State) IsHeld(k Key) bool {
	return slices.Contains(s.held, k)
}

// Apply folds one frame sample into the state at time now.
func (s *State) Apply(sample Sample, now time.Time) {
	if !sample.Focused {
		if len(s.held) > 0 {
			s.held = s.held[:0]
			s.notify(EventFocusLost)
		}
	} else {
		s.applyKeys(sample.Down)
	}

	m := sample.Mouse
	if m.X != s.mouse.X || m.Y != s.mouse.Y {
		s.mouse.X, s.mouse.Y = m.X, m.Y
		s.notify(EventMouseMove)
	}
	if m.Left != s.mouse.Left || m.Right != s.mouse.Right || m.Middle != s.mouse.Middle {
		s.mouse.Left, s.mouse.Right, s.mouse.Middle = m.Left, m.Right, m.Middle
		s.notify(EventClick)
	}

	if m.Wheel != WheelNone {
		// Direction is fixed by the first notch of a scroll burst
		if s.mouse.Wheel == WheelNone {
			s.mouse.Wheel = m.Wheel
		}
		s.lastWheel = now
		s.notify(EventWheel)
	} else if s.mouse.Wheel != WheelNone && now.Sub(s.lastWheel) >= s.hold {
		s.mouse.Wheel = WheelNone
	}
}

func (s *State) applyKeys(down []Key) {
	kept := s.held[:0]
	released := false
	for _, k := range s.held {
		if slices.Contains(down, k) {
			kept = append(kept, k)
		} else {
			released = true
		}
	}
	s.held = kept
	if released {
		s.notify(EventKeyUp)
	}

	for _, k := range down {
		if !slices.Contains(s.held, k) {
			s.held = append(s.held, k)
			s.notify(EventKeyDown)
		}
	}
}
