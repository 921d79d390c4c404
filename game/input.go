package game

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tileworld/input"
)

// shortcutKeys are polled regardless of the control bindings.
var shortcutKeys = []input.Key{
	input.KeyG, input.KeyS, input.KeyL, input.KeyC, input.KeyQ,
	input.KeyTab, input.KeyF1,
	input.KeyLeftControl, input.KeyRightControl,
}

// polledKeys returns every key the session reacts to.
func (s *Session) polledKeys() []input.Key {
	if s.keys != nil {
		return s.keys
	}
	keys := slices.Clone(shortcutKeys)
	for _, bound := range s.controls {
		for _, k := range bound {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	s.keys = keys
	return keys
}

// pollInput samples the raylib keyboard and mouse for this frame.
func (s *Session) pollInput() input.Sample {
	sample := input.Sample{Focused: rl.IsWindowFocused()}
	for _, k := range s.polledKeys() {
		if rl.IsKeyDown(int32(k)) {
			sample.Down = append(sample.Down, k)
		}
	}

	mouse := rl.GetMousePosition()
	sample.Mouse = input.Mouse{
		X:      mouse.X,
		Y:      mouse.Y,
		Left:   rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Right:  rl.IsMouseButtonDown(rl.MouseButtonRight),
		Middle: rl.IsMouseButtonDown(rl.MouseButtonMiddle),
	}
	switch wheel := rl.GetMouseWheelMove(); {
	case wheel > 0:
		sample.Mouse.Wheel = input.WheelUp
	case wheel < 0:
		sample.Mouse.Wheel = input.WheelDown
	}
	return sample
}

// handleResize checks for window resize and propagates new dimensions.
func (s *Session) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == s.screenWidth && h == s.screenHeight {
		return
	}
	s.screenWidth = w
	s.screenHeight = h
	s.cam.SetSize(w, h)
}
