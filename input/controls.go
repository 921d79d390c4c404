package input

import (
	"fmt"
	"slices"
	"strings"
)

// Action names used by gameplay.
const (
	MoveUp    = "move_up"
	MoveDown  = "move_down"
	MoveLeft  = "move_left"
	MoveRight = "move_right"
	Sprint    = "sprint"
)

var keyNames = map[string]Key{
	"space":        KeySpace,
	"a":            KeyA,
	"c":            KeyC,
	"d":            KeyD,
	"e":            KeyE,
	"g":            KeyG,
	"l":            KeyL,
	"q":            KeyQ,
	"s":            KeyS,
	"w":            KeyW,
	"escape":       KeyEscape,
	"enter":        KeyEnter,
	"tab":          KeyTab,
	"right":        KeyRight,
	"left":         KeyLeft,
	"down":         KeyDown,
	"up":           KeyUp,
	"f1":           KeyF1,
	"leftshift":    KeyLeftShift,
	"rightshift":   KeyRightShift,
	"leftcontrol":  KeyLeftControl,
	"rightcontrol": KeyRightControl,
}

// KeyByName resolves a key name as written in config ("W", "Up", "LeftShift").
// Names are case-insensitive. Single letters and digits resolve to their codes.
func KeyByName(name string) (Key, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNames[n]; ok {
		return k, true
	}
	if len(n) == 1 {
		switch ch := n[0]; {
		case ch >= 'a' && ch <= 'z':
			return KeyA + Key(ch-'a'), true
		case ch >= '0' && ch <= '9':
			return KeyZero + Key(ch-'0'), true
		}
	}
	return 0, false
}

// Controls maps action names to the keys bound to them.
type Controls map[string][]Key

// ParseControls resolves the action bindings from config.
func ParseControls(bindings map[string][]string) (Controls, error) {
	c := make(Controls, len(bindings))
	for action, names := range bindings {
		for _, name := range names {
			k, ok := KeyByName(name)
			if !ok {
				return nil, fmt.Errorf("controls.%s: unknown key %q", action, name)
			}
			c[action] = append(c[action], k)
		}
	}
	return c, nil
}

// Active reports whether any key bound to action is held.
func (c Controls) Active(action string, held []Key) bool {
	for _, k := range c[action] {
		if slices.Contains(held, k) {
			return true
		}
	}
	return false
}

// Axis returns the movement direction from the four move actions, each
// component in {-1, 0, 1}. Y grows downward. Keys are read in press order, so
// of two opposing keys the one pressed last wins.
func (c Controls) Axis(held []Key) (dx, dy float32) {
	for _, k := range held {
		switch {
		case slices.Contains(c[MoveUp], k):
			dy = -1
		case slices.Contains(c[MoveDown], k):
			dy = 1
		case slices.Contains(c[MoveLeft], k):
			dx = -1
		case slices.Contains(c[MoveRight], k):
			dx = 1
		}
	}
	return dx, dy
}
