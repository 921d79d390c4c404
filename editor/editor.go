// Package editor turns mouse and keyboard input into level edits: camera pan
// and zoom, a snapped cell highlight, tile placement and map file commands.
package editor

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/pthm-cable/tileworld/camera"
	"github.com/pthm-cable/tileworld/draw"
	"github.com/pthm-cable/tileworld/input"
	"github.com/pthm-cable/tileworld/level"
	"github.com/pthm-cable/tileworld/tiles"
)

// ErrNoClipboard is returned by Copy when no clipboard writer is configured.
var ErrNoClipboard = errors.New("editor: no clipboard")

// Op is the kind of a queued tile edit.
type Op uint8

const (
	OpPlace Op = iota
	OpRemove
)

// Edit is one queued change to the tile engine.
type Edit struct {
	Op   Op
	Cell tiles.Coord
	Type string
}

// Command is a queued map file action.
type Command uint8

const (
	CmdNone Command = iota
	CmdSave
	CmdLoad
	CmdCopy
)

func (c Command) String() string {
	switch c {
	case CmdSave:
		return "save"
	case CmdLoad:
		return "load"
	case CmdCopy:
		return "copy"
	}
	return "none"
}

// Settings are panel choices that take effect on the next Update.
type Settings struct {
	Brush         string
	ShowGrid      bool
	ShowWorldGrid bool
	Zoom          float32 // Target zoom; 0 leaves the camera alone
}

// Options configures an Editor.
type Options struct {
	Brush         string
	ZoomStep      float32
	MapPath       string
	ShowGrid      bool
	ShowWorldGrid bool

	GridColor       color.RGBA
	WorldGridColor  color.RGBA
	HighlightFill   color.RGBA
	HighlightBorder color.RGBA

	// Clipboard receives the map CSV on Copy.
	Clipboard func(string) error
	// Blocked reports screen points covered by UI; clicks there are ignored.
	Blocked func(x, y float32) bool
}

type dragState struct {
	active   bool
	mouse    camera.Point
	cameraAt camera.Point
}

// Editor holds editor state. Input is read in HandleInput; the engine is only
// changed in Update.
type Editor struct {
	engine *tiles.Engine
	cam    *camera.Camera
	in     input.Source
	opts   Options

	Brush         string
	ShowGrid      bool
	ShowWorldGrid bool

	highlight tiles.Coord
	drag      dragState
	edits     []Edit
	commands  []Command
	settings  *Settings
	status    string
}

// New creates an editor and subscribes it to input changes.
func New(engine *tiles.Engine, cam *camera.Camera, in input.Source, opts Options) *Editor {
	if opts.ZoomStep <= 0 {
		opts.ZoomStep = 0.1
	}
	ed := &Editor{
		engine:        engine,
		cam:           cam,
		in:            in,
		opts:          opts,
		Brush:         opts.Brush,
		ShowGrid:      opts.ShowGrid,
		ShowWorldGrid: opts.ShowWorldGrid,
	}
	in.OnChange(ed.onEvent)
	return ed
}

// onEvent handles edge-triggered input: shortcuts on key press and one zoom
// step per wheel notch.
func (ed *Editor) onEvent(ev input.Event) {
	switch ev {
	case input.EventKeyDown:
		held := ed.in.Held()
		ed.onKey(held[len(held)-1])
	case input.EventWheel:
		switch ed.in.Mouse().Wheel {
		case input.WheelUp:
			ed.cam.SetZoom(ed.cam.Zoom+ed.opts.ZoomStep, 0)
		case input.WheelDown:
			ed.cam.SetZoom(ed.cam.Zoom-ed.opts.ZoomStep, 0)
		}
	}
}

func (ed *Editor) onKey(k input.Key) {
	ctrl := ed.in.IsHeld(input.KeyLeftControl) || ed.in.IsHeld(input.KeyRightControl)
	switch {
	case k == input.KeyG && !ctrl:
		ed.ShowGrid = !ed.ShowGrid
		ed.ShowWorldGrid = ed.ShowGrid
	case k == input.KeyS && ctrl:
		ed.Queue(CmdSave)
	case k == input.KeyL && ctrl:
		ed.Queue(CmdLoad)
	case k == input.KeyC && ctrl:
		ed.Queue(CmdCopy)
	}
}

// Queue schedules a map command for the next Update.
func (ed *Editor) Queue(cmd Command) {
	ed.commands = append(ed.commands, cmd)
}

// QueueSettings replaces the brush, grid flags and zoom on the next Update. A
// later call in the same frame wins.
func (ed *Editor) QueueSettings(s Settings) {
	ed.settings = &s
}

// HandleInput reads the current mouse state: middle-drag pans, the highlight
// follows the cursor, left places the brush and right removes.
func (ed *Editor) HandleInput() {
	m := ed.in.Mouse()
	ed.pan(m)

	size := ed.engine.Size()
	wx, wy := ed.cam.ScreenToWorld(m.X, m.Y)
	ed.highlight = tiles.CellAt(wx, wy, size)

	if ed.opts.Blocked != nil && ed.opts.Blocked(m.X, m.Y) {
		return
	}
	switch {
	case m.Left && ed.Brush != "":
		types := ed.engine.TypesAt(ed.highlight)
		if len(types) == 1 && types[0] == ed.Brush {
			return
		}
		ed.edits = append(ed.edits, Edit{Op: OpPlace, Cell: ed.highlight, Type: ed.Brush})
	case m.Right:
		if len(ed.engine.TypesAt(ed.highlight)) == 0 {
			return
		}
		ed.edits = append(ed.edits, Edit{Op: OpRemove, Cell: ed.highlight})
	}
}

func (ed *Editor) pan(m input.Mouse) {
	switch {
	case m.Middle && !ed.drag.active:
		ed.drag = dragState{
			active:   true,
			mouse:    camera.Point{X: m.X, Y: m.Y},
			cameraAt: camera.Point{X: ed.cam.X, Y: ed.cam.Y},
		}
	case m.Middle:
		dx := (m.X - ed.drag.mouse.X) / ed.cam.Zoom
		dy := (m.Y - ed.drag.mouse.Y) / ed.cam.Zoom
		ed.cam.MoveTo(ed.drag.cameraAt.X-dx, ed.drag.cameraAt.Y-dy, false)
	case ed.drag.active:
		ed.drag = dragState{}
	}
}

// Dragging reports whether a pan is in progress.
func (ed *Editor) Dragging() bool {
	return ed.drag.active
}

// Highlight returns the cell under the cursor.
func (ed *Editor) Highlight() tiles.Coord {
	return ed.highlight
}

// Pending returns the number of queued edits.
func (ed *Editor) Pending() int {
	return len(ed.edits)
}

// Status returns the message from the last map command.
func (ed *Editor) Status() string {
	return ed.status
}

// Update applies queued edits, then queued commands. Placing replaces
// whatever types the cell held.
func (ed *Editor) Update() {
	if s := ed.settings; s != nil {
		ed.settings = nil
		ed.Brush = s.Brush
		ed.ShowGrid = s.ShowGrid
		ed.ShowWorldGrid = s.ShowWorldGrid
		if s.Zoom > 0 && s.Zoom != ed.cam.TargetZoom {
			ed.cam.SetZoom(s.Zoom, 0)
		}
	}

	for _, e := range ed.edits {
		switch e.Op {
		case OpPlace:
			ed.engine.RemoveCell(e.Cell)
			ed.engine.SetCell(e.Cell, e.Type)
			slog.Debug("tile placed", "type", e.Type, "row", e.Cell.Row, "col", e.Cell.Col)
		case OpRemove:
			ed.engine.RemoveCell(e.Cell)
			slog.Debug("tile erased", "row", e.Cell.Row, "col", e.Cell.Col)
		}
	}
	ed.edits = ed.edits[:0]

	for _, cmd := range ed.commands {
		if err := ed.run(cmd); err != nil {
			ed.status = fmt.Sprintf("%s failed: %v", cmd, err)
			slog.Error("editor command failed", "command", cmd.String(), "error", err)
			continue
		}
		ed.status = fmt.Sprintf("%s ok (%d tiles)", cmd, ed.engine.Len())
		slog.Info("editor command", "command", cmd.String(), "path", ed.opts.MapPath, "tiles", ed.engine.Len())
	}
	ed.commands = ed.commands[:0]
}

func (ed *Editor) run(cmd Command) error {
	switch cmd {
	case CmdSave:
		return level.Save(ed.opts.MapPath, ed.engine)
	case CmdLoad:
		return level.Load(ed.opts.MapPath, ed.engine)
	case CmdCopy:
		return ed.Copy()
	}
	return nil
}

// Copy writes the map CSV to the clipboard.
func (ed *Editor) Copy() error {
	if ed.opts.Clipboard == nil {
		return ErrNoClipboard
	}
	s, err := level.String(ed.engine)
	if err != nil {
		return err
	}
	if err := ed.opts.Clipboard(s); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Draw renders the grids and the cell highlight in world space.
func (ed *Editor) Draw(d draw.Drawer) {
	size := ed.engine.Size()
	if ed.ShowWorldGrid {
		tiles.DrawGrid(d, ed.cam, size, 0, ed.opts.WorldGridColor)
	}
	if ed.ShowGrid {
		tiles.DrawGrid(d, ed.cam, size, -size/2, ed.opts.GridColor)
	}
	tiles.DrawHighlight(d, ed.highlight, size, ed.opts.HighlightFill, ed.opts.HighlightBorder)
}
