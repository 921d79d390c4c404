package editor

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/tileworld/camera"
	"github.com/pthm-cable/tileworld/draw"
	"github.com/pthm-cable/tileworld/input"
	"github.com/pthm-cable/tileworld/tiles"
)

type fixture struct {
	ed     *Editor
	engine *tiles.Engine
	cam    *camera.Camera
	in     *input.State
	now    time.Time
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	if opts.Brush == "" {
		opts.Brush = "grass"
	}
	if opts.MapPath == "" {
		opts.MapPath = filepath.Join(t.TempDir(), "map.csv")
	}
	f := &fixture{
		engine: tiles.NewEngine(50),
		cam:    camera.New(0, 0, 800, 600),
		in:     input.NewState(150 * time.Millisecond),
		now:    time.Unix(100, 0),
	}
	f.ed = New(f.engine, f.cam, f.in, opts)
	return f
}

// frame applies a sample, then runs the editor's input and update steps.
func (f *fixture) frame(keys []input.Key, m input.Mouse) {
	f.now = f.now.Add(16 * time.Millisecond)
	f.in.Apply(input.Sample{Down: keys, Mouse: m, Focused: true}, f.now)
	f.ed.HandleInput()
	f.ed.Update()
}

func TestPlaceAndRemove(t *testing.T) {
	f := newFixture(t, Options{})

	// Screen (120, 80) at zoom 1 is cell (1, 2)
	f.frame(nil, input.Mouse{X: 120, Y: 80, Left: true})
	if got := f.ed.Highlight(); got != (tiles.Coord{Row: 1, Col: 2}) {
		t.Fatalf("Highlight() = %+v, want {1 2}", got)
	}
	if !f.engine.Has(tiles.Coord{Row: 1, Col: 2}, "grass") {
		t.Fatal("expected grass placed at (1, 2)")
	}

	f.frame(nil, input.Mouse{X: 120, Y: 80, Right: true})
	if f.engine.Len() != 0 {
		t.Errorf("expected empty engine after remove, Len() = %d", f.engine.Len())
	}
}

func TestPlaceReplacesExistingTypes(t *testing.T) {
	f := newFixture(t, Options{Brush: "water"})
	cell := tiles.Coord{Row: 0, Col: 0}
	f.engine.SetCell(cell, "grass")
	f.engine.SetCell(cell, "stone")

	f.frame(nil, input.Mouse{X: 10, Y: 10, Left: true})

	if got := f.engine.TypesAt(cell); !slices.Equal(got, []string{"water"}) {
		t.Errorf("TypesAt = %v, want [water]", got)
	}
}

func TestHeldButtonQueuesOnlyChanges(t *testing.T) {
	f := newFixture(t, Options{})
	m := input.Mouse{X: 10, Y: 10, Left: true}

	f.frame(nil, m)
	f.in.Apply(input.Sample{Mouse: m, Focused: true}, f.now)
	f.ed.HandleInput()
	if f.ed.Pending() != 0 {
		t.Errorf("expected no edit for an already painted cell, Pending() = %d", f.ed.Pending())
	}
}

func TestEditsWaitForUpdate(t *testing.T) {
	f := newFixture(t, Options{})
	f.in.Apply(input.Sample{Mouse: input.Mouse{X: 10, Y: 10, Left: true}, Focused: true}, f.now)
	f.ed.HandleInput()

	if f.engine.Len() != 0 {
		t.Fatal("engine changed before Update")
	}
	f.ed.Update()
	if f.engine.Len() != 1 {
		t.Errorf("Len() = %d after Update, want 1", f.engine.Len())
	}
}

func TestBlockedIgnoresClicks(t *testing.T) {
	f := newFixture(t, Options{Blocked: func(x, y float32) bool { return x < 200 }})

	f.frame(nil, input.Mouse{X: 10, Y: 10, Left: true})
	if f.engine.Len() != 0 {
		t.Error("click over UI placed a tile")
	}
	f.frame(nil, input.Mouse{X: 300, Y: 10, Left: true})
	if f.engine.Len() != 1 {
		t.Error("click outside UI did not place a tile")
	}
}

func TestMiddleDragPans(t *testing.T) {
	f := newFixture(t, Options{})
	f.cam.Zoom = 2

	f.frame(nil, input.Mouse{X: 100, Y: 100, Middle: true})
	if !f.ed.Dragging() {
		t.Fatal("expected drag to start")
	}
	f.frame(nil, input.Mouse{X: 160, Y: 80, Middle: true})
	if f.cam.X != -30 || f.cam.Y != 10 {
		t.Errorf("camera at (%v, %v), want (-30, 10)", f.cam.X, f.cam.Y)
	}

	f.frame(nil, input.Mouse{X: 160, Y: 80})
	if f.ed.Dragging() {
		t.Error("expected drag to end on release")
	}
}

func TestWheelZoomsOncePerNotch(t *testing.T) {
	f := newFixture(t, Options{ZoomStep: 0.1})

	f.frame(nil, input.Mouse{Wheel: input.WheelUp})
	if !near(f.cam.TargetZoom, 1.1) {
		t.Fatalf("TargetZoom = %v, want 1.1", f.cam.TargetZoom)
	}

	// Latched direction without new movement does not zoom again
	f.frame(nil, input.Mouse{})
	if !near(f.cam.TargetZoom, 1.1) {
		t.Errorf("TargetZoom = %v after idle frame, want 1.1", f.cam.TargetZoom)
	}

	for range 20 {
		f.frame(nil, input.Mouse{})
	}
	f.frame(nil, input.Mouse{Wheel: input.WheelDown})
	if !near(f.cam.TargetZoom, 0.9) {
		t.Errorf("TargetZoom = %v after wheel down, want 0.9", f.cam.TargetZoom)
	}
}

func TestGridToggle(t *testing.T) {
	f := newFixture(t, Options{ShowGrid: true, ShowWorldGrid: true})

	f.frame([]input.Key{input.KeyG}, input.Mouse{})
	if f.ed.ShowGrid || f.ed.ShowWorldGrid {
		t.Error("expected grids hidden after G")
	}
	// Holding G does not toggle again
	f.frame([]input.Key{input.KeyG}, input.Mouse{})
	if f.ed.ShowGrid {
		t.Error("grid toggled while key held")
	}
}

func TestSaveAndLoadShortcuts(t *testing.T) {
	f := newFixture(t, Options{})
	f.engine.SetCell(tiles.Coord{Row: 2, Col: 3}, "water")

	ctrl := input.KeyLeftControl
	f.frame([]input.Key{ctrl}, input.Mouse{})
	f.frame([]input.Key{ctrl, input.KeyS}, input.Mouse{})
	f.frame(nil, input.Mouse{})

	data, err := os.ReadFile(f.ed.opts.MapPath)
	if err != nil {
		t.Fatalf("map not saved: %v", err)
	}
	if !strings.Contains(string(data), "water,2,3") {
		t.Errorf("saved map = %q", data)
	}
	if !strings.HasPrefix(f.ed.Status(), "save ok") {
		t.Errorf("Status() = %q", f.ed.Status())
	}

	f.engine.Clear()
	f.frame([]input.Key{ctrl}, input.Mouse{})
	f.frame([]input.Key{ctrl, input.KeyL}, input.Mouse{})
	if !f.engine.Has(tiles.Coord{Row: 2, Col: 3}, "water") {
		t.Error("expected map reloaded")
	}
}

func TestLoadMissingFileReportsError(t *testing.T) {
	f := newFixture(t, Options{MapPath: filepath.Join(t.TempDir(), "missing.csv")})
	f.ed.Queue(CmdLoad)
	f.ed.Update()

	if !strings.HasPrefix(f.ed.Status(), "load failed") {
		t.Errorf("Status() = %q", f.ed.Status())
	}
}

func TestCopy(t *testing.T) {
	var got string
	f := newFixture(t, Options{Clipboard: func(s string) error { got = s; return nil }})
	f.engine.SetCell(tiles.Coord{Row: 0, Col: 1}, "grass")

	f.frame([]input.Key{input.KeyRightControl}, input.Mouse{})
	f.frame([]input.Key{input.KeyRightControl, input.KeyC}, input.Mouse{})

	if got != "type,row,col\ngrass,0,1\n" {
		t.Errorf("clipboard = %q", got)
	}
}

func TestCopyWithoutClipboard(t *testing.T) {
	f := newFixture(t, Options{})
	if err := f.ed.Copy(); !errors.Is(err, ErrNoClipboard) {
		t.Errorf("Copy() = %v, want ErrNoClipboard", err)
	}
}

func TestDraw(t *testing.T) {
	f := newFixture(t, Options{ShowGrid: true, ShowWorldGrid: false})
	var rec draw.Recorder

	f.ed.Draw(&rec)
	if rec.Count(draw.OpLine) == 0 {
		t.Error("expected grid lines")
	}
	if rec.Count(draw.OpBox) != 2 {
		t.Errorf("box calls = %d, want 2 for the highlight", rec.Count(draw.OpBox))
	}

	rec.Reset()
	f.ed.ShowGrid = false
	f.ed.Draw(&rec)
	if rec.Count(draw.OpLine) != 0 {
		t.Error("expected no grid lines when hidden")
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func TestQueuedSettingsApplyOnUpdate(t *testing.T) {
	f := newFixture(t, Options{ShowGrid: true, ShowWorldGrid: true})

	f.ed.QueueSettings(Settings{Brush: "water", ShowGrid: false, ShowWorldGrid: true, Zoom: 2})
	if f.ed.Brush != "grass" || !f.ed.ShowGrid || f.cam.TargetZoom != 1 {
		t.Fatalf("settings applied before Update: brush %q, grid %v, zoom %v",
			f.ed.Brush, f.ed.ShowGrid, f.cam.TargetZoom)
	}

	f.ed.Update()
	if f.ed.Brush != "water" {
		t.Errorf("Brush = %q, want water", f.ed.Brush)
	}
	if f.ed.ShowGrid || !f.ed.ShowWorldGrid {
		t.Errorf("grids = %v/%v, want false/true", f.ed.ShowGrid, f.ed.ShowWorldGrid)
	}
	if f.cam.TargetZoom != 2 {
		t.Errorf("TargetZoom = %v, want 2", f.cam.TargetZoom)
	}

	// Applied once; later changes stick
	f.ed.Brush = "stone"
	f.ed.Update()
	if f.ed.Brush != "stone" {
		t.Errorf("Brush = %q after second Update, want stone", f.ed.Brush)
	}
}
