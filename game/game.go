// Package game owns a running session: it wires the tile engine, entities,
// camera, editor and asset pipeline to the raylib window and drives one
// Update/Draw pair per frame.
package game

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tileworld/assets"
	"github.com/pthm-cable/tileworld/camera"
	"github.com/pthm-cable/tileworld/config"
	"github.com/pthm-cable/tileworld/editor"
	"github.com/pthm-cable/tileworld/entities"
	"github.com/pthm-cable/tileworld/input"
	"github.com/pthm-cable/tileworld/level"
	"github.com/pthm-cable/tileworld/renderer"
	"github.com/pthm-cable/tileworld/telemetry"
	"github.com/pthm-cable/tileworld/tiles"
	"github.com/pthm-cable/tileworld/ui"
	"github.com/pthm-cable/tileworld/worldgen"
)

// Options configures a session beyond the loaded config.
type Options struct {
	Editor      bool
	MapPath     string // Map CSV loaded at start and used by save/load
	CatalogPath string
	Seed        int64 // Overrides worldgen.seed when non-zero
	OutputDir   string
}

// Session is one running game or editor instance.
type Session struct {
	cfg  *config.Config
	opts Options

	engine   *tiles.Engine
	world    *entities.World
	cam      *camera.Camera
	input    *input.State
	controls input.Controls
	editor   *editor.Editor
	gen      *worldgen.Generator

	catalog  *assets.Catalog
	loader   *assets.Loader
	textures *renderer.Textures
	drawer   renderer.Raylib

	palette      *ui.Palette
	paletteState ui.PaletteState
	hud          *ui.HUD
	perfPanel    *ui.PerfPanel

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	keys []input.Key

	screenWidth  float32
	screenHeight float32
	frame        int64
	tilesDrawn   int
	drawnEnts    int
	showPerf     bool
	debug        bool
	regenerate   bool
}

// New builds a session. Must be called after the raylib window is open.
func New(cfg *config.Config, opts Options) (*Session, error) {
	controls, err := input.ParseControls(cfg.Controls)
	if err != nil {
		return nil, fmt.Errorf("parsing controls: %w", err)
	}

	genCfg := cfg.WorldGen
	if opts.Seed != 0 {
		genCfg.Seed = opts.Seed
	}
	if opts.MapPath == "" {
		opts.MapPath = cfg.Editor.MapPath
	}
	if opts.CatalogPath == "" {
		opts.CatalogPath = cfg.Assets.CatalogPath
	}

	s := &Session{
		cfg:          cfg,
		opts:         opts,
		engine:       tiles.NewEngine(cfg.Derived.TileSize32),
		world:        entities.NewWorld(cfg, controls),
		cam:          camera.New(0, 0, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),
		input:        input.NewState(time.Duration(cfg.Editor.WheelHold * float64(time.Second))),
		controls:     controls,
		gen:          worldgen.New(genCfg),
		textures:     renderer.NewTextures(),
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(10, 10, 220),
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}
	s.cam.Smoothing = float32(cfg.Camera.Smoothing)
	s.cam.ZoomSmoothing = float32(cfg.Camera.ZoomSmoothing)

	if err := s.loadMap(); err != nil {
		return nil, err
	}
	if err := s.spawnCharacters(); err != nil {
		return nil, err
	}
	s.startAssets()

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Telemetry.OutputDir
	}
	if s.output, err = telemetry.NewOutputManager(outputDir); err != nil {
		return nil, err
	}
	if err := s.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	if opts.Editor {
		s.setupEditor()
	}
	s.input.OnChange(s.onEvent)

	slog.Info("session started",
		"editor", opts.Editor,
		"map", opts.MapPath,
		"tiles", s.engine.Len(),
		"entities", s.world.Len(),
	)
	return s, nil
}

// loadMap reads the map CSV if it exists, otherwise generates a starter map
// around the player spawn.
func (s *Session) loadMap() error {
	err := level.Load(s.opts.MapPath, s.engine)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading map: %w", err)
	}
	s.generate()
	return nil
}

func (s *Session) generate() {
	size := s.cfg.Derived.TileSize32
	spawn := tiles.CellAt(float32(s.cfg.Player.X), float32(s.cfg.Player.Y), size)
	s.engine.Clear()
	s.gen.GenerateAround(s.engine, spawn)
}

// spawnCharacters places the player and sends every other configured character
// on a patrol beside the spawn.
func (s *Session) spawnCharacters() error {
	px, py := float32(s.cfg.Player.X), float32(s.cfg.Player.Y)
	if _, err := s.world.SpawnCharacter(s.cfg.Player.Character, px, py, entities.ControlInput); err != nil {
		return err
	}

	names := make([]string, 0, len(s.cfg.Characters))
	for name := range s.cfg.Characters {
		if name != s.cfg.Player.Character {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	size := s.cfg.Derived.TileSize32
	for i, name := range names {
		x := px + float32(i+1)*size
		y := py + float32(i%2+1)*size
		if _, err := s.world.SpawnPatrol(name, x, y, 0, 1, 2*size); err != nil {
			return err
		}
	}
	return nil
}

// startAssets loads the catalog and queues every sprite for decoding. A missing
// catalog leaves all sprites missing.
func (s *Session) startAssets() {
	cat, err := assets.LoadCatalog(s.opts.CatalogPath)
	if err != nil {
		slog.Warn("tile catalog unavailable", "path", s.opts.CatalogPath, "error", err)
		cat = assets.NewCatalog(".")
	}
	s.catalog = cat
	s.loader = assets.NewLoader(cat, s.cfg.Assets.Workers)
	s.loader.Start()
	s.loader.RequestCatalog(cat)
}

func (s *Session) setupEditor() {
	s.palette = ui.NewPalette(10, 10, 160)
	s.palette.SetTypes(s.brushTypes())

	s.editor = editor.New(s.engine, s.cam, s.input, editor.Options{
		Brush:           s.cfg.Tiles.DefaultType,
		ZoomStep:        float32(s.cfg.Camera.ZoomStep),
		MapPath:         s.opts.MapPath,
		ShowGrid:        s.cfg.Tiles.ShowGrid,
		ShowWorldGrid:   s.cfg.Tiles.ShowWorldGrid,
		GridColor:       s.cfg.Derived.GridColor,
		WorldGridColor:  s.cfg.Derived.WorldGridColor,
		HighlightFill:   s.cfg.Derived.HighlightFill,
		HighlightBorder: s.cfg.Derived.HighlightBorder,
		Clipboard:       clipboard.WriteAll,
		Blocked:         s.palette.Contains,
	})

	p := s.cfg.Player
	s.cam.MoveTo(float32(p.X)-s.screenWidth/2, float32(p.Y)-s.screenHeight/2, false)
}

// brushTypes lists the catalog types plus any type worldgen can produce.
func (s *Session) brushTypes() []string {
	types := s.catalog.Types()
	for _, b := range s.cfg.WorldGen.Bands {
		if b.Type != "" && !slices.Contains(types, b.Type) {
			types = append(types, b.Type)
		}
	}
	slices.Sort(types)
	return types
}

// onEvent handles session-wide shortcuts.
func (s *Session) onEvent(ev input.Event) {
	if ev != input.EventKeyDown {
		return
	}
	held := s.input.Held()
	switch held[len(held)-1] {
	case input.KeyF1:
		s.showPerf = !s.showPerf
	case input.KeyTab:
		s.debug = !s.debug
	case input.KeyQ:
		if s.editor == nil {
			s.cam.Shake(float32(s.cfg.Camera.ShakeIntensity), s.cfg.Camera.ShakeDuration)
		}
	}
}

// Update advances the session by one frame.
func (s *Session) Update() {
	s.perf.StartTick()
	s.perf.StartPhase(telemetry.PhaseUpdate)

	s.handleResize()
	s.input.Apply(s.pollInput(), time.Now())

	if s.regenerate {
		s.regenerate = false
		s.generate()
	}
	if s.editor != nil {
		s.editor.HandleInput()
		s.editor.Update()
	}

	s.world.Update(rl.GetFrameTime(), s.input.Held())
	if s.editor == nil {
		if p, ok := s.world.Player(); ok {
			s.cam.Track(camera.Point{X: p.X, Y: p.Y})
		} else {
			s.cam.Unfollow()
		}
	}
	s.cam.Update()

	s.textures.Upload(s.loader.Poll())
}

// Draw renders the frame: tiles, entities and editor overlays in world space,
// then the UI in screen space.
func (s *Session) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 24, A: 255})

	pos := s.cam.FinalPosition()
	rl.BeginMode2D(rl.Camera2D{
		Target: rl.Vector2{X: pos.X, Y: pos.Y},
		Zoom:   s.cam.Zoom,
	})

	s.perf.StartPhase(telemetry.PhaseTiles)
	s.tilesDrawn = s.engine.Render(s.drawer, s.cam, s.textures)

	s.perf.StartPhase(telemetry.PhaseEntities)
	s.drawnEnts = s.world.Draw(s.drawer, s.cam, s.debug)

	s.perf.StartPhase(telemetry.PhaseDraw)
	if s.editor != nil {
		s.editor.Draw(s.drawer)
	}
	rl.EndMode2D()

	s.drawUI()
	rl.EndDrawing()

	s.perf.EndTick()
	s.perf.RecordFrame()
	s.frame++
	s.flushPerf()
}

func (s *Session) drawUI() {
	if s.palette != nil {
		s.paletteState.Selected = s.editor.Brush
		s.paletteState.ShowGrid = s.editor.ShowGrid
		s.paletteState.ShowWorldGrid = s.editor.ShowWorldGrid
		s.paletteState.Zoom = s.cam.TargetZoom
		s.paletteState.MinZoom = float32(s.cfg.Camera.MinZoom)
		s.paletteState.MaxZoom = 4

		before := s.paletteState
		action := s.palette.Draw(&s.paletteState)

		// Only panel changes are queued so keyboard and wheel changes made
		// before the next Update are not overwritten.
		if s.paletteState != before {
			s.editor.QueueSettings(editor.Settings{
				Brush:         s.paletteState.Selected,
				ShowGrid:      s.paletteState.ShowGrid,
				ShowWorldGrid: s.paletteState.ShowWorldGrid,
				Zoom:          s.paletteState.Zoom,
			})
		}
		s.handlePaletteAction(action)
	}

	data := ui.HUDData{
		Title:        s.cfg.Screen.Title,
		Editor:       s.editor != nil,
		FPS:          rl.GetFPS(),
		Tiles:        s.engine.Len(),
		TilesDrawn:   s.tilesDrawn,
		Entities:     s.world.Len(),
		Zoom:         s.cam.Zoom,
		ScreenWidth:  int32(s.screenWidth),
		ScreenHeight: int32(s.screenHeight),
	}
	if s.editor != nil {
		cell := s.editor.Highlight()
		data.Selected = s.editor.Brush
		data.CursorRow, data.CursorCol = cell.Row, cell.Col
		data.Status = s.editor.Status()
	}
	s.hud.Draw(data)
	s.hud.DrawControls(int32(s.screenHeight), s.controlsLegend())

	if s.showPerf {
		s.perfPanel.SetPosition(int32(s.screenWidth)-230, 100)
		s.perfPanel.Draw(s.perf.Stats())
	}
}

func (s *Session) handlePaletteAction(action ui.PaletteAction) {
	switch action {
	case ui.ActionSave:
		s.editor.Queue(editor.CmdSave)
	case ui.ActionLoad:
		s.editor.Queue(editor.CmdLoad)
	case ui.ActionCopy:
		s.editor.Queue(editor.CmdCopy)
	case ui.ActionGenerate:
		s.regenerate = true
	}
}

func (s *Session) controlsLegend() string {
	if s.editor != nil {
		return "LMB place | RMB erase | MMB drag pan | Wheel zoom | G grid | Ctrl+S/L save/load | Ctrl+C copy | F1 perf"
	}
	return "WASD move | Shift sprint | Q shake | Tab debug | F1 perf"
}

// Unload stops background work and frees GPU resources.
func (s *Session) Unload() {
	s.loader.Stop()
	s.textures.Unload()
	if err := s.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}

// Engine returns the session's tile engine.
func (s *Session) Engine() *tiles.Engine {
	return s.engine
}

// Frame returns the number of frames drawn.
func (s *Session) Frame() int64 {
	return s.frame
}
