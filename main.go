package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tileworld/config"
	"github.com/pthm-cable/tileworld/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	editorMode := flag.Bool("editor", false, "Start the level editor (overrides editor.enabled)")
	mapPath := flag.String("map", "", "Map CSV to load and save (empty = use config)")
	catalogPath := flag.String("catalog", "", "Tile catalog YAML (empty = use config)")
	seed := flag.Int64("seed", 0, "World generation seed (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for perf CSV and config snapshot")
	debug := flag.Bool("debug", false, "Log at debug level")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Editor:      *editorMode || cfg.Editor.Enabled,
		MapPath:     *mapPath,
		CatalogPath: *catalogPath,
		Seed:        *seed,
		OutputDir:   *outputDir,
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	slog.Info("session ended", "frames", g.Frame(), "tiles", g.Engine().Len())
}
