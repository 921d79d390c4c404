// Command genmap generates a starter map headlessly and writes it as CSV.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/tileworld/config"
	"github.com/pthm-cable/tileworld/level"
	"github.com/pthm-cable/tileworld/tiles"
	"github.com/pthm-cable/tileworld/worldgen"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "Noise seed (0 = use config)")
	width := flag.Int("width", 0, "Map width in cells (0 = use config)")
	height := flag.Int("height", 0, "Map height in cells (0 = use config)")
	out := flag.String("out", "", "Output CSV path (empty = stdout)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	gc := cfg.WorldGen
	if *seed != 0 {
		gc.Seed = *seed
	}
	if *width > 0 {
		gc.Width = *width
	}
	if *height > 0 {
		gc.Height = *height
	}

	size := cfg.Derived.TileSize32
	engine := tiles.NewEngine(size)
	spawn := tiles.CellAt(float32(cfg.Player.X), float32(cfg.Player.Y), size)
	worldgen.New(gc).GenerateAround(engine, spawn)

	if *out == "" {
		err = level.Write(os.Stdout, engine)
	} else {
		err = level.Save(*out, engine)
	}
	if err != nil {
		slog.Error("failed to write map", "error", err)
		os.Exit(1)
	}
}
