// Package worldgen fills the tile grid with a procedural starter map.
package worldgen

import (
	"log/slog"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/tileworld/config"
	"github.com/pthm-cable/tileworld/tiles"
)

// Generator samples layered simplex noise and maps it to tile types by band.
type Generator struct {
	cfg   config.WorldGenConfig
	noise opensimplex.Noise
}

// New creates a generator from config.
func New(cfg config.WorldGenConfig) *Generator {
	if cfg.Octaves < 1 {
		cfg.Octaves = 1
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 0.1
	}
	return &Generator{cfg: cfg, noise: opensimplex.NewNormalized(cfg.Seed)}
}

// Sample returns the layered noise value at a cell, in [-1, 1].
func (g *Generator) Sample(c tiles.Coord) float64 {
	freq := g.cfg.Scale
	amp := 1.0
	var sum, norm float64
	for i := 0; i < g.cfg.Octaves; i++ {
		sum += (g.noise.Eval2(float64(c.Col)*freq, float64(c.Row)*freq)*2 - 1) * amp
		norm += amp
		freq *= 2
		amp *= 0.5
	}
	return min(max(sum/norm, -1), 1)
}

// TypeAt returns the tile type for a cell, or "" for an empty cell.
func (g *Generator) TypeAt(c tiles.Coord) string {
	v := g.Sample(c)
	for _, band := range g.cfg.Bands {
		if v <= band.Max {
			return band.Type
		}
	}
	return ""
}

// Generate fills a Width x Height block of cells starting at origin and forces
// the spawn type within SpawnRadius cells of spawn. It returns the number of
// tiles placed.
func (g *Generator) Generate(e *tiles.Engine, origin, spawn tiles.Coord) int {
	placed := 0
	for row := origin.Row; row < origin.Row+g.cfg.Height; row++ {
		for col := origin.Col; col < origin.Col+g.cfg.Width; col++ {
			c := tiles.Coord{Row: row, Col: col}
			typ := g.TypeAt(c)
			if g.inSpawn(c, spawn) {
				typ = g.cfg.SpawnType
			}
			if typ == "" {
				continue
			}
			e.SetCell(c, typ)
			placed++
		}
	}
	slog.Info("world generated", "seed", g.cfg.Seed, "width", g.cfg.Width, "height", g.cfg.Height, "tiles", placed)
	return placed
}

// GenerateAround fills the configured block centred on spawn.
func (g *Generator) GenerateAround(e *tiles.Engine, spawn tiles.Coord) int {
	origin := tiles.Coord{Row: spawn.Row - g.cfg.Height/2, Col: spawn.Col - g.cfg.Width/2}
	return g.Generate(e, origin, spawn)
}

func (g *Generator) inSpawn(c, spawn tiles.Coord) bool {
	if g.cfg.SpawnType == "" || g.cfg.SpawnRadius < 0 {
		return false
	}
	r := g.cfg.SpawnRadius
	return abs(c.Row-spawn.Row) <= r && abs(c.Col-spawn.Col) <= r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
