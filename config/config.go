// Package config provides configuration loading and access for the runtime and editor.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all runtime configuration parameters.
type Config struct {
	Screen     ScreenConfig               `yaml:"screen"`
	Tiles      TilesConfig                `yaml:"tiles"`
	Camera     CameraConfig               `yaml:"camera"`
	Characters map[string]CharacterConfig `yaml:"characters"`
	Player     PlayerConfig               `yaml:"player"`
	Controls   map[string][]string        `yaml:"controls"`
	Editor     EditorConfig               `yaml:"editor"`
	Assets     AssetsConfig               `yaml:"assets"`
	WorldGen   WorldGenConfig             `yaml:"worldgen"`
	Telemetry  TelemetryConfig            `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// TilesConfig holds tile grid parameters.
type TilesConfig struct {
	Size           float64 `yaml:"size"`             // Tile edge length in world units
	ShowGrid       bool    `yaml:"show_grid"`        // Display-tile grid (offset by half a tile)
	GridColor      string  `yaml:"grid_color"`       // Hex colour of the display-tile grid
	ShowWorldGrid  bool    `yaml:"show_world_grid"`  // World-cell grid
	WorldGridColor string  `yaml:"world_grid_color"` // Hex colour of the world-cell grid
	DefaultType    string  `yaml:"default_type"`     // Type selected when the editor starts
}

// CameraConfig holds camera smoothing, zoom and shake parameters.
// Smoothing factors are per update tick, not per second.
type CameraConfig struct {
	Smoothing      float64 `yaml:"smoothing"`       // Position lerp factor (0 = frozen, 1 = snap)
	ZoomSmoothing  float64 `yaml:"zoom_smoothing"`  // Zoom lerp factor
	MinZoom        float64 `yaml:"min_zoom"`        // Lower clamp for target zoom
	ZoomStep       float64 `yaml:"zoom_step"`       // Zoom change per wheel notch
	ShakeIntensity float64 `yaml:"shake_intensity"` // Default shake amplitude in world units
	ShakeDuration  int     `yaml:"shake_duration"`  // Default shake length in ticks
}

// CharacterConfig describes a playable or scripted character archetype.
type CharacterConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // World units per second
	Color  string  `yaml:"color"`
}

// PlayerConfig selects the player character and spawn point.
type PlayerConfig struct {
	Character string  `yaml:"character"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
}

// EditorConfig holds level editor settings.
type EditorConfig struct {
	Enabled         bool    `yaml:"enabled"`
	HighlightFill   string  `yaml:"highlight_fill"`
	HighlightBorder string  `yaml:"highlight_border"`
	WheelHold       float64 `yaml:"wheel_hold"` // Seconds a wheel direction stays latched
	MapPath         string  `yaml:"map_path"`
}

// AssetsConfig holds asset loading settings.
type AssetsConfig struct {
	CatalogPath string `yaml:"catalog_path"`
	Workers     int    `yaml:"workers"`
}

// WorldGenConfig holds procedural starter map parameters.
type WorldGenConfig struct {
	Seed        int64          `yaml:"seed"`
	Width       int            `yaml:"width"`  // Cells
	Height      int            `yaml:"height"` // Cells
	Scale       float64        `yaml:"scale"`  // Noise frequency per cell
	Octaves     int            `yaml:"octaves"`
	SpawnType   string         `yaml:"spawn_type"`   // Type forced around the player spawn
	SpawnRadius int            `yaml:"spawn_radius"` // Cells
	Bands       []WorldGenBand `yaml:"bands"`
}

// WorldGenBand maps a noise interval to a tile type. Bands are checked in order
// and the first band with sample <= Max wins. An empty type leaves the cell empty.
type WorldGenBand struct {
	Type string  `yaml:"type"`
	Max  float64 `yaml:"max"`
}

// TelemetryConfig holds frame timing parameters.
type TelemetryConfig struct {
	PerfWindow int    `yaml:"perf_window"`
	OutputDir  string `yaml:"output_dir"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TileSize32      float32    // Tiles.Size as float32
	ScreenW32       float32    // Screen.Width as float32
	ScreenH32       float32    // Screen.Height as float32
	GridColor       color.RGBA // Parsed Tiles.GridColor
	WorldGridColor  color.RGBA // Parsed Tiles.WorldGridColor
	HighlightFill   color.RGBA
	HighlightBorder color.RGBA
	CharacterColors map[string]color.RGBA
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	if c.Tiles.Size <= 0 {
		return fmt.Errorf("tiles.size must be positive, got %v", c.Tiles.Size)
	}
	c.Derived.TileSize32 = float32(c.Tiles.Size)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Camera.MinZoom <= 0 {
		c.Camera.MinZoom = 0.1
	}
	if c.Assets.Workers < 1 {
		c.Assets.Workers = 1
	}

	var err error
	colors := []struct {
		name string
		src  string
		dst  *color.RGBA
	}{
		{"tiles.grid_color", c.Tiles.GridColor, &c.Derived.GridColor},
		{"tiles.world_grid_color", c.Tiles.WorldGridColor, &c.Derived.WorldGridColor},
		{"editor.highlight_fill", c.Editor.HighlightFill, &c.Derived.HighlightFill},
		{"editor.highlight_border", c.Editor.HighlightBorder, &c.Derived.HighlightBorder},
	}
	for _, col := range colors {
		if *col.dst, err = ParseHexColor(col.src); err != nil {
			return fmt.Errorf("%s: %w", col.name, err)
		}
	}

	c.Derived.CharacterColors = make(map[string]color.RGBA, len(c.Characters))
	for name, ch := range c.Characters {
		rgba, err := ParseHexColor(ch.Color)
		if err != nil {
			return fmt.Errorf("characters.%s.color: %w", name, err)
		}
		c.Derived.CharacterColors[name] = rgba
	}

	if _, ok := c.Characters[c.Player.Character]; !ok {
		return fmt.Errorf("player.character %q is not defined in characters", c.Player.Character)
	}
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into a colour.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
