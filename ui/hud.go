package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tileworld/telemetry"
)

// HUDData holds everything the heads-up display shows.
type HUDData struct {
	Title        string
	Editor       bool
	FPS          int32
	Tiles        int
	TilesDrawn   int
	Entities     int
	Selected     string
	CursorRow    int
	CursorCol    int
	Zoom         float32
	Status       string
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD in the top-right corner.
func (h *HUD) Draw(data HUDData) {
	x := data.ScreenWidth - 260
	rl.DrawText(data.Title, x, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tiles: %d (%d drawn) | Entities: %d", data.Tiles, data.TilesDrawn, data.Entities),
		x, 35, 14, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("FPS: %d | Zoom: %.2f", data.FPS, data.Zoom), x, 52, 14, rl.LightGray)

	if data.Editor {
		rl.DrawText(
			fmt.Sprintf("Brush: %s | Cell: %d,%d", data.Selected, data.CursorRow, data.CursorCol),
			x, 69, 14, rl.Yellow,
		)
	}
	if data.Status != "" {
		w := rl.MeasureText(data.Status, 16)
		rl.DrawText(data.Status, (data.ScreenWidth-w)/2, data.ScreenHeight-50, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timing.
type PerfPanel struct {
	x, y  int32
	width int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	height := style.Pad*2 + style.Line*int32(4+len(telemetry.Phases))
	drawPanel(p.x, p.y, p.width, height)

	x := p.x + style.Pad
	y := drawHeader(x, p.y+style.Pad, "Frame")
	y = drawField(x, y, "avg", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = drawField(x, y, "p95", stats.P95TickDuration.Round(time.Microsecond).String())
	y = drawField(x, y, "max", stats.MaxTickDuration.Round(time.Microsecond).String())
	for _, phase := range telemetry.Phases {
		y = drawFraction(x, y, phase, float32(stats.PhasePct[phase]/100), p.width-style.Pad*2)
	}
}
