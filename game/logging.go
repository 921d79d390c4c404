package game

import (
	"log/slog"
)

// flushPerf logs frame timing and appends a perf.csv row once per window.
func (s *Session) flushPerf() {
	window := int64(max(s.cfg.Telemetry.PerfWindow, 1))
	if s.frame%window != 0 {
		return
	}

	stats := s.perf.Stats()
	stats.LogStats()
	if err := s.output.WritePerf(stats.ToCSV(s.frame, s.tilesDrawn, s.drawnEnts)); err != nil {
		slog.Error("writing perf", "error", err)
	}
	s.logWorldState()
}

// logWorldState logs what the session currently holds.
func (s *Session) logWorldState() {
	attrs := []any{
		"frame", s.frame,
		"tiles", s.engine.Len(),
		"tiles_drawn", s.tilesDrawn,
		"entities", s.world.Len(),
		"entities_drawn", s.drawnEnts,
		"sprites", s.textures.Len(),
		"sprites_pending", s.loader.Pending(),
		"zoom", s.cam.Zoom,
	}
	if p, ok := s.world.Player(); ok {
		attrs = append(attrs, "player_x", p.X, "player_y", p.Y)
	}
	slog.Debug("world", attrs...)
}
