package camera

// shakeState tracks a shake episode. Duration and elapsed are counted in
// Update calls, not seconds, so the episode length depends on frame rate.
type shakeState struct {
	intensity float32
	duration  int
	elapsed   int
	offsetX   float32
	offsetY   float32
}

func (s *shakeState) active() bool {
	return s.duration > 0 && s.elapsed < s.duration
}

// Shake starts a shake episode lasting duration ticks. Shake(0, 0) cancels
// any episode in progress.
func (c *Camera) Shake(intensity float32, duration int) {
	c.shake = shakeState{intensity: intensity, duration: duration}
}

// Shaking reports whether a shake episode is in progress.
func (c *Camera) Shaking() bool {
	return c.shake.active()
}

// ShakeOffset returns the current shake displacement.
func (c *Camera) ShakeOffset() Point {
	return Point{X: c.shake.offsetX, Y: c.shake.offsetY}
}

// updateShake advances the shake episode by one tick. The amplitude decays
// linearly; offsets are exactly zero once the episode ends.
func (c *Camera) updateShake() {
	s := &c.shake
	if !s.active() {
		s.offsetX, s.offsetY = 0, 0
		return
	}

	progress := float32(s.elapsed) / float32(s.duration)
	current := s.intensity * (1 - progress)
	s.offsetX = (c.rng.Float32() - 0.5) * current
	s.offsetY = (c.rng.Float32() - 0.5) * current

	s.elapsed++
	if s.elapsed >= s.duration {
		s.offsetX, s.offsetY = 0, 0
	}
}
