// Package camera provides a 2D camera system for viewport control.
package camera

import (
	"math"
	"math/rand"
	"time"
)

// DefaultSmoothing is the position lerp factor applied per update tick.
const DefaultSmoothing = 0.02

// DefaultZoomSmoothing is the zoom lerp factor applied per update tick.
const DefaultZoomSmoothing = 0.1

// MinZoom is the lowest target zoom accepted by SetZoom.
const MinZoom = 0.1

// Point is a position in world or screen space.
type Point struct {
	X, Y float32
}

// Bounds is the rectangle the viewport is kept inside.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float32
}

// Unbounded returns bounds that never clamp.
func Unbounded() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{MinX: -inf, MinY: -inf, MaxX: inf, MaxY: inf}
}

// Camera controls the viewport into the world.
// X, Y is the top-left corner of the viewport in world coordinates.
type Camera struct {
	X, Y float32

	// Viewport dimensions (screen pixels)
	Width, Height float32

	// Smoothing is the position lerp factor per tick.
	Smoothing float32

	// Zoom is the current world-to-screen scale; TargetZoom is where it is heading.
	Zoom          float32
	TargetZoom    float32
	ZoomSmoothing float32

	bounds Bounds
	target *Point
	shake  shakeState
	rng    *rand.Rand
}

// New creates a camera at (x, y) with 1:1 zoom and no bounds.
func New(x, y, width, height float32) *Camera {
	return &Camera{
		X:             x,
		Y:             y,
		Width:         width,
		Height:        height,
		Smoothing:     DefaultSmoothing,
		Zoom:          1,
		TargetZoom:    1,
		ZoomSmoothing: DefaultZoomSmoothing,
		bounds:        Unbounded(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the random source used for shake offsets.
func (c *Camera) SetRand(rng *rand.Rand) {
	c.rng = rng
}

// SetSize updates the viewport dimensions.
func (c *Camera) SetSize(width, height float32) {
	c.Width = width
	c.Height = height
}

// Follow centres the camera on target, easing toward it by the smoothing factor.
// A positive smoothing argument replaces the camera's factor (capped at 1).
// The target is remembered and followed again on every Update.
func (c *Camera) Follow(target Point, smoothing float32) {
	c.target = &target
	if smoothing > 0 {
		c.Smoothing = min(smoothing, 1)
	}

	goalX := target.X - c.Width/2
	goalY := target.Y - c.Height/2
	c.X = lerp(c.X, goalX, c.Smoothing)
	c.Y = lerp(c.Y, goalY, c.Smoothing)

	c.ApplyBounds()
}

// Track replaces the follow target without stepping toward it. Update does the
// step.
func (c *Camera) Track(target Point) {
	c.target = &target
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.target = nil
}

// MoveTo positions the camera directly, or eases toward (x, y) when smooth is set.
func (c *Camera) MoveTo(x, y float32, smooth bool) {
	if smooth {
		c.X = lerp(c.X, x, c.Smoothing)
		c.Y = lerp(c.Y, y, c.Smoothing)
	} else {
		c.X = x
		c.Y = y
	}
	c.ApplyBounds()
}

// SetZoom sets the zoom target (clamped to MinZoom) and optionally the zoom
// smoothing factor. Zero arguments leave the corresponding value unchanged.
func (c *Camera) SetZoom(zoom, smoothing float32) {
	if smoothing > 0 {
		c.ZoomSmoothing = min(smoothing, 1)
	}
	if zoom != 0 {
		c.TargetZoom = max(MinZoom, zoom)
	}
}

// updateZoom eases the current zoom toward the target zoom.
func (c *Camera) updateZoom() {
	c.Zoom += (c.TargetZoom - c.Zoom) * c.ZoomSmoothing
}

// Update advances the camera by one tick: follow, zoom and shake.
func (c *Camera) Update() {
	if c.target != nil {
		c.Follow(*c.target, 0)
	}
	c.updateZoom()
	c.updateShake()
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return (wx - c.X) * c.Zoom, (wy - c.Y) * c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return sx/c.Zoom + c.X, sy/c.Zoom + c.Y
}

// ViewSize returns the viewport size in world units.
func (c *Camera) ViewSize() (w, h float32) {
	return c.Width / c.Zoom, c.Height / c.Zoom
}

// IsVisible reports whether a box centred on (x, y) overlaps the viewport.
// Boxes that only touch the viewport edge are not visible.
func (c *Camera) IsVisible(x, y, width, height float32) bool {
	left := x - width/2
	right := x + width/2
	top := y - height/2
	bottom := y + height/2

	viewW, viewH := c.ViewSize()
	camLeft := c.X
	camRight := c.X + viewW
	camTop := c.Y
	camBottom := c.Y + viewH

	return !(right <= camLeft || // completely left
		left >= camRight || // completely right
		bottom <= camTop || // completely above
		top >= camBottom) // completely below
}

// Bounds returns the current clamp rectangle.
func (c *Camera) Bounds() Bounds {
	return c.bounds
}

// SetBounds sets the clamp rectangle. It does not move the camera until the
// next ApplyBounds.
func (c *Camera) SetBounds(minX, minY, maxX, maxY float32) {
	c.bounds = Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// ApplyBounds clamps the position so the viewport stays inside the bounds.
// On an axis where the bounds are narrower than the viewport, the viewport is
// centred on the bounds instead.
func (c *Camera) ApplyBounds() {
	c.X = clampAxis(c.X, c.bounds.MinX, c.bounds.MaxX, c.Width)
	c.Y = clampAxis(c.Y, c.bounds.MinY, c.bounds.MaxY, c.Height)
}

func clampAxis(pos, lo, hi, extent float32) float32 {
	upper := hi - extent
	if upper < lo {
		return (lo+hi)/2 - extent/2
	}
	return clamp(pos, lo, upper)
}

// FinalPosition returns the position including shake offset. Renderers must
// use this rather than X, Y.
func (c *Camera) FinalPosition() Point {
	return Point{X: c.X + c.shake.offsetX, Y: c.Y + c.shake.offsetY}
}

func lerp(start, end, factor float32) float32 {
	return start + (end-start)*factor
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
