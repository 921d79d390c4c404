package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tileworld/assets"
	"github.com/pthm-cable/tileworld/draw"
	"github.com/pthm-cable/tileworld/tiles"
)

// Texture is a GPU texture usable as a draw.Image.
type Texture struct {
	tex rl.Texture2D
}

// Size returns the texture size in pixels.
func (t *Texture) Size() (w, h float32) {
	return float32(t.tex.Width), float32(t.tex.Height)
}

type spriteKey struct {
	typ     string
	variant tiles.Variant
}

// Textures holds the uploaded tile sprites and satisfies tiles.Sprites.
// Must be used on the thread that owns the raylib window.
type Textures struct {
	sprites map[spriteKey]*Texture
}

// NewTextures creates an empty texture set.
func NewTextures() *Textures {
	return &Textures{sprites: make(map[spriteKey]*Texture)}
}

// Sprite returns the texture for a type and variant, if loaded.
func (t *Textures) Sprite(typ string, v tiles.Variant) (draw.Image, bool) {
	tex, ok := t.sprites[spriteKey{typ, v}]
	if !ok {
		return nil, false
	}
	return tex, true
}

// Len returns the number of loaded sprites.
func (t *Textures) Len() int {
	return len(t.sprites)
}

// Upload moves finished loader results to the GPU. Failed results are skipped
// and the sprite stays missing. Returns the number uploaded.
func (t *Textures) Upload(results []assets.Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil || res.Image == nil {
			continue
		}
		img := rl.NewImageFromImage(res.Image)
		tex := rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		rl.SetTextureFilter(tex, rl.FilterPoint)

		key := spriteKey{res.Type, res.Variant}
		if old, ok := t.sprites[key]; ok {
			rl.UnloadTexture(old.tex)
		}
		t.sprites[key] = &Texture{tex: tex}
		n++
	}
	if n > 0 {
		slog.Debug("textures uploaded", "count", n, "total", len(t.sprites))
	}
	return n
}

// Unload frees every texture.
func (t *Textures) Unload() {
	for k, tex := range t.sprites {
		rl.UnloadTexture(tex.tex)
		delete(t.sprites, k)
	}
}
