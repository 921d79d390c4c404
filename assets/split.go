package assets

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/pthm-cable/tileworld/tiles"
)

// ErrBadTileset is returned for tileset images that cannot be split.
var ErrBadTileset = errors.New("assets: bad tileset")

// tilesetOrder is the top-to-bottom order of the five bands in a tileset image.
var tilesetOrder = [5]tiles.Variant{tiles.Corner, tiles.DoubleNook, tiles.Straight, tiles.Nook, tiles.Center}

// Slices holds the five sprites cut from a tileset.
type Slices struct {
	Center, Corner, Straight, Nook, DoubleNook image.Image
}

// Get returns the slice for a variant.
func (s Slices) Get(v tiles.Variant) image.Image {
	switch v {
	case tiles.Center:
		return s.Center
	case tiles.Corner:
		return s.Corner
	case tiles.Straight:
		return s.Straight
	case tiles.Nook:
		return s.Nook
	case tiles.DoubleNook:
		return s.DoubleNook
	}
	return nil
}

func (s *Slices) set(v tiles.Variant, img image.Image) {
	switch v {
	case tiles.Center:
		s.Center = img
	case tiles.Corner:
		s.Corner = img
	case tiles.Straight:
		s.Straight = img
	case tiles.Nook:
		s.Nook = img
	case tiles.DoubleNook:
		s.DoubleNook = img
	}
}

// SplitTileset cuts a tileset into five equal horizontal bands, top to bottom:
// corner, doubleNook, straight, nook, center. When size is positive each band is
// scaled to size x size; otherwise bands keep their source dimensions.
func SplitTileset(src image.Image, size int) (Slices, error) {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() < len(tilesetOrder) {
		return Slices{}, fmt.Errorf("%w: %dx%d image", ErrBadTileset, b.Dx(), b.Dy())
	}
	band := b.Dy() / len(tilesetOrder)

	var out Slices
	for i, v := range tilesetOrder {
		r := image.Rect(b.Min.X, b.Min.Y+i*band, b.Max.X, b.Min.Y+(i+1)*band)
		w, h := r.Dx(), r.Dy()
		if size > 0 {
			w, h = size, size
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		if size > 0 {
			xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, r, xdraw.Src, nil)
		} else {
			xdraw.Copy(dst, image.Point{}, src, r, xdraw.Src, nil)
		}
		out.set(v, dst)
	}
	return out, nil
}
