// Package assets handles tile sprite sources: the persisted catalog, tileset
// splitting and asynchronous image decoding.
package assets

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tileworld/tiles"
)

// ErrUnknownType is returned when a tile type is not in the catalog.
var ErrUnknownType = errors.New("assets: unknown tile type")

const dataURIPrefix = "data:image/png;base64,"

// SpriteSource holds the five image references for one tile type. Each is a
// file path (relative to the catalog file) or a base64 PNG data URI.
type SpriteSource struct {
	Center     string `yaml:"center"`
	Corner     string `yaml:"corner"`
	Straight   string `yaml:"straight"`
	Nook       string `yaml:"nook"`
	DoubleNook string `yaml:"double_nook"`
}

// Get returns the reference for a variant.
func (s SpriteSource) Get(v tiles.Variant) string {
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
	return ""
}

// Set stores the reference for a variant.
func (s *SpriteSource) Set(v tiles.Variant, ref string) {
	switch v {
	case tiles.Center:
		s.Center = ref
	case tiles.Corner:
		s.Corner = ref
	case tiles.Straight:
		s.Straight = ref
	case tiles.Nook:
		s.Nook = ref
	case tiles.DoubleNook:
		s.DoubleNook = ref
	}
}

// Catalog maps tile type names to their sprite sources.
type Catalog struct {
	Tiles map[string]SpriteSource `yaml:"tiles"`

	dir string // references resolve relative to this
}

// NewCatalog creates an empty catalog resolving paths against dir.
func NewCatalog(dir string) *Catalog {
	return &Catalog{Tiles: make(map[string]SpriteSource), dir: dir}
}

// LoadCatalog reads a catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c := NewCatalog(filepath.Dir(path))
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if c.Tiles == nil {
		c.Tiles = make(map[string]SpriteSource)
	}
	return c, nil
}

// Save writes the catalog to a YAML file.
func (c *Catalog) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// Types returns the catalog's tile types, sorted.
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.Tiles))
	for name := range c.Tiles {
		types = append(types, name)
	}
	slices.Sort(types)
	return types
}

// Source returns the sprite source for a type.
func (c *Catalog) Source(typ string) (SpriteSource, error) {
	src, ok := c.Tiles[typ]
	if !ok {
		return SpriteSource{}, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	return src, nil
}

// AddSlices stores split tileset images inline as data URIs under typ.
func (c *Catalog) AddSlices(typ string, s Slices) error {
	var src SpriteSource
	for _, v := range tiles.Variants {
		uri, err := EncodeDataURI(s.Get(v))
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", typ, v, err)
		}
		src.Set(v, uri)
	}
	c.Tiles[typ] = src
	return nil
}

// Open decodes the image behind a reference.
func (c *Catalog) Open(ref string) (image.Image, error) {
	if strings.HasPrefix(ref, "data:") {
		return DecodeDataURI(ref)
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// EncodeDataURI encodes an image as a base64 PNG data URI.
func EncodeDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI decodes a base64 image data URI.
func DecodeDataURI(uri string) (image.Image, error) {
	_, payload, ok := strings.Cut(uri, ";base64,")
	if !ok || !strings.HasPrefix(uri, "data:image/") {
		return nil, fmt.Errorf("unsupported data URI %.32q", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
