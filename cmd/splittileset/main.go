// Command splittileset splits a five-band tileset image into per-variant sprites
// and records them in a tile catalog.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pthm-cable/tileworld/assets"
	"github.com/pthm-cable/tileworld/tiles"
)

func main() {
	in := flag.String("in", "", "Tileset image (bands top to bottom: corner, doubleNook, straight, nook, center)")
	typ := flag.String("type", "", "Tile type name to register")
	size := flag.Int("size", 0, "Scale each sprite to this many pixels (0 = keep)")
	outDir := flag.String("out", "", "Write one PNG per variant here (empty = inline data URIs)")
	catalogPath := flag.String("catalog", "tiles.yaml", "Catalog YAML to create or update")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *in == "" || *typ == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*in, *typ, *size, *outDir, *catalogPath); err != nil {
		slog.Error("split failed", "error", err)
		os.Exit(1)
	}
}

func run(in, typ string, size int, outDir, catalogPath string) error {
	src, err := decodeFile(in)
	if err != nil {
		return err
	}
	slices, err := assets.SplitTileset(src, size)
	if err != nil {
		return err
	}

	cat, err := assets.LoadCatalog(catalogPath)
	if errors.Is(err, fs.ErrNotExist) {
		cat = assets.NewCatalog(filepath.Dir(catalogPath))
	} else if err != nil {
		return err
	}

	if outDir == "" {
		if err := cat.AddSlices(typ, slices); err != nil {
			return err
		}
	} else {
		entry, err := writeSlices(slices, typ, outDir, filepath.Dir(catalogPath))
		if err != nil {
			return err
		}
		cat.Tiles[typ] = entry
	}

	if err := cat.Save(catalogPath); err != nil {
		return err
	}
	slog.Info("tileset split", "type", typ, "catalog", catalogPath, "types", len(cat.Tiles))
	return nil
}

// writeSlices writes each variant as <type>-<variant>.png and returns the
// catalog entry with paths relative to base.
func writeSlices(s assets.Slices, typ, outDir, base string) (assets.SpriteSource, error) {
	var src assets.SpriteSource
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return src, fmt.Errorf("creating output directory: %w", err)
	}
	for _, v := range tiles.Variants {
		path := filepath.Join(outDir, fmt.Sprintf("%s-%s.png", typ, v))
		if err := encodeFile(path, s.Get(v)); err != nil {
			return src, err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			rel = path
		}
		src.Set(v, filepath.ToSlash(rel))
	}
	return src, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tileset: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding tileset: %w", err)
	}
	return img, nil
}

func encodeFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
