// Package level persists the world tile grid as CSV, one row per placed tile.
package level

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/tileworld/tiles"
)

// Record is one placed tile.
type Record struct {
	Type string `csv:"type"`
	Row  int    `csv:"row"`
	Col  int    `csv:"col"`
}

// Records lists every tile in the engine, ordered by type, row, then column.
func Records(e *tiles.Engine) []Record {
	records := make([]Record, 0, e.Len())
	e.Each(func(typ string, c tiles.Coord) {
		records = append(records, Record{Type: typ, Row: c.Row, Col: c.Col})
	})
	return records
}

// Write encodes the engine's tiles as CSV with a header row.
func Write(w io.Writer, e *tiles.Engine) error {
	if err := gocsv.Marshal(Records(e), w); err != nil {
		return fmt.Errorf("writing level: %w", err)
	}
	return nil
}

// String returns the engine's tiles as CSV text.
func String(e *tiles.Engine) (string, error) {
	s, err := gocsv.MarshalString(Records(e))
	if err != nil {
		return "", fmt.Errorf("encoding level: %w", err)
	}
	return s, nil
}

// Read decodes CSV records. An empty input yields no records.
func Read(r io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading level: %w", err)
	}
	for i, rec := range records {
		if rec.Type == "" {
			return nil, fmt.Errorf("reading level: row %d has no tile type", i+1)
		}
	}
	return records, nil
}

// Apply replaces the engine's tiles with records.
func Apply(e *tiles.Engine, records []Record) {
	e.Clear()
	for _, rec := range records {
		e.SetCell(tiles.Coord{Row: rec.Row, Col: rec.Col}, rec.Type)
	}
}

// Save writes the engine's tiles to a CSV file.
func Save(path string, e *tiles.Engine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating level file: %w", err)
	}
	if err := Write(f, e); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a CSV file and replaces the engine's tiles with its contents.
func Load(path string, e *tiles.Engine) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening level file: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return err
	}
	Apply(e, records)
	return nil
}
