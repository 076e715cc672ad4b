package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mosaickit/mosaic/internal/fixture"
	"github.com/mosaickit/mosaic/pkg/grid"
	"github.com/mosaickit/mosaic/pkg/tile"
)

func TestParseSample(t *testing.T) {
	cat, err := ParseString(fixture.SampleTiles)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if cat.Len() != 9 {
		t.Fatalf("Len = %d, want 9", cat.Len())
	}
	if cat.TileSize() != 10 {
		t.Fatalf("TileSize = %d, want 10", cat.TileSize())
	}
	want := []int{1171, 1427, 1489, 1951, 2311, 2473, 2729, 2971, 3079}
	got := cat.IDs()
	for i, id := range want {
		if got[i] != id {
			t.Fatalf("IDs = %v, want %v", got, want)
		}
	}
	tl, ok := cat.Get(2311)
	if !ok {
		t.Fatal("tile 2311 missing")
	}
	if sig := tl.BorderSignature(tile.Top); sig != 210 {
		t.Errorf("tile 2311 top signature = %d, want 210", sig)
	}
}

func TestParseSingleTile(t *testing.T) {
	cat, err := ParseString("Tile 7:\n##\n.#\n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	tl, ok := cat.Get(7)
	if !ok {
		t.Fatal("tile 7 missing")
	}
	if !tl.Cells[0][0] || tl.Cells[1][0] {
		t.Errorf("cells parsed wrong: %v", tl.Cells)
	}
}

func TestParseCRLFAndTrailingBlank(t *testing.T) {
	cat, err := ParseString("Tile 7:\r\n##\r\n.#\r\n\r\n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cat.Len())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"missing colon", "Tile 7\n##\n.#\n", ErrBadHeader},
		{"non-numeric id", "Tile seven:\n##\n.#\n", ErrBadHeader},
		{"zero id", "Tile 0:\n##\n.#\n", ErrBadHeader},
		{"row before header", "##\n.#\n", ErrBadHeader},
		{"bad cell", "Tile 7:\n#x\n.#\n", grid.ErrBadCell},
		{"ragged grid", "Tile 7:\n##\n#\n", grid.ErrRagged},
		{"rectangular", "Tile 7:\n###\n...\n", tile.ErrMalformedTile},
		{"duplicate id", "Tile 7:\n##\n.#\n\nTile 7:\n..\n..\n", tile.ErrDuplicateID},
		{"mixed sizes", "Tile 7:\n##\n.#\n\nTile 8:\n###\n...\n###\n", tile.ErrMixedSizes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.text); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.txt")
	if err := os.WriteFile(path, []byte(fixture.SampleTiles), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if cat.Len() != 9 {
		t.Errorf("Len = %d, want 9", cat.Len())
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseEmptyInput(t *testing.T) {
	cat, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cat.Len() != 0 {
		t.Errorf("Len = %d, want 0", cat.Len())
	}
}
