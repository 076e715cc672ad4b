package tile

import (
	"errors"
	"testing"

	"github.com/mosaickit/mosaic/pkg/grid"
)

var tile2311Rows = []string{
	"..##.#..#.",
	"##..#.....",
	"#...##..#.",
	"####.#...#",
	"##.##.###.",
	"##...#.###",
	".#.#.#..##",
	"..#....#..",
	"###...#.#.",
	"..###..###",
}

func mustTile(t *testing.T, id int, rows []string) Tile {
	t.Helper()
	cells, err := grid.Parse(rows)
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}
	tl, err := New(id, cells)
	if err != nil {
		t.Fatalf("new tile: %v", err)
	}
	return tl
}

func TestEncodeBorder(t *testing.T) {
	tests := []struct {
		name  string
		cells []bool
		want  Signature
	}{
		{"empty", nil, 0},
		{"all clear", []bool{false, false, false}, 0},
		{"msb first", []bool{true, false, false}, 4},
		{"lsb only", []bool{false, false, true}, 1},
		{"mixed", []bool{true, false, true, true}, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeBorder(tt.cells)
			if err != nil {
				t.Fatalf("EncodeBorder: %v", err)
			}
			if got != tt.want {
				t.Errorf("EncodeBorder(%v) = %d, want %d", tt.cells, got, tt.want)
			}
		})
	}
}

func TestEncodeBorderTooWide(t *testing.T) {
	if _, err := EncodeBorder(make([]bool, MaxBorderLen+1)); !errors.Is(err, ErrBorderTooWide) {
		t.Fatalf("err = %v, want ErrBorderTooWide", err)
	}
}

func TestDecodeBorderRoundTrip(t *testing.T) {
	cells := []bool{true, false, true, true, false, false, true, false, false, true}
	sig, err := EncodeBorder(cells)
	if err != nil {
		t.Fatalf("EncodeBorder: %v", err)
	}
	got := DecodeBorder(sig, len(cells))
	for i := range cells {
		if got[i] != cells[i] {
			t.Fatalf("DecodeBorder round trip mismatch at %d: %v", i, got)
		}
	}
}

func TestDirectionTurns(t *testing.T) {
	tests := []struct {
		from, to Direction
		want     int
	}{
		{Top, Top, 0},
		{Top, Right, 1},
		{Top, Bottom, 2},
		{Top, Left, 3},
		{Right, Top, 3},
		{Left, Bottom, 3},
		{Bottom, Left, 1},
	}
	for _, tt := range tests {
		if got := tt.from.Turns(tt.to); got != tt.want {
			t.Errorf("%v.Turns(%v) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestBorderSignatures(t *testing.T) {
	tl := mustTile(t, 2311, tile2311Rows)
	tests := []struct {
		dir  Direction
		want Signature
	}{
		{Top, 210},
		{Bottom, 231},
		{Left, 498},
		{Right, 89},
	}
	for _, tt := range tests {
		if got := tl.BorderSignature(tt.dir); got != tt.want {
			t.Errorf("BorderSignature(%v) = %d, want %d", tt.dir, got, tt.want)
		}
	}
}

func TestSides(t *testing.T) {
	tl := mustTile(t, 2311, tile2311Rows)
	sides := tl.Sides()
	if len(sides) != 8 {
		t.Fatalf("len(Sides) = %d, want 8", len(sides))
	}
	want := []Side{
		{210, Top, false},
		{300, Top, true},
		{231, Bottom, false},
		{924, Bottom, true},
		{498, Left, false},
		{318, Left, true},
		{89, Right, false},
		{616, Right, true},
	}
	for i, w := range want {
		if sides[i] != w {
			t.Errorf("Sides()[%d] = %+v, want %+v", i, sides[i], w)
		}
	}
}

func TestSideFor(t *testing.T) {
	tl := mustTile(t, 2311, tile2311Rows)
	s, ok := tl.SideFor(924)
	if !ok {
		t.Fatal("SideFor(924) not found")
	}
	if s.Direction != Bottom || !s.Flipped {
		t.Errorf("SideFor(924) = %+v, want flipped bottom", s)
	}
	if _, ok := tl.SideFor(1); ok {
		t.Error("SideFor(1) found, want miss")
	}
}

func TestInterior(t *testing.T) {
	tl := mustTile(t, 2311, tile2311Rows)
	in := tl.Interior()
	if in.Rows() != 8 || in.Cols() != 8 {
		t.Fatalf("Interior is %dx%d, want 8x8", in.Rows(), in.Cols())
	}
	wantFirst := "#..#...."
	if got := in.String(); got[:8] != wantFirst {
		t.Errorf("Interior first row = %q, want %q", got[:8], wantFirst)
	}
}

func TestNewRejectsBadTiles(t *testing.T) {
	square, err := grid.Parse([]string{"##", ".."})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rect, err := grid.Parse([]string{"###", "..."})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tests := []struct {
		name  string
		id    int
		cells grid.Grid
	}{
		{"zero id", 0, square},
		{"negative id", -7, square},
		{"rectangular", 5, rect},
		{"empty", 5, grid.Grid{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.id, tt.cells); !errors.Is(err, ErrMalformedTile) {
				t.Errorf("err = %v, want ErrMalformedTile", err)
			}
		})
	}
}

func TestOrientMovesBorder(t *testing.T) {
	tl := mustTile(t, 2311, tile2311Rows)
	for _, from := range []Direction{Top, Right, Bottom, Left} {
		sig := tl.BorderSignature(from)
		for _, target := range []Direction{Top, Right, Bottom, Left} {
			got := Orient(tl, from, target)
			// Rotation may reverse the reading; the border must match in
			// one of the two directions.
			fwd := got.BorderSignature(target)
			cells := got.Border(target)
			reverse(cells)
			rev, err := EncodeBorder(cells)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if fwd != sig && rev != sig {
				t.Errorf("Orient(%v -> %v): border %d/%d does not carry %d", from, target, fwd, rev, sig)
			}
		}
	}
}

func TestAlignMirrorContract(t *testing.T) {
	// After AlignMirror the target border, read canonically, must equal the
	// requested side's signature for every side and every target.
	tl := mustTile(t, 2311, tile2311Rows)
	for _, side := range tl.Sides() {
		for _, target := range []Direction{Top, Right, Bottom, Left} {
			got := AlignMirror(tl, side, target)
			if sig := got.BorderSignature(target); sig != side.Signature {
				t.Errorf("AlignMirror(%v flipped=%v -> %v): border = %d, want %d",
					side.Direction, side.Flipped, target, sig, side.Signature)
			}
		}
	}
}

func TestAlignMirrorPreservesID(t *testing.T) {
	tl := mustTile(t, 2311, tile2311Rows)
	got := AlignMirror(tl, tl.Sides()[3], Left)
	if got.ID != 2311 {
		t.Errorf("ID = %d, want 2311", got.ID)
	}
}

func TestCatalog(t *testing.T) {
	a := mustTile(t, 2311, tile2311Rows)
	b := mustTile(t, 1951, tile2311Rows)
	c, err := NewCatalog([]Tile{b, a})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if c.Len() != 2 || c.TileSize() != 10 {
		t.Fatalf("Len=%d TileSize=%d, want 2 and 10", c.Len(), c.TileSize())
	}
	if got := c.IDs(); got[0] != 1951 || got[1] != 2311 {
		t.Errorf("IDs = %v, want ascending", got)
	}
	if _, ok := c.Get(2311); !ok {
		t.Error("Get(2311) missing")
	}
	if _, ok := c.Get(9999); ok {
		t.Error("Get(9999) present")
	}
}

func TestCatalogRejectsDuplicates(t *testing.T) {
	a := mustTile(t, 2311, tile2311Rows)
	if _, err := NewCatalog([]Tile{a, a}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}

func TestCatalogRejectsMixedSizes(t *testing.T) {
	a := mustTile(t, 1, tile2311Rows)
	small, err := grid.Parse([]string{"##", ".#"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := New(2, small)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := NewCatalog([]Tile{a, b}); !errors.Is(err, ErrMixedSizes) {
		t.Fatalf("err = %v, want ErrMixedSizes", err)
	}
}
