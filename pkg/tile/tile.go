// Package tile models the square puzzle tiles and their border signatures.
//
// A tile is an immutable numbered grid. Each of its four geometric borders
// can be read in two directions, giving exactly eight side descriptors per
// tile. Borders are compared through integer signatures: two borders are the
// same iff their signatures are numerically equal, regardless of which
// physical edge they came from.
//
// # Reading convention
//
// The canonical reading direction (Flipped=false) is left-to-right for the
// Top and Bottom borders and top-to-bottom for the Left and Right borders;
// Flipped=true is the reverse reading. Historical implementations disagreed
// on the Bottom border; this package fixes the convention above and applies
// it everywhere, including the orientation logic in [Orient] and
// [AlignMirror].
package tile

import (
	"errors"
	"fmt"

	"github.com/mosaickit/mosaic/pkg/grid"
)

var (
	// ErrMalformedTile is returned when a tile's grid is not square or has
	// a non-positive id.
	ErrMalformedTile = errors.New("malformed tile")

	// ErrBorderTooWide is returned by [EncodeBorder] when the border has
	// more cells than a Signature can hold.
	ErrBorderTooWide = errors.New("border exceeds signature width")
)

// Signature is the integer encoding of one border read in one direction:
// marked cells are 1-bits, most significant bit first. For a border of N
// cells the value lies in [0, 2^N).
type Signature uint32

// MaxBorderLen is the widest border a Signature can encode.
const MaxBorderLen = 32

// EncodeBorder packs a border reading into a Signature, most significant
// bit first in the given order.
func EncodeBorder(cells []bool) (Signature, error) {
	if len(cells) > MaxBorderLen {
		return 0, fmt.Errorf("%w: %d cells", ErrBorderTooWide, len(cells))
	}
	var sig Signature
	for _, marked := range cells {
		sig <<= 1
		if marked {
			sig |= 1
		}
	}
	return sig, nil
}

// DecodeBorder unpacks a Signature into the border reading of n cells it
// was encoded from, so that DecodeBorder(EncodeBorder(x), len(x)) == x.
func DecodeBorder(sig Signature, n int) []bool {
	cells := make([]bool, n)
	for i := n - 1; i >= 0; i-- {
		cells[i] = sig&1 == 1
		sig >>= 1
	}
	return cells
}

// Direction identifies one of the four tile borders. The numeric values run
// strictly clockwise starting at Top, which makes rotation arithmetic a
// modular index shift.
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

// Turns returns the number of clockwise 90-degree rotations that move a
// border facing d to face target.
func (d Direction) Turns(target Direction) int {
	return int((target - d + 4) % 4)
}

// Next returns the direction 90 degrees clockwise from d.
func (d Direction) Next() Direction { return (d + 1) % 4 }

// Horizontal reports whether the direction is Left or Right.
func (d Direction) Horizontal() bool { return d == Left || d == Right }

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Side describes one of the eight border readings of a tile: which border,
// which reading direction, and the resulting signature.
type Side struct {
	Signature Signature
	Direction Direction
	Flipped   bool // true when read against the canonical direction
}

// readsClockwise reports whether this side's reading order traverses the
// tile perimeter clockwise. The canonical readings of Top and Right run
// clockwise; those of Bottom and Left run counterclockwise. The mirror
// parity in [AlignMirror] depends on this, not on Flipped alone.
func (s Side) readsClockwise() bool {
	if s.Direction == Top || s.Direction == Right {
		return !s.Flipped
	}
	return s.Flipped
}

// Tile is an immutable numbered square grid of cells. Transforms never
// mutate a tile; they return a new value sharing no cell storage.
type Tile struct {
	ID    int
	Cells grid.Grid
}

// New constructs a tile, validating that the id is positive and the grid is
// square and non-empty.
func New(id int, cells grid.Grid) (Tile, error) {
	if id <= 0 {
		return Tile{}, fmt.Errorf("%w: id %d must be positive", ErrMalformedTile, id)
	}
	if cells.Rows() == 0 || !cells.Square() {
		return Tile{}, fmt.Errorf("%w: tile %d is %dx%d, want square", ErrMalformedTile, id, cells.Rows(), cells.Cols())
	}
	return Tile{ID: id, Cells: cells}, nil
}

// Size returns the tile's side length N.
func (t Tile) Size() int { return t.Cells.Rows() }

// Border returns the border facing d read in its canonical direction:
// left-to-right for Top/Bottom, top-to-bottom for Left/Right.
func (t Tile) Border(d Direction) []bool {
	n := t.Size()
	cells := make([]bool, n)
	for i := 0; i < n; i++ {
		switch d {
		case Top:
			cells[i] = t.Cells[0][i]
		case Bottom:
			cells[i] = t.Cells[n-1][i]
		case Left:
			cells[i] = t.Cells[i][0]
		case Right:
			cells[i] = t.Cells[i][n-1]
		}
	}
	return cells
}

// BorderSignature returns the signature of the border facing d, read
// canonically.
func (t Tile) BorderSignature(d Direction) Signature {
	sig, err := EncodeBorder(t.Border(d))
	if err != nil {
		// Tiles are validated against MaxBorderLen on construction.
		panic(err)
	}
	return sig
}

// Sides returns the eight side descriptors of the tile: each geometric
// border in both its canonical and reversed reading, in the fixed order
// Top, Bottom, Left, Right.
func (t Tile) Sides() []Side {
	sides := make([]Side, 0, 8)
	for _, d := range []Direction{Top, Bottom, Left, Right} {
		cells := t.Border(d)
		canonical, err := EncodeBorder(cells)
		if err != nil {
			panic(err)
		}
		reverse(cells)
		reversed, err := EncodeBorder(cells)
		if err != nil {
			panic(err)
		}
		sides = append(sides,
			Side{Signature: canonical, Direction: d, Flipped: false},
			Side{Signature: reversed, Direction: d, Flipped: true},
		)
	}
	return sides
}

// Signatures returns the set of signatures exposed by the tile's eight
// sides. Only useful for adjacency lookup; direction and reading metadata
// are dropped.
func (t Tile) Signatures() []Signature {
	sides := t.Sides()
	sigs := make([]Signature, len(sides))
	for i, s := range sides {
		sigs[i] = s.Signature
	}
	return sigs
}

// SideFor returns the first side exposing the given signature, in the order
// of [Tile.Sides]. The second return is false when no side matches.
func (t Tile) SideFor(sig Signature) (Side, bool) {
	for _, s := range t.Sides() {
		if s.Signature == sig {
			return s, true
		}
	}
	return Side{}, false
}

// Interior returns the tile's cells with the outermost border ring removed,
// an (N-2)x(N-2) grid.
func (t Tile) Interior() grid.Grid {
	n := t.Size()
	out := grid.New(n-2, n-2)
	for r := 1; r < n-1; r++ {
		for c := 1; c < n-1; c++ {
			out[r-1][c-1] = t.Cells[r][c]
		}
	}
	return out
}

func (t Tile) String() string {
	return fmt.Sprintf("Tile %d:\n%s", t.ID, t.Cells)
}

func reverse(cells []bool) {
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
}
