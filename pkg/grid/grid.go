// Package grid provides pure geometry on rectangular boolean grids.
//
// A Grid is a matrix of marked/unmarked cells. Every transform (rotation,
// mirror) returns a fresh Grid and never mutates the receiver, so grids can
// be shared freely between components. The symmetry operations generate the
// dihedral group of the square: four rotations combined with one mirror
// reach all eight orientations.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty is returned by [Parse] when no rows are given.
	ErrEmpty = errors.New("grid has no rows")

	// ErrRagged is returned by [Parse] when rows have differing widths.
	ErrRagged = errors.New("grid rows differ in width")

	// ErrBadCell is returned by [Parse] when a cell is neither '#' nor '.'.
	ErrBadCell = errors.New("invalid cell character")
)

// Grid is a rectangular matrix of cells. True means marked ('#'),
// false means unmarked ('.').
//
// Grids are treated as immutable by convention: all methods that change
// geometry return a new Grid. Callers that need scratch space should Clone
// first.
type Grid [][]bool

// New creates an all-unmarked grid with the given number of rows and columns.
func New(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]bool, cols)
	}
	return g
}

// Parse reads a grid from text rows, one string per row, where '#' is a
// marked cell and '.' an unmarked one. Returns ErrEmpty, ErrRagged or
// ErrBadCell for malformed input.
func Parse(rows []string) (Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	width := len(rows[0])
	g := make(Grid, len(rows))
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, r, len(row), width)
		}
		g[r] = make([]bool, width)
		for c, ch := range row {
			switch ch {
			case '#':
				g[r][c] = true
			case '.':
			default:
				return nil, fmt.Errorf("%w: %q at row %d col %d", ErrBadCell, ch, r, c)
			}
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the number of columns, or 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Square reports whether the grid has as many rows as columns.
func (g Grid) Square() bool { return g.Rows() == g.Cols() }

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = make([]bool, len(row))
		copy(out[r], row)
	}
	return out
}

// Equal reports whether two grids have identical dimensions and cells.
func (g Grid) Equal(other Grid) bool {
	if g.Rows() != other.Rows() || g.Cols() != other.Cols() {
		return false
	}
	for r := range g {
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the grid rotated 90 degrees clockwise: rows become columns
// in reverse order. Applying it four times yields the original grid.
func (g Grid) Rotate() Grid {
	rows, cols := g.Rows(), g.Cols()
	out := make(Grid, cols)
	for r := 0; r < cols; r++ {
		out[r] = make([]bool, rows)
		for c := 0; c < rows; c++ {
			out[r][c] = g[rows-1-c][r]
		}
	}
	return out
}

// FlipHorizontal returns the grid mirrored left-to-right (each row reversed).
// It is an involution: applying it twice yields the original grid.
func (g Grid) FlipHorizontal() Grid {
	out := make(Grid, g.Rows())
	for r, row := range g {
		out[r] = make([]bool, len(row))
		for c, v := range row {
			out[r][len(row)-1-c] = v
		}
	}
	return out
}

// FlipVertical returns the grid mirrored top-to-bottom (row order reversed).
// It is an involution: applying it twice yields the original grid.
func (g Grid) FlipVertical() Grid {
	out := make(Grid, g.Rows())
	for r, row := range g {
		out[g.Rows()-1-r] = append([]bool(nil), row...)
	}
	return out
}

// MarkedCount returns the number of marked cells.
func (g Grid) MarkedCount() int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// String renders the grid as '#'/'.' rows separated by newlines.
func (g Grid) String() string {
	var b strings.Builder
	for r, row := range g {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, v := range row {
			if v {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// Orientations returns all eight dihedral orientations of the grid: the four
// rotations of the original followed by the four rotations of its mirror
// image. The first element is the grid itself. Each element is an
// independent copy.
func Orientations(g Grid) []Grid {
	out := make([]Grid, 0, 8)
	cur := g.Clone()
	for _, transform := range Sequence() {
		out = append(out, cur)
		cur = transform(cur)
	}
	return append(out, cur)
}

// Transform is a pure grid symmetry operation.
type Transform func(Grid) Grid

// Sequence returns the seven transforms that, applied cumulatively to a
// grid, step through the remaining seven dihedral orientations after the
// identity: three rotations, one horizontal mirror, three more rotations.
func Sequence() []Transform {
	rotate := Grid.Rotate
	flip := Grid.FlipHorizontal
	return []Transform{rotate, rotate, rotate, flip, rotate, rotate, rotate}
}
