// Package pattern finds fixed cell patterns in assembled images.
//
// A pattern is a rectangular mask of must-match cells; all other cells
// are wildcards. Matching slides the mask over the image without wrapping
// and may count overlapping occurrences. Because an assembled image comes
// out in an arbitrary dihedral orientation, [Search] tries all eight
// orientations and keeps the best.
package pattern

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyPattern is returned when a pattern has no rows or no
	// must-match cells.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrBadPatternCell is returned when a pattern row contains a
	// character other than '#', '.' or ' '.
	ErrBadPatternCell = errors.New("bad pattern cell")
)

// Pattern is an immutable rectangular mask. Cells set in the mask must be
// marked in the image; the rest are ignored.
type Pattern struct {
	mask   [][]bool
	rows   int
	cols   int
	marked int
}

// Parse builds a pattern from its textual rows: '#' is a must-match cell,
// ' ' and '.' are wildcards. Rows may have trailing wildcards trimmed;
// they are padded to the widest row.
func Parse(rows []string) (*Pattern, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyPattern
	}
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	p := &Pattern{rows: len(rows), cols: cols, mask: make([][]bool, len(rows))}
	for r, row := range rows {
		p.mask[r] = make([]bool, cols)
		for c, ch := range row {
			switch ch {
			case '#':
				p.mask[r][c] = true
				p.marked++
			case '.', ' ':
			default:
				return nil, fmt.Errorf("%w: %q at row %d col %d", ErrBadPatternCell, ch, r, c)
			}
		}
	}
	if p.marked == 0 {
		return nil, fmt.Errorf("%w: no must-match cells", ErrEmptyPattern)
	}
	return p, nil
}

// MustParse is Parse for patterns known at compile time.
func MustParse(rows []string) *Pattern {
	p, err := Parse(rows)
	if err != nil {
		panic(err)
	}
	return p
}

// Rows returns the pattern height.
func (p *Pattern) Rows() int { return p.rows }

// Cols returns the pattern width.
func (p *Pattern) Cols() int { return p.cols }

// MarkedCount returns the number of must-match cells.
func (p *Pattern) MarkedCount() int { return p.marked }

// At reports whether the mask requires a marked cell at (r, c).
func (p *Pattern) At(r, c int) bool { return p.mask[r][c] }

func (p *Pattern) String() string {
	var b strings.Builder
	for r, row := range p.mask {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, marked := range row {
			if marked {
				b.WriteByte('#')
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// SeaMonster returns the classic fifteen-cell sea monster mask.
func SeaMonster() *Pattern {
	return MustParse([]string{
		"                  # ",
		"#    ##    ##    ###",
		" #  #  #  #  #  #   ",
	})
}
