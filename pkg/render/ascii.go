package render

import (
	"strings"

	"github.com/mosaickit/mosaic/pkg/grid"
	"github.com/mosaickit/mosaic/pkg/pattern"
)

// Text renders a grid as ASCII art, one line per row, with a trailing
// newline. Marked cells become '#', unmarked cells '.'.
func Text(g grid.Grid) string {
	if g.Rows() == 0 {
		return ""
	}
	return g.String() + "\n"
}

// TextWithMatches renders a grid as ASCII art with every cell covered by a
// pattern match drawn as 'O'. Matches are given as top-left anchors, as
// returned by [pattern.FindMatches]. Anchors that would place part of the
// pattern outside the grid are ignored.
func TextWithMatches(g grid.Grid, p *pattern.Pattern, matches []pattern.Point) string {
	if g.Rows() == 0 {
		return ""
	}

	overlay := make(map[[2]int]bool)
	for _, m := range matches {
		if m.Row+p.Rows() > g.Rows() || m.Col+p.Cols() > g.Cols() {
			continue
		}
		for r := 0; r < p.Rows(); r++ {
			for c := 0; c < p.Cols(); c++ {
				if p.At(r, c) {
					overlay[[2]int{m.Row + r, m.Col + c}] = true
				}
			}
		}
	}

	var b strings.Builder
	b.Grow((g.Cols() + 1) * g.Rows())
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			switch {
			case overlay[[2]int{r, c}]:
				b.WriteByte('O')
			case g[r][c]:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
