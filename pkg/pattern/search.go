package pattern

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mosaickit/mosaic/pkg/grid"
)

// Point is a match position: the top-left image cell the mask was anchored
// at.
type Point struct {
	Row int
	Col int
}

// FindMatches returns the anchor positions of every occurrence of p in
// img, row-major. Occurrences may overlap.
func FindMatches(img grid.Grid, p *Pattern) []Point {
	var points []Point
	for r := 0; r+p.rows <= img.Rows(); r++ {
		for c := 0; c+p.cols <= img.Cols(); c++ {
			if matchAt(img, p, r, c) {
				points = append(points, Point{Row: r, Col: c})
			}
		}
	}
	return points
}

// CountMatches returns the number of occurrences of p in img, overlaps
// included.
func CountMatches(img grid.Grid, p *Pattern) int {
	count := 0
	for r := 0; r+p.rows <= img.Rows(); r++ {
		for c := 0; c+p.cols <= img.Cols(); c++ {
			if matchAt(img, p, r, c) {
				count++
			}
		}
	}
	return count
}

func matchAt(img grid.Grid, p *Pattern, row, col int) bool {
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			if p.mask[r][c] && !img[row+r][col+c] {
				return false
			}
		}
	}
	return true
}

// Result is the outcome of searching an image across its eight dihedral
// orientations.
type Result struct {
	// Image is the orientation that held the most matches, or the input
	// image when nothing matched anywhere.
	Image grid.Grid
	// Orientation indexes the winning orientation in the order produced
	// by grid.Orientations; 0 is the input image itself.
	Orientation int
	// Count is the number of occurrences in the winning orientation.
	Count int
	// Found reports whether any orientation held at least one occurrence.
	Found bool
	// Roughness is the number of marked image cells not covered by the
	// occurrence count. With zero matches it degrades to the total
	// marked count.
	Roughness int
}

// Search counts occurrences of p in all eight orientations of img and
// reports the orientation with the most. The eight counts run
// concurrently on independent copies. Ties go to the lowest orientation
// index, so results are deterministic.
//
// Zero matches everywhere is not an error; Found is false and Roughness
// is the image's marked cell count.
func Search(ctx context.Context, img grid.Grid, p *Pattern) (*Result, error) {
	orientations := grid.Orientations(img)
	counts := make([]int, len(orientations))

	eg, ctx := errgroup.WithContext(ctx)
	for i := range orientations {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			counts[i] = CountMatches(orientations[i], p)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for i, n := range counts {
		if n > counts[best] {
			best = i
		}
	}
	res := &Result{
		Image:       orientations[best],
		Orientation: best,
		Count:       counts[best],
		Found:       counts[best] > 0,
	}
	res.Roughness = img.MarkedCount() - res.Count*p.MarkedCount()
	return res, nil
}
