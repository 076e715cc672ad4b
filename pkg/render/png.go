package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/mosaickit/mosaic/pkg/grid"
)

// ErrEmptyImage is returned by [PNG] when the grid has no cells.
var ErrEmptyImage = errors.New("render: empty image")

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	// Scale is the edge length in pixels of each grid cell (default 8).
	Scale int

	// Invert draws marked cells light on a dark background instead of
	// the default dark-on-light.
	Invert bool
}

// PNG rasterizes a grid into a grayscale PNG. Each cell becomes a
// Scale x Scale pixel square, enlarged with nearest-neighbor resampling
// so cell edges stay sharp.
func PNG(g grid.Grid, opts PNGOptions) ([]byte, error) {
	if g.Rows() == 0 || g.Cols() == 0 {
		return nil, ErrEmptyImage
	}
	if opts.Scale <= 0 {
		opts.Scale = 8
	}

	marked, unmarked := color.Gray{Y: 0x20}, color.Gray{Y: 0xf0}
	if opts.Invert {
		marked, unmarked = unmarked, marked
	}

	base := image.NewGray(image.Rect(0, 0, g.Cols(), g.Rows()))
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g[r][c] {
				base.SetGray(c, r, marked)
			} else {
				base.SetGray(c, r, unmarked)
			}
		}
	}

	scaled := imaging.Resize(base, g.Cols()*opts.Scale, g.Rows()*opts.Scale, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, scaled, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
