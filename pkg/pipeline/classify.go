package pipeline

import (
	"errors"
	"io/fs"

	"github.com/mosaickit/mosaic/pkg/adjacency"
	"github.com/mosaickit/mosaic/pkg/assemble"
	mosaicerrors "github.com/mosaickit/mosaic/pkg/errors"
	"github.com/mosaickit/mosaic/pkg/grid"
	"github.com/mosaickit/mosaic/pkg/pattern"
	"github.com/mosaickit/mosaic/pkg/source"
	"github.com/mosaickit/mosaic/pkg/tile"
)

// Classify wraps a domain error with its machine-readable code so the CLI
// and API report failures uniformly. Errors that already carry a code, and
// errors with no known classification, pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var coded *mosaicerrors.Error
	if errors.As(err, &coded) {
		return err
	}
	switch {
	case errors.Is(err, tile.ErrDuplicateID):
		return mosaicerrors.Wrap(mosaicerrors.ErrCodeDuplicateTile, err, "duplicate tile id")
	case errors.Is(err, tile.ErrMalformedTile), errors.Is(err, tile.ErrMixedSizes):
		return mosaicerrors.Wrap(mosaicerrors.ErrCodeInvalidTile, err, "malformed tile")
	case errors.Is(err, source.ErrBadHeader),
		errors.Is(err, grid.ErrEmpty),
		errors.Is(err, grid.ErrRagged),
		errors.Is(err, grid.ErrBadCell):
		return mosaicerrors.Wrap(mosaicerrors.ErrCodeInvalidFormat, err, "malformed tile input")
	case errors.Is(err, adjacency.ErrInconsistentPuzzle):
		return mosaicerrors.Wrap(mosaicerrors.ErrCodeInconsistentPuzzle, err, "ambiguous border signatures")
	case errors.Is(err, adjacency.ErrUnsolvablePuzzle):
		return mosaicerrors.Wrap(mosaicerrors.ErrCodeUnsolvablePuzzle, err, "puzzle has no corner structure")
	case errors.Is(err, assemble.ErrNonSquareCount):
		return mosaicerrors.Wrap(mosaicerrors.ErrCodeNonSquareTileset, err, "tile count cannot fill a square")
	case errors.Is(err, assemble.ErrAssemblyConflict):
		return mosaicerrors.Wrap(mosaicerrors.ErrCodeAssemblyConflict, err, "tiles cannot be placed consistently")
	case errors.Is(err, pattern.ErrEmptyPattern), errors.Is(err, pattern.ErrBadPatternCell):
		return mosaicerrors.Wrap(mosaicerrors.ErrCodeInvalidPattern, err, "malformed pattern")
	case errors.Is(err, fs.ErrNotExist):
		return mosaicerrors.Wrap(mosaicerrors.ErrCodeFileNotFound, err, "input file not found")
	}
	return err
}
