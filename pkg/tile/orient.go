package tile

import "github.com/mosaickit/mosaic/pkg/grid"

// Orient returns a copy of the tile rotated clockwise so that the border
// currently facing from comes to face target. The number of rotations is
// from.Turns(target); reading directions are not adjusted here, see
// [AlignMirror] for the full placement transform.
func Orient(t Tile, from, target Direction) Tile {
	cells := t.Cells.Clone()
	for i := 0; i < from.Turns(target); i++ {
		cells = cells.Rotate()
	}
	return Tile{ID: t.ID, Cells: cells}
}

// AlignMirror orients a tile so that the border described by side comes to
// face target with the correct cell order for butting against an already
// placed neighbor, mirroring across the target axis when the reading
// parity requires it.
//
// After AlignMirror, reading the target border canonically yields exactly
// side.Signature, so butting the result against a neighbor whose facing
// border carries that signature lines the cells up.
//
// Rotation alone moves the border into position but may leave it reversed
// relative to the neighbor's matching border. Whether a mirror is needed
// follows from perimeter traversal parity: rotation preserves whether the
// side's reading runs clockwise around the tile, and the canonical reading
// at the target runs clockwise only for Top and Right. When the two
// disagree the tile is mirrored across the target axis, which keeps the
// aligned border in place while reversing its cell order: a vertical flip
// for horizontal targets, a horizontal flip for vertical targets.
func AlignMirror(t Tile, side Side, target Direction) Tile {
	out := Orient(t, side.Direction, target)
	if side.readsClockwise() != (target == Top || target == Right) {
		var cells grid.Grid
		if target.Horizontal() {
			cells = out.Cells.FlipVertical()
		} else {
			cells = out.Cells.FlipHorizontal()
		}
		out = Tile{ID: out.ID, Cells: cells}
	}
	return out
}
