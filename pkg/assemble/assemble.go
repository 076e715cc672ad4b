// Package assemble rebuilds the full image from a tile adjacency graph.
//
// Placement works outward from a corner tile: a work queue holds tiles
// whose position and facing border are already decided, and each placed
// tile probes its right and bottom borders to discover the neighbors that
// belong there. Every tile is enqueued at most once; interior tiles are
// reached from two directions and the second discovery is skipped. Once a
// tile is placed its one-cell border ring is stripped and the interior is
// blitted into the output image.
package assemble

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mosaickit/mosaic/pkg/adjacency"
	"github.com/mosaickit/mosaic/pkg/grid"
	"github.com/mosaickit/mosaic/pkg/tile"
)

var (
	// ErrNonSquareCount is returned when the tile count is not a perfect
	// square and therefore cannot fill a square frame.
	ErrNonSquareCount = errors.New("tile count is not a perfect square")

	// ErrAssemblyConflict is returned when placement contradicts itself:
	// a position is claimed twice, or the queue drains before every
	// frame position is filled.
	ErrAssemblyConflict = errors.New("assembly conflict")
)

// ConflictError reports the tile and frame position at which placement
// contradicted an earlier placement. It unwraps to [ErrAssemblyConflict].
type ConflictError struct {
	TileID int
	Row    int
	Col    int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("assembly conflict: tile %d at position (%d,%d) already filled", e.TileID, e.Row, e.Col)
}

func (e *ConflictError) Unwrap() error { return ErrAssemblyConflict }

// Result is an assembled puzzle: the borderless image and the tile id
// occupying each frame position.
type Result struct {
	Image  grid.Grid
	Layout [][]int
}

// task places a tile so that the border carrying side comes to face
// target. The seed task only rotates; everything after it also mirrors
// to meet the neighbor it was discovered from.
type task struct {
	row, col int
	id       int
	side     tile.Side
	target   tile.Direction
	mirror   bool
}

// Assemble reconstructs the image from the adjacency graph. The lowest-id
// corner seeds the frame at the top left; its orientation fixes the
// chirality of the whole output, so the assembled image is one of the
// eight dihedral orientations of the source picture.
func Assemble(g *adjacency.Graph) (*Result, error) {
	catalog := g.Catalog()
	k, err := frameSize(catalog.Len())
	if err != nil {
		return nil, err
	}
	corners, err := g.Corners()
	if err != nil {
		return nil, err
	}
	seed, err := seedTask(g, corners[0])
	if err != nil {
		return nil, err
	}

	inner := catalog.TileSize() - 2
	res := &Result{
		Image:  grid.New(k*inner, k*inner),
		Layout: make([][]int, k),
	}
	for i := range res.Layout {
		res.Layout[i] = make([]int, k)
	}

	queue := []task{seed}
	seen := map[int]bool{seed.id: true}
	placed := 0
	for len(queue) > 0 {
		tk := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		t, ok := catalog.Get(tk.id)
		if !ok {
			return nil, fmt.Errorf("%w: unknown tile %d", ErrAssemblyConflict, tk.id)
		}
		var oriented tile.Tile
		if tk.mirror {
			oriented = tile.AlignMirror(t, tk.side, tk.target)
		} else {
			oriented = tile.Orient(t, tk.side.Direction, tk.target)
		}
		if res.Layout[tk.row][tk.col] != 0 {
			return nil, &ConflictError{TileID: tk.id, Row: tk.row, Col: tk.col}
		}
		res.Layout[tk.row][tk.col] = tk.id
		placed++

		if tk.col < k-1 {
			if next, ok := discover(g, oriented, tile.Right, tk.row, tk.col+1, tile.Left, seen); ok {
				queue = append(queue, next)
			}
		}
		if tk.row < k-1 {
			if next, ok := discover(g, oriented, tile.Bottom, tk.row+1, tk.col, tile.Top, seen); ok {
				queue = append(queue, next)
			}
		}
		blit(res.Image, oriented, tk.row, tk.col)
	}
	if placed != k*k {
		return nil, fmt.Errorf("%w: placed %d of %d tiles", ErrAssemblyConflict, placed, k*k)
	}
	return res, nil
}

// seedTask picks the corner's starting orientation. Of the corner's two
// neighbor-bearing borders, the one whose clockwise successor is the
// other determines where right and down land: rotating it to face Right
// puts both neighbors on the probed sides.
func seedTask(g *adjacency.Graph, corner int) (task, error) {
	t, ok := g.Catalog().Get(corner)
	if !ok {
		return task{}, fmt.Errorf("%w: unknown corner tile %d", ErrAssemblyConflict, corner)
	}
	var bearing []tile.Side
	for _, s := range t.Sides() {
		if s.Flipped {
			continue
		}
		if _, ok := g.PartnerOf(s.Signature, corner); ok {
			bearing = append(bearing, s)
		}
	}
	if len(bearing) != 2 {
		return task{}, fmt.Errorf("%w: corner tile %d bears %d matching borders, want 2",
			adjacency.ErrUnsolvablePuzzle, corner, len(bearing))
	}
	a, b := bearing[0], bearing[1]
	switch {
	case a.Direction.Next() == b.Direction:
		return task{id: corner, side: a, target: tile.Right}, nil
	case b.Direction.Next() == a.Direction:
		return task{id: corner, side: b, target: tile.Right}, nil
	}
	return task{}, fmt.Errorf("%w: corner tile %d has opposite matching borders",
		adjacency.ErrUnsolvablePuzzle, corner)
}

// discover probes one border of a placed tile for the neighbor that
// belongs at (row,col). A boundary border or an already discovered
// neighbor yields no task.
func discover(g *adjacency.Graph, placed tile.Tile, probe tile.Direction, row, col int, target tile.Direction, seen map[int]bool) (task, bool) {
	sig := placed.BorderSignature(probe)
	partner, ok := g.PartnerOf(sig, placed.ID)
	if !ok || seen[partner] {
		return task{}, false
	}
	t, ok := g.Catalog().Get(partner)
	if !ok {
		return task{}, false
	}
	side, ok := t.SideFor(sig)
	if !ok {
		return task{}, false
	}
	seen[partner] = true
	return task{row: row, col: col, id: partner, side: side, target: target, mirror: true}, true
}

func blit(img grid.Grid, t tile.Tile, row, col int) {
	interior := t.Interior()
	inner := interior.Rows()
	for r := 0; r < inner; r++ {
		for c := 0; c < inner; c++ {
			img[row*inner+r][col*inner+c] = interior[r][c]
		}
	}
}

func frameSize(count int) (int, error) {
	if count == 0 {
		return 0, fmt.Errorf("%w: no tiles", ErrNonSquareCount)
	}
	k := sort.Search(count, func(i int) bool { return (i+1)*(i+1) > count })
	if k*k != count {
		return 0, fmt.Errorf("%w: %d tiles", ErrNonSquareCount, count)
	}
	return k, nil
}
