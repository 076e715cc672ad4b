// Package adjacency derives the neighbor graph of a tile catalog from
// shared border signatures.
//
// Two tiles are neighbors when any of their eight side signatures
// coincide. Signatures shared by more than two tiles make the puzzle
// ambiguous and are rejected during construction, so a built graph always
// has unambiguous matches: any signature resolves to at most one partner
// for a given tile.
package adjacency

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/mosaickit/mosaic/pkg/tile"
)

var (
	// ErrInconsistentPuzzle is returned when a border signature is shared
	// by more than two tiles, making matches ambiguous.
	ErrInconsistentPuzzle = errors.New("inconsistent puzzle")

	// ErrUnsolvablePuzzle is returned when the graph does not have the
	// corner structure of a rectangular assembly.
	ErrUnsolvablePuzzle = errors.New("unsolvable puzzle")
)

// Graph indexes which tiles expose which border signatures and which
// tiles can sit next to each other.
type Graph struct {
	catalog   *tile.Catalog
	bySig     map[tile.Signature][]int // distinct tile ids per signature, ascending
	neighbors map[int][]int            // distinct neighbor ids per tile, ascending
}

// Build constructs the adjacency graph for a catalog. It fails with
// ErrInconsistentPuzzle when any signature is exposed by more than two
// distinct tiles.
func Build(catalog *tile.Catalog) (*Graph, error) {
	g := &Graph{
		catalog:   catalog,
		bySig:     make(map[tile.Signature][]int),
		neighbors: make(map[int][]int, catalog.Len()),
	}
	for _, t := range catalog.Tiles() {
		for _, sig := range t.Signatures() {
			ids := g.bySig[sig]
			// A tile exposes the same signature twice when a border is a
			// palindrome; count each tile once.
			if len(ids) == 0 || ids[len(ids)-1] != t.ID {
				g.bySig[sig] = append(ids, t.ID)
			}
		}
	}
	for sig, ids := range g.bySig {
		if len(ids) > 2 {
			return nil, fmt.Errorf("%w: signature %d shared by tiles %v", ErrInconsistentPuzzle, sig, ids)
		}
		if len(ids) == 2 {
			g.link(ids[0], ids[1])
		}
	}
	for id := range g.neighbors {
		sort.Ints(g.neighbors[id])
	}
	return g, nil
}

func (g *Graph) link(a, b int) {
	if !contains(g.neighbors[a], b) {
		g.neighbors[a] = append(g.neighbors[a], b)
		g.neighbors[b] = append(g.neighbors[b], a)
	}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Catalog returns the catalog the graph was built from.
func (g *Graph) Catalog() *tile.Catalog { return g.catalog }

// Neighbors returns the ids of the tiles adjacent to id, ascending.
func (g *Graph) Neighbors(id int) []int {
	out := make([]int, len(g.neighbors[id]))
	copy(out, g.neighbors[id])
	return out
}

// Degree returns the number of distinct neighbors of id.
func (g *Graph) Degree(id int) int { return len(g.neighbors[id]) }

// TilesWith returns the ids of the tiles exposing sig, ascending.
func (g *Graph) TilesWith(sig tile.Signature) []int {
	out := make([]int, len(g.bySig[sig]))
	copy(out, g.bySig[sig])
	return out
}

// PartnerOf returns the one other tile exposing sig besides id. The second
// return is false when sig is on the assembly boundary (only id exposes
// it) or unknown.
func (g *Graph) PartnerOf(sig tile.Signature, id int) (int, bool) {
	for _, other := range g.bySig[sig] {
		if other != id {
			return other, true
		}
	}
	return 0, false
}

// Corners returns the ids of the four tiles with exactly two neighbors,
// ascending. Any other count means the catalog cannot form a rectangle
// with unique corners and yields ErrUnsolvablePuzzle.
func (g *Graph) Corners() ([]int, error) {
	var corners []int
	for _, id := range g.catalog.IDs() {
		if g.Degree(id) == 2 {
			corners = append(corners, id)
		}
	}
	if len(corners) != 4 {
		return nil, fmt.Errorf("%w: found %d corner tiles, want 4", ErrUnsolvablePuzzle, len(corners))
	}
	return corners, nil
}

// CornerProduct returns the product of the four corner tile ids. The
// result exceeds 64 bits for large ids, hence the big integer.
func (g *Graph) CornerProduct() (*big.Int, error) {
	corners, err := g.Corners()
	if err != nil {
		return nil, err
	}
	product := big.NewInt(1)
	for _, id := range corners {
		product.Mul(product, big.NewInt(int64(id)))
	}
	return product, nil
}
