package tile

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateID is returned when two tiles in a catalog share an id.
	ErrDuplicateID = errors.New("duplicate tile id")

	// ErrMixedSizes is returned when tiles in a catalog do not all share
	// the same side length.
	ErrMixedSizes = errors.New("mixed tile sizes")
)

// Catalog is a validated collection of same-sized tiles keyed by id.
type Catalog struct {
	tiles map[int]Tile
	size  int // shared side length N, 0 when empty
}

// NewCatalog validates and indexes a set of tiles: every id must be unique
// and every tile must share the same side length.
func NewCatalog(tiles []Tile) (*Catalog, error) {
	c := &Catalog{tiles: make(map[int]Tile, len(tiles))}
	for _, t := range tiles {
		if _, ok := c.tiles[t.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, t.ID)
		}
		if c.size == 0 {
			c.size = t.Size()
		} else if t.Size() != c.size {
			return nil, fmt.Errorf("%w: tile %d is %dx%d, want %dx%d",
				ErrMixedSizes, t.ID, t.Size(), t.Size(), c.size, c.size)
		}
		c.tiles[t.ID] = t
	}
	return c, nil
}

// Len returns the number of tiles.
func (c *Catalog) Len() int { return len(c.tiles) }

// TileSize returns the shared side length N, or 0 for an empty catalog.
func (c *Catalog) TileSize() int { return c.size }

// Get returns the tile with the given id.
func (c *Catalog) Get(id int) (Tile, bool) {
	t, ok := c.tiles[id]
	return t, ok
}

// IDs returns all tile ids in ascending order.
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.tiles))
	for id := range c.tiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Tiles returns all tiles ordered by ascending id.
func (c *Catalog) Tiles() []Tile {
	ids := c.IDs()
	tiles := make([]Tile, len(ids))
	for i, id := range ids {
		tiles[i] = c.tiles[id]
	}
	return tiles
}
