// Package source parses tile catalogs from their textual form: blocks of
// the shape
//
//	Tile 2311:
//	..##.#..#.
//	##..#.....
//	...
//
// separated by blank lines. Marked cells are '#', clear cells are '.'.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mosaickit/mosaic/pkg/grid"
	"github.com/mosaickit/mosaic/pkg/tile"
)

// ErrBadHeader is returned when a tile block does not start with a
// well-formed "Tile <id>:" line.
var ErrBadHeader = errors.New("bad tile header")

const (
	headerPrefix = "Tile "
	headerSuffix = ":"
)

// Parse reads a tile catalog from r. Every block must carry a valid
// header and a square grid; catalog-level constraints (unique ids,
// uniform size) are enforced by [tile.NewCatalog].
func Parse(r io.Reader) (*tile.Catalog, error) {
	var (
		tiles []tile.Tile
		id    int
		rows  []string
	)
	flush := func() error {
		if id == 0 && len(rows) == 0 {
			return nil
		}
		cells, err := grid.Parse(rows)
		if err != nil {
			return fmt.Errorf("tile %d: %w", id, err)
		}
		t, err := tile.New(id, cells)
		if err != nil {
			return err
		}
		tiles = append(tiles, t)
		id, rows = 0, nil
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.TrimSpace(line) == "":
			if err := flush(); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, headerPrefix):
			if err := flush(); err != nil {
				return nil, err
			}
			parsed, err := parseHeader(line)
			if err != nil {
				return nil, err
			}
			id = parsed
		default:
			if id == 0 {
				return nil, fmt.Errorf("%w: grid row %q before any header", ErrBadHeader, line)
			}
			rows = append(rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading tiles: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return tile.NewCatalog(tiles)
}

// ParseFile reads a tile catalog from the file at path.
func ParseFile(path string) (*tile.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// ParseString reads a tile catalog from an in-memory document.
func ParseString(text string) (*tile.Catalog, error) {
	return Parse(strings.NewReader(text))
}

func parseHeader(line string) (int, error) {
	rest, ok := strings.CutPrefix(line, headerPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	rest, ok = strings.CutSuffix(rest, headerSuffix)
	if !ok {
		return 0, fmt.Errorf("%w: %q misses trailing colon", ErrBadHeader, line)
	}
	id, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q carries no positive id", ErrBadHeader, line)
	}
	return id, nil
}
