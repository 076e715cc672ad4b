// Package fixture embeds the shared nine-tile reference puzzle used by
// tests across the module, together with the expected 24x24 assembled
// image. The expected image is one fixed orientation; assembled output is
// compared up to the eight dihedral orientations.
package fixture

import (
	_ "embed"
	"strings"

	"github.com/mosaickit/mosaic/pkg/grid"
)

//go:embed sample_tiles.txt
var SampleTiles string

//go:embed reference_image.txt
var referenceImage string

// Known results for the sample puzzle.
const (
	CornerProduct = 20899048083289
	MonsterCount  = 2
	Roughness     = 273
)

// ReferenceImage parses the expected assembled image.
func ReferenceImage() grid.Grid {
	g, err := grid.Parse(strings.Split(strings.TrimSpace(referenceImage), "\n"))
	if err != nil {
		panic(err)
	}
	return g
}
