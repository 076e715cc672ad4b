// Package pkg provides the core libraries for Mosaic puzzle solving.
//
// # Overview
//
// Mosaic reconstructs an image from a catalog of bordered tiles, then hunts
// the result for a pattern such as the classic sea monster. The pkg
// directory is organized into three main areas:
//
//  1. Geometry and solving ([grid], [tile], [adjacency], [assemble], [pattern])
//  2. Infrastructure ([cache], [errors], [observability])
//  3. Orchestration and output ([pipeline], [source], [render])
//
// # Architecture
//
// The typical data flow through Mosaic:
//
//	Tile catalog text
//	         ↓
//	    [source] package (parse tiles)
//	         ↓
//	    [adjacency] package (match borders, find corners)
//	         ↓
//	    [assemble] package (orient and place tiles)
//	         ↓
//	    [pattern] package (search all orientations)
//	         ↓
//	    ASCII/PNG/DOT output via [render]
//
// # Quick Start
//
// Solve a puzzle end to end:
//
//	import (
//	    "context"
//	    "github.com/mosaickit/mosaic/pkg/cache"
//	    "github.com/mosaickit/mosaic/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    TilesPath: "tiles.txt",
//	})
//	fmt.Println(res.CornerProduct, res.Roughness)
//
// Or drive the stages directly:
//
//	catalog, _ := source.ParseFile("tiles.txt")
//	graph, _ := adjacency.Build(catalog)
//	assembled, _ := assemble.Assemble(graph)
//	found, _ := pattern.Search(ctx, assembled.Image, pattern.SeaMonster())
//
// # Main Packages
//
// [grid] - Pure geometry on rectangular boolean grids: rotations, mirrors,
// and the eight dihedral orientations every other package builds on.
//
// [tile] - Bordered square tiles with integer border signatures. A tile's
// eight signatures (four sides, two reading directions) drive all matching.
//
// [adjacency] - The border-sharing graph over a catalog: neighbor lookup,
// corner detection, and the corner id product.
//
// [assemble] - Work-queue reassembly. Seeds a corner, then orients and
// places neighbors outward until the frame is full, stripping borders into
// the final image.
//
// [pattern] - Mask parsing and the multi-orientation search with the
// roughness score.
//
// [source] - Tile catalog text parsing ("Tile 1:" headers over '#'/'.' rows).
//
// [cache] - Pluggable result caching with file, Redis, MongoDB, and null
// backends behind one interface.
//
// [errors] - Coded errors with user-facing messages, shared by the CLI and
// the HTTP API.
//
// [observability] - Hook points for solve and cache events with no-op
// defaults.
//
// [pipeline] - Complete solve pipeline (load → assemble → search) used by
// CLI and API. Ensures consistent behavior across all entry points.
//
// [render] - Output rendering: ASCII art, PNG rasterization, and Graphviz
// adjacency diagrams.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/assemble/... # Specific package
//	go test -run Example       # Examples only
//
// [grid]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/grid
// [tile]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/tile
// [adjacency]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/adjacency
// [assemble]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/assemble
// [pattern]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/pattern
// [source]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/source
// [cache]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/cache
// [errors]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/mosaickit/mosaic/pkg/render
package pkg
