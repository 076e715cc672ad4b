// Package render turns solved puzzles into visual outputs.
//
// # Overview
//
// This package contains the rendering helpers that transform assembled
// images and adjacency graphs into shareable artifacts. It provides:
//
//   - ASCII art for terminals, with optional pattern-match highlighting
//   - PNG export of assembled images at arbitrary scale
//   - Graphviz node-link diagrams of the tile adjacency graph
//
// # ASCII
//
// [Text] renders a grid as '#' and '.' characters. [TextWithMatches]
// additionally overlays pattern matches using 'O':
//
//	res, _ := pattern.Search(ctx, img, pattern.SeaMonster())
//	fmt.Print(render.TextWithMatches(res.Image, pattern.SeaMonster(), res.Matches))
//
// # PNG
//
// [PNG] rasterizes a grid into a grayscale PNG, scaled up with
// nearest-neighbor resampling so individual cells stay crisp:
//
//	data, err := render.PNG(img, render.PNGOptions{Scale: 8})
//
// # Node-Link Diagrams
//
// [ToDOT] converts an adjacency graph to Graphviz DOT format with corner
// tiles highlighted. [RenderSVG] rasterizes the DOT source:
//
//	dot := render.ToDOT(g)
//	svg, err := render.RenderSVG(dot)
package render
