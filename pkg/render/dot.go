package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/mosaickit/mosaic/pkg/adjacency"
)

// ToDOT converts a tile adjacency graph to Graphviz DOT format. Tiles
// appear as nodes labelled by ID; each shared border becomes an undirected
// edge. Corner tiles (degree two) are filled to stand out. The resulting
// DOT string can be rendered with [RenderSVG].
func ToDOT(g *adjacency.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph tiles {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, id := range g.Catalog().IDs() {
		attrs := fmt.Sprintf("label=%q", strconv.Itoa(id))
		if g.Degree(id) == 2 {
			attrs += ", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", id, attrs)
	}

	buf.WriteString("\n")
	for _, id := range g.Catalog().IDs() {
		for _, other := range g.Neighbors(id) {
			if id < other {
				fmt.Fprintf(&buf, "  %d -- %d;\n", id, other)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at
// the origin and the width/height attributes match it. Graphviz emits
// point-based dimensions that confuse some downstream viewers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
