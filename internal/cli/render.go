package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mosaickit/mosaic/pkg/adjacency"
	"github.com/mosaickit/mosaic/pkg/pipeline"
	"github.com/mosaickit/mosaic/pkg/render"
	"github.com/mosaickit/mosaic/pkg/source"
)

// Output formats for the render command. Image formats rasterize the
// assembled picture; graph formats draw the tile adjacency structure.
const (
	formatPNG = "png" // assembled image as PNG
	formatTXT = "txt" // assembled image as ASCII art
	formatDOT = "dot" // adjacency graph as Graphviz DOT
	formatSVG = "svg" // adjacency graph rendered by Graphviz
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path, defaults next to the input
	formats string // comma-separated output formats
	scale   int    // pixels per cell in PNG output
	noCache bool   // disable the result cache
	refresh bool   // bypass the cache read
}

// renderCommand creates the render command for exporting solved puzzles.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 8}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Export the assembled image or adjacency graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := validateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), txt, dot, svg (comma-separated)")
	cmd.Flags().IntVar(&opts.scale, "scale", opts.scale, "pixels per cell in PNG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, tilesPath string, formats []string, opts *renderOpts) error {
	needImage, needGraph := false, false
	for _, f := range formats {
		switch f {
		case formatPNG, formatTXT:
			needImage = true
		case formatDOT, formatSVG:
			needGraph = true
		}
	}

	var res *pipeline.Result
	if needImage {
		runner, err := c.newRunner(opts.noCache)
		if err != nil {
			return err
		}
		defer runner.Close()

		spin := newSpinnerWithContext(cmd.Context(), "Assembling image...")
		spin.Start()
		res, err = runner.Execute(cmd.Context(), pipeline.Options{
			TilesPath:  tilesPath,
			SkipSearch: true,
			Refresh:    opts.refresh,
			Logger:     c.Logger,
		})
		spin.Stop()
		if err != nil {
			return err
		}
	}

	var graph *adjacency.Graph
	if needGraph {
		catalog, err := source.ParseFile(tilesPath)
		if err != nil {
			return err
		}
		if graph, err = adjacency.Build(catalog); err != nil {
			return err
		}
	}

	for _, format := range formats {
		path := outputPath(tilesPath, opts.output, format, len(formats) > 1)
		data, err := renderFormat(res, graph, format, opts.scale)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

func renderFormat(res *pipeline.Result, graph *adjacency.Graph, format string, scale int) ([]byte, error) {
	switch format {
	case formatPNG:
		return render.PNG(res.Image, render.PNGOptions{Scale: scale})
	case formatTXT:
		return []byte(render.Text(res.Image)), nil
	case formatDOT:
		return []byte(render.ToDOT(graph)), nil
	case formatSVG:
		return render.RenderSVG(render.ToDOT(graph))
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// outputPath picks the destination file for one format. With multiple
// formats the explicit output acts as a base path and gets the format's
// extension appended.
func outputPath(input, output, format string, multi bool) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return base + "." + format
	}
	if multi {
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
	return output
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["png"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatPNG}
	}
	return strings.Split(s, ",")
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case formatPNG, formatTXT, formatDOT, formatSVG:
		default:
			return fmt.Errorf("unknown format %q (want png, txt, dot, or svg)", f)
		}
	}
	return nil
}
