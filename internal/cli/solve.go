package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mosaickit/mosaic/pkg/grid"
	"github.com/mosaickit/mosaic/pkg/pattern"
	"github.com/mosaickit/mosaic/pkg/pipeline"
	"github.com/mosaickit/mosaic/pkg/render"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	patternFile string // file with a custom pattern mask
	skipSearch  bool   // stop after assembly
	refresh     bool   // bypass the cache read
	noCache     bool   // disable the cache entirely
	showImage   bool   // print the assembled image with matches overlaid
	jsonOut     bool   // machine-readable output
}

// solveCommand creates the solve command: the full pipeline from catalog
// to pattern search.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Assemble a tile catalog and search it for a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.patternFile, "pattern", "p", "", "file with a custom pattern mask")
	cmd.Flags().BoolVar(&opts.skipSearch, "skip-search", false, "assemble only, skip the pattern search")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.showImage, "image", false, "print the assembled image with matches overlaid")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the result as JSON")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, tilesPath string, opts *solveOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		TilesPath:  tilesPath,
		SkipSearch: opts.skipSearch,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	}
	if pipeOpts.Pattern, err = c.patternRows(opts.patternFile); err != nil {
		return err
	}

	spin := newSpinnerWithContext(cmd.Context(), "Solving puzzle...")
	spin.Start()
	res, err := runner.Execute(cmd.Context(), pipeOpts)
	spin.Stop()
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return printSolveJSON(res)
	}

	searchPattern, err := pipeOpts.SearchPattern()
	if err != nil {
		return err
	}
	printSolveResult(res, searchPattern, opts)
	return nil
}

// patternRows reads a pattern mask file into rows. The config file's
// pattern takes effect when no file is given.
func (c *CLI) patternRows(path string) ([]string, error) {
	if path == "" {
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, err
		}
		return cfg.Pattern, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern: %w", err)
	}
	rows := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	return rows, nil
}

func printSolveResult(res *pipeline.Result, p *pattern.Pattern, opts *solveOpts) {
	printSuccess("Assembled %dx%d tile frame", res.FrameSize, res.FrameSize)
	printKeyValue("corners", res.CornerProduct.String())
	if !opts.skipSearch {
		printKeyValue("matches", fmt.Sprintf("%d", res.Matches))
		printKeyValue("roughness", fmt.Sprintf("%d", res.Roughness))
		if !res.Found {
			printInfo("No pattern match in any orientation")
		}
	}
	printStats(res.Stats.TileCount, res.Stats.ImageSize, res.CacheInfo.ResultHit)

	if opts.showImage && res.Image.Rows() > 0 {
		fmt.Println()
		if res.Found {
			// Show the winning orientation so the match overlay lines up.
			oriented := grid.Orientations(res.Image)[res.Orientation]
			fmt.Print(render.TextWithMatches(oriented, p, pattern.FindMatches(oriented, p)))
		} else {
			fmt.Print(render.Text(res.Image))
		}
	}
}

func printSolveJSON(res *pipeline.Result) error {
	out := struct {
		*pipeline.Result
		CornerProduct string   `json:"corner_product"`
		Image         []string `json:"image,omitempty"`
	}{
		Result:        res,
		CornerProduct: res.CornerProduct.String(),
	}
	if res.Image.Rows() > 0 {
		out.Image = strings.Split(res.Image.String(), "\n")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
