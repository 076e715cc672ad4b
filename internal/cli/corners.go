package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mosaickit/mosaic/pkg/adjacency"
	"github.com/mosaickit/mosaic/pkg/source"
)

// cornersCommand creates the corners command: a quick look at which tiles
// anchor the frame, without assembling the image.
func (c *CLI) cornersCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "corners [file]",
		Short: "Print the corner tiles and their id product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := source.ParseFile(args[0])
			if err != nil {
				return err
			}
			graph, err := adjacency.Build(catalog)
			if err != nil {
				return err
			}

			corners, err := graph.Corners()
			if err != nil {
				return err
			}
			product, err := graph.CornerProduct()
			if err != nil {
				return err
			}

			if quiet {
				fmt.Println(product.String())
				return nil
			}

			ids := make([]string, len(corners))
			for i, id := range corners {
				ids[i] = fmt.Sprintf("%d", id)
			}
			printSuccess("Found %d corner tiles", len(corners))
			printKeyValue("corners", strings.Join(ids, ", "))
			printKeyValue("product", product.String())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the product")

	return cmd
}
