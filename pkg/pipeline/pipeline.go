// Package pipeline provides the core solve pipeline for mosaic.
//
// This package implements the complete load → assemble → search pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse the tile catalog and build the adjacency graph
//  2. Assemble: Reconstruct the full image from a corner outward
//  3. Search: Count pattern occurrences across the image orientations
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    TilesPath: "tiles.txt",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Roughness)
package pipeline

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mosaickit/mosaic/pkg/cache"
	"github.com/mosaickit/mosaic/pkg/grid"
	"github.com/mosaickit/mosaic/pkg/pattern"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Cache TTLs per entry kind.
const (
	// TTLResult is how long full solve results stay cached. Results are
	// deterministic in their inputs, so the TTL only bounds storage.
	TTLResult = 7 * 24 * time.Hour

	// TTLImage is how long assembled images stay cached.
	TTLImage = 7 * 24 * time.Hour
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the solve pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// TilesPath is a file to read the tile catalog from. Mutually
	// exclusive with Tiles.
	TilesPath string `json:"tiles_path,omitempty"`

	// Tiles is the raw tile catalog text, used by the API surface.
	Tiles string `json:"tiles,omitempty"`

	// Pattern overrides the built-in sea monster mask. Each entry is one
	// pattern row; '#' cells must match, ' ' and '.' are wildcards.
	Pattern []string `json:"pattern,omitempty"`

	// SkipSearch stops after assembly; Matches, Roughness, and Found
	// stay zero-valued.
	SkipSearch bool `json:"skip_search,omitempty"`

	// Refresh bypasses the cache read (the result is still written).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.TilesPath == "" && o.Tiles == "" {
		return fmt.Errorf("tiles_path or tiles is required")
	}
	if o.TilesPath != "" && o.Tiles != "" {
		return fmt.Errorf("tiles_path and tiles are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SearchPattern returns the pattern to search for: the override when set,
// the built-in sea monster otherwise.
func (o *Options) SearchPattern() (*pattern.Pattern, error) {
	if len(o.Pattern) == 0 {
		return pattern.SeaMonster(), nil
	}
	return pattern.Parse(o.Pattern)
}

// ResultKeyOpts returns cache key options for the solve result.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Pattern:    strings.Join(o.Pattern, "\n"),
		SkipSearch: o.SkipSearch,
	}
}

// tilesText loads the catalog text from whichever source is configured.
func (o *Options) tilesText() (string, string, error) {
	if o.Tiles != "" {
		return o.Tiles, "inline", nil
	}
	data, err := os.ReadFile(o.TilesPath)
	if err != nil {
		return "", "", err
	}
	return string(data), o.TilesPath, nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string `json:"run_id"`

	// CatalogHash is the content hash of the tile catalog text.
	CatalogHash string `json:"catalog_hash"`

	// FrameSize is the side length of the tile arrangement (k tiles).
	FrameSize int `json:"frame_size"`

	// CornerProduct is the product of the four corner tile ids.
	CornerProduct *big.Int `json:"-"`

	// Image is the assembled borderless image.
	Image grid.Grid `json:"-"`

	// Layout is the tile id at each frame position.
	Layout [][]int `json:"layout"`

	// Matches is the occurrence count in the best orientation.
	Matches int `json:"matches"`

	// Orientation indexes the winning orientation of the image.
	Orientation int `json:"orientation"`

	// Found reports whether any orientation held a match.
	Found bool `json:"found"`

	// Roughness is the count of marked cells not covered by matches.
	Roughness int `json:"roughness"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks whether the result came from cache.
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TileCount    int           `json:"tile_count"`
	ImageSize    int           `json:"image_size"` // side length in cells
	LoadTime     time.Duration `json:"load_time"`
	AssembleTime time.Duration `json:"assemble_time"`
	SearchTime   time.Duration `json:"search_time"`
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	ResultHit bool `json:"result_hit"` // Whether the result came from cache
	ImageHit  bool `json:"image_hit"`  // Whether the assembled image came from cache
}
