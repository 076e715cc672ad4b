package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mosaickit/mosaic/pkg/adjacency"
	"github.com/mosaickit/mosaic/pkg/assemble"
	"github.com/mosaickit/mosaic/pkg/cache"
	"github.com/mosaickit/mosaic/pkg/observability"
	"github.com/mosaickit/mosaic/pkg/pattern"
	"github.com/mosaickit/mosaic/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → assemble → search pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	text, input, err := opts.tilesText()
	if err != nil {
		return nil, Classify(fmt.Errorf("reading tiles: %w", err))
	}
	catalogHash := cache.Hash([]byte(text))
	resultKey := r.Keyer.ResultKey(catalogHash, opts.ResultKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, resultKey); err == nil && hit {
			if cached, err := decodeResult(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				cached.RunID = uuid.NewString()
				cached.CacheInfo.ResultHit = true
				r.Logger.Info("solve result from cache", "hash", catalogHash[:12])
				return cached, nil
			}
			// Corrupt entry, drop it and recompute.
			_ = r.Cache.Delete(ctx, resultKey)
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	result := &Result{
		RunID:       uuid.NewString(),
		CatalogHash: catalogHash,
	}

	// The assembled image depends only on the catalog, so a previous run
	// with any pattern (or none) can supply stages 1-2.
	imageKey := r.Keyer.ImageKey(catalogHash)
	if !opts.Refresh && r.restoreImage(ctx, imageKey, result) {
		r.Logger.Info("assembled image from cache", "hash", catalogHash[:12])
	} else {
		// Stage 1: Load
		loadStart := time.Now()
		observability.Solve().OnLoadStart(ctx, input)
		graph, err := r.Load(ctx, text)
		result.Stats.LoadTime = time.Since(loadStart)
		if graph != nil {
			result.Stats.TileCount = graph.Catalog().Len()
		}
		observability.Solve().OnLoadComplete(ctx, input, result.Stats.TileCount, result.Stats.LoadTime, err)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}

		product, err := graph.CornerProduct()
		if err != nil {
			return nil, fmt.Errorf("load: %w", Classify(err))
		}
		result.CornerProduct = product

		r.Logger.Info("loaded tiles",
			"tiles", result.Stats.TileCount,
			"corner_product", product.String(),
			"duration", result.Stats.LoadTime)

		// Stage 2: Assemble
		assembleStart := time.Now()
		observability.Solve().OnAssembleStart(ctx, result.Stats.TileCount)
		assembled, err := r.Assemble(ctx, graph)
		result.Stats.AssembleTime = time.Since(assembleStart)
		observability.Solve().OnAssembleComplete(ctx, result.Stats.TileCount, result.Stats.AssembleTime, err)
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		result.Image = assembled.Image
		result.Layout = assembled.Layout
		result.FrameSize = len(assembled.Layout)
		result.Stats.ImageSize = assembled.Image.Rows()

		r.Logger.Info("assembled image",
			"frame", result.FrameSize,
			"size", result.Stats.ImageSize,
			"duration", result.Stats.AssembleTime)

		r.storeImage(ctx, imageKey, result)
	}

	// Stage 3: Search
	if !opts.SkipSearch {
		mask, err := opts.SearchPattern()
		if err != nil {
			return nil, fmt.Errorf("search: %w", Classify(err))
		}
		searchStart := time.Now()
		observability.Solve().OnSearchStart(ctx, result.Stats.ImageSize)
		found, err := pattern.Search(ctx, result.Image, mask)
		result.Stats.SearchTime = time.Since(searchStart)
		if err != nil {
			observability.Solve().OnSearchComplete(ctx, 0, result.Stats.SearchTime, err)
			return nil, fmt.Errorf("search: %w", err)
		}
		observability.Solve().OnSearchComplete(ctx, found.Count, result.Stats.SearchTime, nil)
		result.Matches = found.Count
		result.Orientation = found.Orientation
		result.Found = found.Found
		result.Roughness = found.Roughness

		r.Logger.Info("searched pattern",
			"matches", found.Count,
			"roughness", found.Roughness,
			"duration", result.Stats.SearchTime)
	}

	// Cache the result. Transient backend failures are retried, anything
	// else only costs the next run a recompute.
	if data, err := encodeResult(result); err == nil {
		err := cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, resultKey, data, TTLResult)
		})
		if err == nil {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}

	return result, nil
}

// restoreImage fills result from a cached assembly, reporting success.
// Corrupt entries are dropped.
func (r *Runner) restoreImage(ctx context.Context, key string, result *Result) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "image")
		return false
	}
	cached, err := decodeResult(data)
	if err != nil || cached.Image.Rows() == 0 || cached.CornerProduct == nil {
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "image")
		return false
	}
	observability.Cache().OnCacheHit(ctx, "image")
	result.CornerProduct = cached.CornerProduct
	result.Image = cached.Image
	result.Layout = cached.Layout
	result.FrameSize = cached.FrameSize
	result.Stats.TileCount = cached.Stats.TileCount
	result.Stats.ImageSize = cached.Stats.ImageSize
	result.CacheInfo.ImageHit = true
	return true
}

// storeImage caches the assembly stages of result, without search fields.
func (r *Runner) storeImage(ctx context.Context, key string, result *Result) {
	entry := &Result{
		CatalogHash:   result.CatalogHash,
		FrameSize:     result.FrameSize,
		CornerProduct: result.CornerProduct,
		Image:         result.Image,
		Layout:        result.Layout,
	}
	entry.Stats.TileCount = result.Stats.TileCount
	entry.Stats.ImageSize = result.Stats.ImageSize

	data, err := encodeResult(entry)
	if err != nil {
		return
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, TTLImage)
	})
	if err == nil {
		observability.Cache().OnCacheSet(ctx, "image", len(data))
	}
}

// Load parses the catalog text and builds its adjacency graph.
func (r *Runner) Load(ctx context.Context, text string) (*adjacency.Graph, error) {
	catalog, err := source.ParseString(text)
	if err != nil {
		return nil, Classify(err)
	}
	graph, err := adjacency.Build(catalog)
	if err != nil {
		return nil, Classify(err)
	}
	return graph, nil
}

// Assemble reconstructs the image from an adjacency graph.
func (r *Runner) Assemble(ctx context.Context, graph *adjacency.Graph) (*assemble.Result, error) {
	res, err := assemble.Assemble(graph)
	if err != nil {
		return nil, Classify(err)
	}
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
