package pipeline

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/mosaickit/mosaic/internal/fixture"
	"github.com/mosaickit/mosaic/pkg/cache"
	mosaicerrors "github.com/mosaickit/mosaic/pkg/errors"
	"github.com/mosaickit/mosaic/pkg/grid"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestExecuteSample(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{Tiles: fixture.SampleTiles})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID empty")
	}
	if want := big.NewInt(fixture.CornerProduct); res.CornerProduct.Cmp(want) != 0 {
		t.Errorf("CornerProduct = %s, want %s", res.CornerProduct, want)
	}
	if res.FrameSize != 3 || res.Stats.TileCount != 9 {
		t.Errorf("FrameSize = %d TileCount = %d, want 3 and 9", res.FrameSize, res.Stats.TileCount)
	}
	if res.Stats.ImageSize != 24 {
		t.Errorf("ImageSize = %d, want 24", res.Stats.ImageSize)
	}
	if res.Matches != fixture.MonsterCount || !res.Found {
		t.Errorf("Matches = %d Found = %v, want %d and true", res.Matches, res.Found, fixture.MonsterCount)
	}
	if res.Roughness != fixture.Roughness {
		t.Errorf("Roughness = %d, want %d", res.Roughness, fixture.Roughness)
	}
	if res.CacheInfo.ResultHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteCacheHit(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Tiles: fixture.SampleTiles}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := r.Execute(ctx, Options{Tiles: fixture.SampleTiles})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ResultHit {
		t.Fatal("second run should hit the cache")
	}
	if second.Roughness != first.Roughness || second.Matches != first.Matches {
		t.Error("cached result differs from computed result")
	}
	if second.RunID == first.RunID {
		t.Error("cached result should still get a fresh run id")
	}

	// Refresh bypasses the cache read.
	third, err := r.Execute(ctx, Options{Tiles: fixture.SampleTiles, Refresh: true})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.ResultHit {
		t.Error("refresh run should not report a cache hit")
	}
}

func TestExecuteImageCacheHit(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	// An assembly-only run caches the image under its catalog key.
	first, err := r.Execute(ctx, Options{Tiles: fixture.SampleTiles, SkipSearch: true})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ImageHit {
		t.Error("first run should assemble fresh")
	}

	// A full solve with the same catalog reuses the image but must still
	// run the search: the skip-search result lives under a different key.
	second, err := r.Execute(ctx, Options{Tiles: fixture.SampleTiles})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if second.CacheInfo.ResultHit {
		t.Error("skip-search result must not satisfy a full solve")
	}
	if !second.CacheInfo.ImageHit {
		t.Error("second run should reuse the cached image")
	}
	if second.Matches != fixture.MonsterCount || second.Roughness != fixture.Roughness {
		t.Errorf("search on cached image = %d/%d, want %d/%d",
			second.Matches, second.Roughness, fixture.MonsterCount, fixture.Roughness)
	}
	if want := big.NewInt(fixture.CornerProduct); second.CornerProduct.Cmp(want) != 0 {
		t.Errorf("CornerProduct = %s, want %s", second.CornerProduct, want)
	}
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.txt")
	if err := os.WriteFile(path, []byte(fixture.SampleTiles), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{TilesPath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Roughness != fixture.Roughness {
		t.Errorf("Roughness = %d, want %d", res.Roughness, fixture.Roughness)
	}
}

func TestExecuteMissingFile(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Execute(context.Background(), Options{TilesPath: filepath.Join(t.TempDir(), "absent.txt")})
	if !mosaicerrors.Is(err, mosaicerrors.ErrCodeFileNotFound) {
		t.Fatalf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExecuteSkipSearch(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{Tiles: fixture.SampleTiles, SkipSearch: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Matches != 0 || res.Found || res.Roughness != 0 {
		t.Errorf("search stage should be skipped, got matches=%d found=%v roughness=%d",
			res.Matches, res.Found, res.Roughness)
	}
	if res.Stats.ImageSize != 24 {
		t.Errorf("assembly should still run, ImageSize = %d", res.Stats.ImageSize)
	}
}

func TestExecuteCustomPattern(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{
		Tiles:   fixture.SampleTiles,
		Pattern: []string{"##", "##"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Found || res.Matches == 0 {
		t.Error("2x2 block pattern should occur in the sample image")
	}
}

func TestExecuteOptionErrors(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	tests := []struct {
		name string
		opts Options
	}{
		{"no input", Options{}},
		{"both inputs", Options{Tiles: "x", TilesPath: "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Execute(ctx, tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExecuteClassifiedErrors(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	tests := []struct {
		name  string
		tiles string
		code  mosaicerrors.Code
	}{
		{"bad format", "not a tile file", mosaicerrors.ErrCodeInvalidFormat},
		{"duplicate id", "Tile 7:\n##\n.#\n\nTile 7:\n..\n..\n", mosaicerrors.ErrCodeDuplicateTile},
		{"rectangular tile", "Tile 7:\n###\n...\n", mosaicerrors.ErrCodeInvalidTile},
		{
			"three-way signature",
			"Tile 1:\n##\n..\n\nTile 2:\n##\n.#\n\nTile 3:\n##\n#.\n",
			mosaicerrors.ErrCodeInconsistentPuzzle,
		},
		{"single tile", "Tile 1:\n###\n...\n...\n", mosaicerrors.ErrCodeUnsolvablePuzzle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, Options{Tiles: tt.tiles})
			if !mosaicerrors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecuteBadPattern(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Execute(context.Background(), Options{
		Tiles:   fixture.SampleTiles,
		Pattern: []string{"#x"},
	})
	if !mosaicerrors.Is(err, mosaicerrors.ErrCodeInvalidPattern) {
		t.Fatalf("err = %v, want INVALID_PATTERN", err)
	}
}

func TestResultCodecRoundTrip(t *testing.T) {
	img, err := grid.Parse([]string{"#.", ".#"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	in := &Result{
		CatalogHash:   "abc",
		FrameSize:     2,
		CornerProduct: big.NewInt(20899048083289),
		Image:         img,
		Layout:        [][]int{{1, 2}, {3, 4}},
		Matches:       2,
		Orientation:   1,
		Found:         true,
		Roughness:     273,
	}
	in.Stats.TileCount = 4
	in.Stats.ImageSize = 2

	data, err := encodeResult(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := decodeResult(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.CornerProduct.Cmp(in.CornerProduct) != 0 {
		t.Errorf("CornerProduct = %s, want %s", out.CornerProduct, in.CornerProduct)
	}
	if !out.Image.Equal(in.Image) {
		t.Error("image did not survive the round trip")
	}
	if out.Roughness != in.Roughness || out.Matches != in.Matches || !out.Found {
		t.Errorf("result fields lost: %+v", out)
	}
	if out.Layout[1][0] != 3 {
		t.Errorf("layout lost: %v", out.Layout)
	}
}

func TestDecodeResultCorrupt(t *testing.T) {
	if _, err := decodeResult([]byte("{not json")); err == nil {
		t.Error("corrupt json should fail")
	}
	if _, err := decodeResult([]byte(`{"corner_product":"xyz"}`)); err == nil {
		t.Error("bad corner product should fail")
	}
	if _, err := decodeResult([]byte(`{"image":["#x"]}`)); err == nil {
		t.Error("bad image row should fail")
	}
}
