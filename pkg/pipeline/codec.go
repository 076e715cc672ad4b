package pipeline

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/mosaickit/mosaic/pkg/grid"
)

// resultPayload is the cacheable form of a Result. The image is stored as
// its textual rows and the corner product as a decimal string, keeping
// entries readable and backend-agnostic.
type resultPayload struct {
	CatalogHash   string  `json:"catalog_hash"`
	FrameSize     int     `json:"frame_size"`
	CornerProduct string  `json:"corner_product"`
	Image         []string `json:"image"`
	Layout        [][]int `json:"layout"`
	Matches       int     `json:"matches"`
	Orientation   int     `json:"orientation"`
	Found         bool    `json:"found"`
	Roughness     int     `json:"roughness"`
	TileCount     int     `json:"tile_count"`
	ImageSize     int     `json:"image_size"`
}

func encodeResult(res *Result) ([]byte, error) {
	payload := resultPayload{
		CatalogHash: res.CatalogHash,
		FrameSize:   res.FrameSize,
		Layout:      res.Layout,
		Matches:     res.Matches,
		Orientation: res.Orientation,
		Found:       res.Found,
		Roughness:   res.Roughness,
		TileCount:   res.Stats.TileCount,
		ImageSize:   res.Stats.ImageSize,
	}
	if res.CornerProduct != nil {
		payload.CornerProduct = res.CornerProduct.String()
	}
	if res.Image.Rows() > 0 {
		payload.Image = strings.Split(res.Image.String(), "\n")
	}
	return json.Marshal(payload)
}

func decodeResult(data []byte) (*Result, error) {
	var payload resultPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	res := &Result{
		CatalogHash: payload.CatalogHash,
		FrameSize:   payload.FrameSize,
		Layout:      payload.Layout,
		Matches:     payload.Matches,
		Orientation: payload.Orientation,
		Found:       payload.Found,
		Roughness:   payload.Roughness,
	}
	res.Stats.TileCount = payload.TileCount
	res.Stats.ImageSize = payload.ImageSize
	if payload.CornerProduct != "" {
		product, ok := new(big.Int).SetString(payload.CornerProduct, 10)
		if !ok {
			return nil, fmt.Errorf("invalid corner product %q", payload.CornerProduct)
		}
		res.CornerProduct = product
	}
	if len(payload.Image) > 0 {
		img, err := grid.Parse(payload.Image)
		if err != nil {
			return nil, fmt.Errorf("invalid cached image: %w", err)
		}
		res.Image = img
	}
	return res, nil
}
