package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	mosaicerrors "github.com/mosaickit/mosaic/pkg/errors"
	"github.com/mosaickit/mosaic/pkg/pattern"
	"github.com/mosaickit/mosaic/pkg/pipeline"
	"github.com/mosaickit/mosaic/pkg/render"
)

// maxBodyBytes caps request bodies; catalogs are text and stay small.
const maxBodyBytes = 4 << 20

// solveRequest is the JSON body of POST /v1/solve and /v1/render.
type solveRequest struct {
	Tiles      string   `json:"tiles"`
	Pattern    []string `json:"pattern,omitempty"`
	SkipSearch bool     `json:"skip_search,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`
}

// solveResponse is the JSON body returned by POST /v1/solve.
type solveResponse struct {
	RunID         string              `json:"run_id"`
	CatalogHash   string              `json:"catalog_hash"`
	FrameSize     int                 `json:"frame_size"`
	CornerProduct string              `json:"corner_product"`
	Layout        [][]int             `json:"layout"`
	Image         []string            `json:"image,omitempty"`
	Matches       int                 `json:"matches"`
	Orientation   int                 `json:"orientation"`
	Found         bool                `json:"found"`
	Roughness     int                 `json:"roughness"`
	Stats         pipeline.Stats      `json:"stats"`
	CacheInfo     pipeline.CacheInfo  `json:"cache_info"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSolveRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.opts.Runner.Execute(r.Context(), pipeline.Options{
		Tiles:      req.Tiles,
		Pattern:    req.Pattern,
		SkipSearch: req.SkipSearch,
		Refresh:    req.Refresh,
		Logger:     s.opts.Logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := solveResponse{
		RunID:         res.RunID,
		CatalogHash:   res.CatalogHash,
		FrameSize:     res.FrameSize,
		CornerProduct: res.CornerProduct.String(),
		Layout:        res.Layout,
		Matches:       res.Matches,
		Orientation:   res.Orientation,
		Found:         res.Found,
		Roughness:     res.Roughness,
		Stats:         res.Stats,
		CacheInfo:     res.CacheInfo,
	}
	if res.Image.Rows() > 0 {
		resp.Image = append(resp.Image, imageRows(res)...)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSolveRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.opts.Runner.Execute(r.Context(), pipeline.Options{
		Tiles:      req.Tiles,
		SkipSearch: true,
		Refresh:    req.Refresh,
		Logger:     s.opts.Logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := render.PNG(res.Image, render.PNGOptions{})
	if err != nil {
		writeError(w, mosaicerrors.Wrap(mosaicerrors.ErrCodeInternal, err, "rendering image"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handlePattern(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, pattern.SeaMonster().String())
}

func decodeSolveRequest(w http.ResponseWriter, r *http.Request) (solveRequest, error) {
	var req solveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, mosaicerrors.Wrap(mosaicerrors.ErrCodeInvalidInput, err, "decoding request body")
	}
	if req.Tiles == "" {
		return req, mosaicerrors.New(mosaicerrors.ErrCodeInvalidInput, "tiles is required")
	}
	return req, nil
}

func imageRows(res *pipeline.Result) []string {
	return strings.Split(res.Image.String(), "\n")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := mosaicerrors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: mosaicerrors.UserMessage(err),
		Code:  string(code),
	})
}

// statusFor maps domain error codes to HTTP status codes.
func statusFor(code mosaicerrors.Code) int {
	switch code {
	case mosaicerrors.ErrCodeInvalidInput,
		mosaicerrors.ErrCodeInvalidFormat,
		mosaicerrors.ErrCodeInvalidTile,
		mosaicerrors.ErrCodeDuplicateTile,
		mosaicerrors.ErrCodeInvalidPattern,
		mosaicerrors.ErrCodeInvalidPath,
		mosaicerrors.ErrCodeNonSquareTileset:
		return http.StatusBadRequest
	case mosaicerrors.ErrCodeInconsistentPuzzle,
		mosaicerrors.ErrCodeUnsolvablePuzzle,
		mosaicerrors.ErrCodeAssemblyConflict:
		return http.StatusUnprocessableEntity
	case mosaicerrors.ErrCodeNotFound, mosaicerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case mosaicerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
