package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mosaickit/mosaic/internal/fixture"
	"github.com/mosaickit/mosaic/pkg/cache"
	mosaicerrors "github.com/mosaickit/mosaic/pkg/errors"
	"github.com/mosaickit/mosaic/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	t.Cleanup(func() { _ = runner.Close() })

	s, err := New(Options{
		Runner: runner,
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewRequiresRunner(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New() expected error without runner")
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestSolve(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/v1/solve", solveRequest{Tiles: fixture.SampleTiles})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp solveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if want := strconv.FormatInt(fixture.CornerProduct, 10); resp.CornerProduct != want {
		t.Errorf("corner product = %s, want %s", resp.CornerProduct, want)
	}
	if resp.FrameSize != 3 {
		t.Errorf("frame size = %d, want 3", resp.FrameSize)
	}
	if resp.Matches != fixture.MonsterCount {
		t.Errorf("matches = %d, want %d", resp.Matches, fixture.MonsterCount)
	}
	if resp.Roughness != fixture.Roughness {
		t.Errorf("roughness = %d, want %d", resp.Roughness, fixture.Roughness)
	}
	if len(resp.Image) != 24 || len(resp.Image[0]) != 24 {
		t.Errorf("image dimensions = %dx%d, want 24x24",
			len(resp.Image), len(resp.Image[0]))
	}
	if resp.RunID == "" {
		t.Error("run_id is empty")
	}
}

func TestSolveSkipSearch(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/v1/solve", solveRequest{Tiles: fixture.SampleTiles, SkipSearch: true})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp solveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Matches != 0 || resp.Found {
		t.Errorf("matches = %d, found = %v, want zero values", resp.Matches, resp.Found)
	}
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "empty body",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "malformed json",
			body:       `{"tiles": `,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "unknown field",
			body:       `{"tiles": "x", "bogus": true}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "bad catalog",
			body:       `{"tiles": "not a tile header"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FORMAT",
		},
		{
			name:       "unsolvable tileset",
			body:       `{"tiles": "Tile 1:\n##\n##\n\nTile 2:\n##\n.#\n"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "UNSOLVABLE_PUZZLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			req := httptest.NewRequest(http.MethodPost, "/v1/solve", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
			if resp.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/v1/render", solveRequest{Tiles: fixture.SampleTiles})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	// 24 cells at the default 8px scale.
	if got := img.Bounds().Dx(); got != 192 {
		t.Errorf("width = %d, want 192", got)
	}
}

func TestPattern(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/pattern", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "##    ##    ##") {
		t.Errorf("pattern body = %q missing monster row", rec.Body.String())
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"INVALID_INPUT", http.StatusBadRequest},
		{"UNSOLVABLE_PUZZLE", http.StatusUnprocessableEntity},
		{"FILE_NOT_FOUND", http.StatusNotFound},
		{"TIMEOUT", http.StatusGatewayTimeout},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(mosaicerrors.Code(tt.code)); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
