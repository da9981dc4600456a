package web

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/monoframe/internal/render"
	"github.com/rook-computer/monoframe/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	mu     sync.Mutex
	status state.Status
	routes []string
	pops   int
	inputs []string
}

func (c *fakeController) Status() state.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *fakeController) RequestRoute(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.status.Routes {
		if r == name {
			c.routes = append(c.routes, name)
			return nil
		}
	}
	return &state.RouteNotFoundError{Route: name}
}

func (c *fakeController) RequestPop() {
	c.mu.Lock()
	c.pops++
	c.mu.Unlock()
}

func (c *fakeController) RequestInput(event string) {
	c.mu.Lock()
	c.inputs = append(c.inputs, event)
	c.mu.Unlock()
}

func newController() *fakeController {
	fb := render.NewFramebuffer(16, 8)
	fb.SetPixel(0, 0, render.On)
	frame := render.NewFrame(16, 8)
	render.Pack(fb, frame)
	return &fakeController{status: state.Status{
		Route:           "ping",
		Previous:        "pong",
		Routes:          []string{"ping", "pong"},
		Width:           16,
		Height:          8,
		Frames:          12,
		ContrastTarget:  10,
		ContrastApplied: 10,
		LastDT:          16 * time.Millisecond,
		Frame:           frame,
		UpdatedAt:       time.Unix(0, 0),
	}}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	mux := NewDefaultMux(newController())
	rec := do(t, mux, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ping", got.Route)
	assert.Equal(t, "pong", got.Previous)
	assert.Equal(t, []string{"ping", "pong"}, got.Routes)
	assert.Equal(t, uint64(12), got.Frames)
	assert.InDelta(t, 16.0, got.LastFrameMS, 0.001)
	assert.Equal(t, "1970-01-01T00:00:00Z", got.UpdatedAt)

	rec = do(t, mux, http.MethodPost, "/api/v1/status", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFramePNG(t *testing.T) {
	mux := NewDefaultMux(newController())
	rec := do(t, mux, http.MethodGet, "/api/v1/frame.png?scale=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())

	r, g, b, _ := img.At(2, 2).RGBA()
	fr, fg, fb, _ := render.Foreground.RGBA()
	assert.Equal(t, []uint32{fr, fg, fb}, []uint32{r, g, b})
	r, g, b, _ = img.At(3, 0).RGBA()
	assert.Zero(t, r|g|b)
}

func TestFramePNGErrors(t *testing.T) {
	ctrl := newController()
	mux := NewDefaultMux(ctrl)
	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/api/v1/frame.png?scale=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/api/v1/frame.png?scale=99", "").Code)

	ctrl.status.Frame = nil
	assert.Equal(t, http.StatusServiceUnavailable, do(t, mux, http.MethodGet, "/api/v1/frame.png", "").Code)
}

func TestRouteRequests(t *testing.T) {
	ctrl := newController()
	mux := NewDefaultMux(ctrl)

	rec := do(t, mux, http.MethodPost, "/api/v1/route", `{"route":"pong"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"pong"}, ctrl.routes)

	rec = do(t, mux, http.MethodPost, "/api/v1/route", `{"route":"nowhere"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var apiErr apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "route_not_found", apiErr.Error)

	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodPost, "/api/v1/route", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodPost, "/api/v1/route", `not json`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, mux, http.MethodGet, "/api/v1/route", "").Code)
}

func TestPopAndInput(t *testing.T) {
	ctrl := newController()
	mux := NewDefaultMux(ctrl)

	assert.Equal(t, http.StatusAccepted, do(t, mux, http.MethodPost, "/api/v1/pop", "").Code)
	assert.Equal(t, 1, ctrl.pops)

	assert.Equal(t, http.StatusAccepted, do(t, mux, http.MethodPost, "/api/v1/input", `{"event":"select"}`).Code)
	assert.Equal(t, []string{"select"}, ctrl.inputs)
	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodPost, "/api/v1/input", `{"event":""}`).Code)
}

func TestPreviewPage(t *testing.T) {
	mux := NewDefaultMux(newController())
	rec := do(t, mux, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/frame.png")
	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodGet, "/missing", "").Code)
}

func TestDevCORS(t *testing.T) {
	h := WithDevCORS(NewDefaultMux(newController()))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/pop", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPServerStartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0"})
	s.Handler = NewDefaultMux(newController())
	require.NoError(t, s.Start(ctx))

	resp, err := http.Get("http://" + s.Addr + "/api/v1/status")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
	assert.Error(t, s.Start(ctx))
}

func TestServerConfigFromEnv(t *testing.T) {
	cfg, err := DefaultServerConfigFromEnv(":8080")
	require.NoError(t, err)
	assert.Equal(t, ServerConfig{ListenAddr: ":8080"}, cfg)

	t.Setenv(EnvListenAddr, "")
	t.Setenv(EnvDevMode, "true")
	cfg, err = DefaultServerConfigFromEnv(":8080")
	require.NoError(t, err)
	assert.Equal(t, ServerConfig{ListenAddr: "", DevMode: true}, cfg)

	t.Setenv(EnvDevMode, "perhaps")
	_, err = DefaultServerConfigFromEnv(":8080")
	assert.Error(t, err)
}
