package web

import (
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rook-computer/monoframe/internal/render"
	"github.com/rook-computer/monoframe/internal/state"
	xdraw "golang.org/x/image/draw"
)

// Controller is the part of the app the API drives. Requests are applied on
// the render loop, so handlers never touch pages directly.
type Controller interface {
	Status() state.Status
	RequestRoute(name string) error
	RequestPop()
	RequestInput(event string)
}

const maxPreviewScale = 8

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type statusResponse struct {
	Route           string   `json:"route"`
	Previous        string   `json:"previous"`
	Routes          []string `json:"routes"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	Frames          uint64   `json:"frames"`
	ContrastTarget  int      `json:"contrastTarget"`
	ContrastApplied int      `json:"contrastApplied"`
	LastFrameMS     float64  `json:"lastFrameMs"`
	Overruns        uint64   `json:"overruns"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

type routeRequest struct {
	Route string `json:"route"`
}

type inputRequest struct {
	Event string `json:"event"`
}

func apiV1Router(ctrl Controller) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, ctrl) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, ctrl) })
	mux.HandleFunc("/route", func(w http.ResponseWriter, r *http.Request) { handleRoute(w, r, ctrl) })
	mux.HandleFunc("/pop", func(w http.ResponseWriter, r *http.Request) { handlePop(w, r, ctrl) })
	mux.HandleFunc("/input", func(w http.ResponseWriter, r *http.Request) { handleInput(w, r, ctrl) })
	return mux
}

func handleStatus(w http.ResponseWriter, r *http.Request, ctrl Controller) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	snap := ctrl.Status()
	resp := statusResponse{
		Route:           snap.Route,
		Previous:        snap.Previous,
		Routes:          snap.Routes,
		Width:           snap.Width,
		Height:          snap.Height,
		Frames:          snap.Frames,
		ContrastTarget:  snap.ContrastTarget,
		ContrastApplied: snap.ContrastApplied,
		LastFrameMS:     float64(snap.LastDT) / float64(time.Millisecond),
		Overruns:        snap.Overruns,
	}
	if resp.Routes == nil {
		resp.Routes = []string{}
	}
	if !snap.UpdatedAt.IsZero() {
		resp.UpdatedAt = snap.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleFrame(w http.ResponseWriter, r *http.Request, ctrl Controller) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	scale := 1
	if raw := r.URL.Query().Get("scale"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxPreviewScale {
			writeAPIError(w, http.StatusBadRequest, "invalid_scale", "scale must be an integer between 1 and "+strconv.Itoa(maxPreviewScale))
			return
		}
		scale = v
	}

	snap := ctrl.Status()
	if snap.Frame == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame rendered yet")
		return
	}
	img := render.Mirror(snap.Frame, render.NativeContrast(snap.ContrastApplied))
	var out image.Image = img
	if scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx()*scale, img.Bounds().Dy()*scale))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		out = scaled
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = png.Encode(w, out)
}

func handleRoute(w http.ResponseWriter, r *http.Request, ctrl Controller) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var req routeRequest
	if err := decodeJSON(r.Body, &req); err != nil || req.Route == "" {
		writeAPIError(w, http.StatusBadRequest, "invalid_request", "expected {\"route\": name}")
		return
	}
	if err := ctrl.RequestRoute(req.Route); err != nil {
		var notFound *state.RouteNotFoundError
		if errors.As(err, &notFound) {
			writeAPIError(w, http.StatusNotFound, "route_not_found", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "route_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handlePop(w http.ResponseWriter, r *http.Request, ctrl Controller) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	ctrl.RequestPop()
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handleInput(w http.ResponseWriter, r *http.Request, ctrl Controller) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var req inputRequest
	if err := decodeJSON(r.Body, &req); err != nil || req.Event == "" {
		writeAPIError(w, http.StatusBadRequest, "invalid_request", "expected {\"event\": name}")
		return
	}
	ctrl.RequestInput(req.Event)
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func decodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(io.LimitReader(body, 1<<16))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
