package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
)

// Server is what the app starts and stops alongside the render loop.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

const (
	EnvListenAddr = "MONOFRAME_LISTEN"
	EnvDevMode    = "MONOFRAME_DEV"
)

// ServerConfig contains settings for running the preview server. The
// device binary leaves it off unless a listen address is given; the
// simulator defaults to :8080.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	cfg := ServerConfig{ListenAddr: defaultListenAddr}
	if raw, ok := os.LookupEnv(EnvListenAddr); ok {
		// Set but empty turns the server off.
		cfg.ListenAddr = raw
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = parsed
	}
	return cfg, nil
}

// WithDevCORS lets a page served from another origin (a local UI dev
// server) drive the API. Only installed in dev mode.
func WithDevCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
