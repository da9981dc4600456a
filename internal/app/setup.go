package app

import (
	"fmt"
	"net"
	"os"

	"github.com/rook-computer/monoframe/internal/app/pages"
	"github.com/rook-computer/monoframe/internal/assets"
	"github.com/rook-computer/monoframe/internal/luapage"
)

// LoadAssets builds the asset store the binaries share: the configured
// font file or the built-in font as the default, the embedded icons, and an
// optional image file merged over them.
func LoadAssets(cfg Config) (*assets.Store, error) {
	store := assets.NewStore()
	if cfg.FontPath != "" {
		if err := store.LoadFontFile(assets.DefaultFont, cfg.FontPath); err != nil {
			return nil, err
		}
	} else {
		store.RegisterBuiltinFont(assets.DefaultFont)
	}
	if err := store.RegisterEmbeddedImages(); err != nil {
		return nil, err
	}
	if cfg.ImagesPath != "" {
		if err := store.LoadImagesFile(cfg.ImagesPath); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// UseDefaultRoutes installs the built-in pages, plus the Lua page from
// Config.ScriptPath on the script route. Start closes the Lua page when it
// returns.
func (app *App) UseDefaultRoutes() error {
	initial, routes := pages.Default(app.Machine, PreviewURL(app.Config.ListenAddr))
	if app.Config.ScriptPath != "" {
		page, err := luapage.LoadFile(app.Config.ScriptPath, app.Machine)
		if err != nil {
			return fmt.Errorf("load script page: %w", err)
		}
		routes[pages.RouteScript] = page
		app.closers = append(app.closers, page.Close)
		app.Logger.Infof("app", "script page loaded from %s", app.Config.ScriptPath)
	}
	app.SetRoutes(initial, routes)
	return nil
}

// PreviewURL is the address shown on the info page. An empty listen
// address means the preview server is off.
func PreviewURL(listenAddr string) string {
	if listenAddr == "" {
		return ""
	}
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "http://" + listenAddr + "/"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		if name, err := os.Hostname(); err == nil && name != "" {
			host = name + ".local"
		} else {
			host = "localhost"
		}
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
