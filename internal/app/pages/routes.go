package pages

import "github.com/rook-computer/monoframe/internal/state"

const (
	RoutePing   = "ping"
	RoutePong   = "pong"
	RouteInfo   = "info"
	RouteScript = "script"
)

// Default returns the built-in route table, starting on ping.
func Default(nav state.Navigator, previewURL string) (initial string, routes map[string]state.Page) {
	return RoutePing, map[string]state.Page{
		RoutePing: NewPing(nav),
		RoutePong: NewPong(nav),
		RouteInfo: NewInfo(previewURL),
	}
}
