package web

import (
	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server, app *App) {
	// Page routes - HTML responses
	s.Get("/", app.HomePage)
	s.Get("/ui/search", app.UISearch)
	s.Get("/stores", app.StoresPage)
	s.Get("/trends", app.TrendsPage)

	// Search backend - JSON responses
	s.Get("/search", app.Backend.Search)
	s.Get("/api/prices", app.Backend.Prices)
	s.Get("/api/trending", app.Backend.Trending)
	s.Get("/api/stores", app.Backend.Stores)
	s.Get("/api/health", app.Backend.Health)
}
