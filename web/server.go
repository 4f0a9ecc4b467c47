package web

import (
	"time"

	"compareaid/config"
	"compareaid/searchui"
	"compareaid/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// App is everything the handlers share: the search backend and the
// browser sessions of the search page.
type App struct {
	Backend       *api.Backend
	Sessions      *SessionStore
	RateLimit     int           // backend requests per client per minute
	SearchTimeout time.Duration // bound on one UI search
}

// NewApp wires the page sessions to searcher and the API to backend.
func NewApp(cfg *config.Config, backend *api.Backend, searcher searchui.Searcher) (*App, error) {
	sessions, err := NewSessionStore(cfg.SessionCapacity, searcher, cfg.Location())
	if err != nil {
		return nil, serr.Wrap(err, "failed to create session store")
	}
	return &App{
		Backend:       backend,
		Sessions:      sessions,
		RateLimit:     cfg.RateLimitPerMinute,
		SearchTimeout: cfg.SearchTimeout,
	}, nil
}

// NewServer creates and configures the RWeb server
func NewServer(cfg *config.Config, app *App) *rweb.Server {
	return newServer(rweb.ServerOptions{
		Address: cfg.Address,
		Verbose: cfg.LogLevel == "debug",
	}, app)
}

// NewTestServer builds the same server with caller-chosen options,
// typically a dynamic port and a ReadyChan.
func NewTestServer(opts rweb.ServerOptions, app *App) *rweb.Server {
	return newServer(opts, app)
}

func newServer(opts rweb.ServerOptions, app *App) *rweb.Server {
	s := rweb.NewServer(opts)

	s.Use(rweb.RequestInfo)
	s.Use(CorsMiddleware)
	s.Use(SessionMiddleware)
	s.Use(SecurityHeadersMiddleware)
	s.Use(RateLimitMiddleware(app.RateLimit))
	s.Use(LoggingMiddleware)

	setupRoutes(s, app)
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("ComparAid server starting", "address", address)
	return s.Run()
}
