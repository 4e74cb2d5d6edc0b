package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stayx/internal/auth"
	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/server"
	"github.com/desertthunder/stayx/internal/shared"
)

// ListingStore is the listing persistence the web app reads from.
type ListingStore interface {
	Get(ctx context.Context, id string) (*models.Listing, error)
	List(ctx context.Context, criteria map[string]any) ([]*models.Listing, error)
}

// FavoriteStore is the favorites persistence the web app reads and writes.
type FavoriteStore interface {
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
	IsFavorite(ctx context.Context, userID, listingID string) (bool, error)
	ListingIDs(ctx context.Context, userID string) ([]string, error)
	Listings(ctx context.Context, userID string) ([]*models.Listing, error)
}

// Options configures an [App].
type Options struct {
	Auth      *auth.Service
	Listings  ListingStore
	Favorites FavoriteStore
	Server    shared.ServerConfig
	Logger    *log.Logger
}

// App holds the dependencies shared by all handlers.
type App struct {
	auth      *auth.Service
	listings  ListingStore
	favorites FavoriteStore
	cfg       shared.ServerConfig
	logger    *log.Logger
	pages     map[string]*template.Template
	modals    *modalRegistry
	limiter   *server.RateLimiter
}

// New creates an [App].
func New(opts Options) (*App, error) {
	if opts.Auth == nil || opts.Listings == nil || opts.Favorites == nil {
		return nil, fmt.Errorf("%w: auth, listings and favorites are required", shared.ErrMissingConfig)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	app := &App{
		auth:      opts.Auth,
		listings:  opts.Listings,
		favorites: opts.Favorites,
		cfg:       opts.Server,
		logger:    shared.WithLogger(opts.Logger, "component", "web"),
		pages:     pages,
		modals:    newModalRegistry(),
	}
	if opts.Server.LoginRateLimit > 0 {
		app.limiter = server.NewRateLimiter(opts.Server.LoginRateLimit, opts.Server.LoginBurst)
	}
	return app, nil
}

// Router registers every route with the global middleware stack.
func (a *App) Router() *server.BasicRouter {
	r := server.NewBasicRouter()
	r.Use(server.RequestID)
	if a.cfg.TrustProxy {
		r.Use(server.RealIP)
	}
	r.Use(server.RequestLogger(a.logger), server.Recoverer(a.logger))
	if len(a.cfg.AllowedOrigins) > 0 {
		r.Use(server.CORS(a.cfg.AllowedOrigins))
	}
	r.Use(a.loadSession)

	var loginLimit []server.Middleware
	if a.limiter != nil {
		loginLimit = append(loginLimit, a.limiter.Middleware())
	}

	r.Handle(http.MethodGet, "/", http.HandlerFunc(a.home))
	r.Handle(http.MethodGet, "/login", http.HandlerFunc(a.openLogin))
	r.Handle(http.MethodPost, "/login", http.HandlerFunc(a.submitLogin), loginLimit...)
	r.Handle(http.MethodPost, "/login/toggle", http.HandlerFunc(a.toggleLogin))
	r.Handle(http.MethodPost, "/login/close", http.HandlerFunc(a.closeLogin))
	r.Handle(http.MethodPost, "/register", http.HandlerFunc(a.submitRegister))
	r.Handle(http.MethodPost, "/register/toggle", http.HandlerFunc(a.toggleRegister))
	r.Handle(http.MethodPost, "/register/close", http.HandlerFunc(a.closeRegister))
	r.Handle(http.MethodPost, "/logout", http.HandlerFunc(a.logout))
	r.Handle(http.MethodGet, "/api/auth/signin/{provider}", http.HandlerFunc(a.signIn))
	r.Handler(server.NewOAuthHandler(a.auth, a.startSession, "/", a.cfg.SecureCookies, a.logger))
	r.Handle(http.MethodGet, "/favorites", http.HandlerFunc(a.favoritesPage))
	r.Handle(http.MethodPost, "/api/favorites/{listingID}", http.HandlerFunc(a.addFavorite))
	r.Handle(http.MethodDelete, "/api/favorites/{listingID}", http.HandlerFunc(a.removeFavorite))
	r.Handle(http.MethodGet, "/healthz", http.HandlerFunc(a.health))
	r.NotFound(http.HandlerFunc(a.notFound))

	return r
}
