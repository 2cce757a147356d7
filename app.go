package cms

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// App is the central application. It wires together the post store, upload
// directory, config document, and the Echo instance serving them.
type App struct {
	cfg        Config
	store      *Store
	uploads    *Uploads
	siteConfig *ConfigFile
	echo       *echo.Echo
	log        zerolog.Logger
}

// NewApp opens all backing state (database, uploads directory, config
// document) and wires routes and middleware. Call Close when done.
func NewApp(cfg Config, log zerolog.Logger) (*App, error) {
	store, err := NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	uploads, err := NewUploads(cfg.UploadDir)
	if err != nil {
		store.Close()
		return nil, err
	}
	siteConfig, err := NewConfigFile(cfg.ConfigPath)
	if err != nil {
		store.Close()
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		store:      store,
		uploads:    uploads,
		siteConfig: siteConfig,
		echo:       echo.New(),
		log:        log,
	}
	a.echo.HideBanner = true
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

func (a *App) setupRoutes() {
	e := a.echo

	e.POST("/auth/login", a.handleLogin)

	e.GET("/posts", a.handleListPosts)
	e.GET("/posts/:slug", a.handleGetPost)
	e.POST("/posts", a.handleCreatePost, a.RequireToken)
	e.PUT("/posts/:id", a.handleUpdatePost, a.RequireToken)
	e.DELETE("/posts/:id", a.handleDeletePost, a.RequireToken)

	e.POST("/upload", a.handleUpload)

	e.GET("/config", a.handleGetConfig)
	e.PUT("/config", a.handlePutConfig, a.RequireToken)

	e.GET("/healthz", a.handleHealth)

	// Static mounts come last in reading order but precedence is decided by
	// the router, not registration: the API routes above are more specific
	// than the catch-all site mount, so they always win.
	e.Static("/uploads", a.uploads.Dir())
	e.Static("/", a.cfg.SiteDir)
}

// Start runs the HTTP server until it fails or is shut down.
func (a *App) Start() error {
	a.log.Info().Str("addr", a.cfg.Addr()).Msg("starting server")
	if err := a.echo.Start(a.cfg.Addr()); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases backing resources.
func (a *App) Close() error {
	return a.store.Close()
}

// Echo exposes the underlying Echo instance, mainly for tests.
func (a *App) Echo() *echo.Echo {
	return a.echo
}

// Store exposes the post store, mainly for seeding and tests.
func (a *App) Store() *Store {
	return a.store
}
