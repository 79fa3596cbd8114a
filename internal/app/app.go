package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/astecastudio/portfolio-api/internal/http"
	"github.com/astecastudio/portfolio-api/internal/media"
	"github.com/astecastudio/portfolio-api/internal/service"
	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/internal/store/drivers/postgres"
	"github.com/astecastudio/portfolio-api/internal/store/drivers/sqlite"
	"github.com/astecastudio/portfolio-api/pkg/cryptox"
	"github.com/astecastudio/portfolio-api/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the portfolio API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	media *media.Storage

	sessionService   *service.SessionService
	portfolioService *service.PortfolioService
	contactService   *service.ContactService
	statsService     *service.StatsService
	housekeeper      *service.Housekeeper

	server *http.Server
	router *httpapi.Router

	stopHousekeeping context.CancelFunc
	housekeepingDone chan struct{}
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "portfolio-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	uploads, err := media.NewStorage(cfg.UploadDir)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.media = uploads

	app.initServices()

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := service.EnsureDefaultAdmin(ctx, app.db, service.AdminBootstrap{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Start the expired-session sweeper
	hkCtx, cancel := context.WithCancel(slogx.WithContext(context.Background(), app.logger))
	app.stopHousekeeping = cancel
	app.housekeepingDone = make(chan struct{})
	go func() {
		defer close(app.housekeepingDone)
		app.housekeeper.Run(hkCtx)
	}()

	app.logger.Info("portfolio api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down portfolio api...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.stopHousekeeping != nil {
		app.stopHousekeeping()
		<-app.housekeepingDone
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("portfolio api stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations.
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DBDriver {
	case "postgres":
		if app.cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	case "sqlite":
		host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(host)
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want sqlite or postgres)", app.cfg.DBDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DBDriver)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:           app.db,
		SessionDuration: app.cfg.SessionDuration,
		StoreTimeout:    app.cfg.StoreTimeout,
	}
	app.portfolioService = &service.PortfolioService{
		Store:        app.db,
		StoreTimeout: app.cfg.StoreTimeout,
	}
	app.contactService = &service.ContactService{
		Store:        app.db,
		StoreTimeout: app.cfg.StoreTimeout,
	}
	app.statsService = &service.StatsService{
		Store:        app.db,
		StoreTimeout: app.cfg.StoreTimeout,
	}
	app.housekeeper = &service.Housekeeper{
		Store:    app.db,
		Interval: app.cfg.HousekeepingInterval,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSAllowedOrigins,
	)

	// Wire services to router
	router.SessionService = app.sessionService
	router.PortfolioService = app.portfolioService
	router.ContactService = app.contactService
	router.StatsService = app.statsService
	router.Media = app.media
	router.SessionDuration = app.cfg.SessionDuration
	router.CookieSecure = app.cfg.Env != "dev"
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
