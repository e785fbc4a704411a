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

	httpapi "github.com/Rezosh/server-stats-website/internal/arkstats/http"
	"github.com/Rezosh/server-stats-website/internal/arkstats/service"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store/drivers/sqlite"
	"github.com/Rezosh/server-stats-website/pkg/arkweb"
	"github.com/Rezosh/server-stats-website/pkg/cryptox"
	"github.com/Rezosh/server-stats-website/pkg/discord"
	"github.com/Rezosh/server-stats-website/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the stats service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	discord *discord.Client
	ark     *arkweb.Client
	cipher  *cryptox.TokenCipher

	// Services
	sessionService      *service.SessionService
	authService         *service.AuthService
	guildService        *service.GuildService
	serverService       *service.ServerService
	notificationService *service.NotificationService
	samplerService      *service.SamplerService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "arkstats",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cipher, err := cryptox.NewTokenCipher(cfg.EncryptSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token cipher: %w", err)
	}
	app.cipher = cipher

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.discord = discord.NewClient(discord.Config{
		BaseURL:           cfg.DiscordAPI,
		ClientID:          cfg.DiscordClientID,
		ClientSecret:      cfg.DiscordClientSecret,
		RedirectURI:       cfg.DiscordRedirectURI,
		BotToken:          cfg.DiscordBotToken,
		AuthorizeEndpoint: cfg.DiscordAuthorizeURL,
		Timeout:           cfg.UpstreamTimeout,
	})
	app.ark = arkweb.NewClient(cfg.ArkWebAPI, cfg.UpstreamTimeout)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.samplerService.Start()
	app.housekeepingService.Start()

	app.logger.Info("arkstats service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down arkstats service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the background workers
	app.samplerService.Stop()
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("arkstats service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Secret:     []byte(app.cfg.SessionSecret),
		Issuer:     "arkstats",
		SessionTTL: app.cfg.SessionTTL,
	}

	app.authService = &service.AuthService{
		Store:          app.db,
		Discord:        app.discord,
		Cipher:         app.cipher,
		Sessions:       app.sessionService,
		SupportGuildID: app.cfg.DiscordSupportGuildID,
		PremiumRoleID:  app.cfg.DiscordPremiumRoleID,
	}

	app.guildService = &service.GuildService{
		Store:   app.db,
		Discord: app.discord,
		Cipher:  app.cipher,
	}

	app.serverService = &service.ServerService{
		Store:   app.db,
		Ark:     app.ark,
		Cluster: app.cfg.ArkClusterID,
	}

	app.notificationService = &service.NotificationService{Store: app.db}

	app.samplerService = service.NewSamplerService(
		app.db,
		app.ark,
		app.cfg.ArkClusterID,
		app.logger,
		app.cfg.SampleInterval,
	)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.HistoryRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.AuthService = app.authService
	router.GuildService = app.guildService
	router.ServerService = app.serverService
	router.NotificationService = app.notificationService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
