package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaibs3/bakery-api/internal/config"
	"github.com/shaibs3/bakery-api/internal/handlers"
	"github.com/shaibs3/bakery-api/internal/router"
	"github.com/shaibs3/bakery-api/internal/seed"
	"github.com/shaibs3/bakery-api/internal/store"
	"github.com/shaibs3/bakery-api/internal/telemetry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

// App represents the main application
type App struct {
	config    *config.Config
	logger    *zap.Logger
	telemetry *telemetry.Telemetry
	db        store.DbProvider
	server    *http.Server
}

func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	// Initialize telemetry
	tel, err := telemetry.NewTelemetry(logger)
	if err != nil {
		return nil, err
	}

	// Use the factory to create the DB provider
	factory := store.NewDbProviderFactory(logger, tel)
	var configJSON string
	if cfg.DBConfig == "" {
		// Default to in-memory provider
		config := store.DbProviderConfig{
			DbType:       store.DbTypeMemory,
			ExtraDetails: map[string]interface{}{},
		}
		b, _ := json.Marshal(config)
		configJSON = string(b)
	} else {
		configJSON = cfg.DBConfig
	}
	dbProvider, err := factory.CreateProvider(configJSON)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	if err := dbProvider.CreateSchema(ctx); err != nil {
		_ = dbProvider.Close()
		return nil, err
	}
	if cfg.SeedData {
		if _, err := seed.Run(ctx, dbProvider, logger); err != nil {
			_ = dbProvider.Close()
			return nil, err
		}
	}

	// Initialize router with handlers
	var limiter = rate.NewLimiter(rate.Limit(cfg.RPSLimit), cfg.RPSBurst)

	// Create handlers
	handlerList := []router.Handler{
		handlers.NewHealthHandler(),
		handlers.NewBakeryHandler(dbProvider, dbProvider),
		handlers.NewBakedGoodHandler(dbProvider),
	}

	appRouter := router.NewRouter(limiter, tel, logger, handlerList)
	server := appRouter.CreateServer(":" + cfg.Port)

	return &App{
		config:    cfg,
		logger:    logger,
		telemetry: tel,
		db:        dbProvider,
		server:    server,
	}, nil
}

// Handler returns the fully wired HTTP handler
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// start launches the server in the background
func (app *App) start() error {
	app.logger.Info("starting server", zap.String("port", app.config.Port))

	go func() {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	return nil
}

// stop gracefully shuts down the server and releases the store
func (app *App) stop() error {
	app.logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", zap.Error(err))
	}
	if err := app.telemetry.Shutdown(shutdownCtx); err != nil {
		app.logger.Warn("failed to shut down telemetry", zap.Error(err))
	}

	app.logger.Info("server exited gracefully")
	return nil
}

// Run starts the application and waits for shutdown signals
func (app *App) Run() error {
	if err := app.start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	return app.stop()
}
