package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"component-inventory-backend/internal/api/handlers"
	"component-inventory-backend/internal/api/routes"
	"component-inventory-backend/internal/bridge"
	"component-inventory-backend/internal/config"
	"component-inventory-backend/internal/database"
	"component-inventory-backend/internal/logger"
	"component-inventory-backend/internal/seed"
	"component-inventory-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "component-inventory-backend/docs" // This is needed for swag
)

const version = "1.0.0"

//	@title			Component Inventory Backend API
//	@version		1.0
//	@description	Data bridge between the component inventory UI and its PostgreSQL store. Categories and components are read and written through named bridge operations.

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:7008
//	@BasePath	/api/v1

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	// Set up logging
	logCloser := logger.Setup(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	err = run(cfg)
	if err != nil {
		logrus.Error(err)
	}
	_ = logCloser.Close()
	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource it opens; all of them are released before it returns
func run(cfg *config.Config) error {
	// The HTTP surface comes up first; bridge calls answer "not ready" until the store is connected
	dispatcher := bridge.NewDispatcher(cfg.BridgeTimeout)
	healthHandler := handlers.NewHealthHandler(dispatcher, version)
	router := routes.SetupRoutes(cfg, dispatcher, healthHandler)

	srv := &http.Server{
		Addr:              cfg.ListenAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Error("Server shutdown failed: ", err)
		}
	}()

	// Initialize database
	gw, err := database.Open(cfg.DatabaseURL, &database.Options{
		LogLevel:         database.ParseLogLevel(cfg.DBLogLevel),
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		StatementTimeout: cfg.DBStatementTTL,
		AutoMigrate:      cfg.DBAutoMigrate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := gw.Close(); err != nil {
			logrus.Error("Failed to close database: ", err)
		}
	}()

	ctx := context.Background()
	now, err := gw.Ping(ctx)
	if err != nil {
		return fmt.Errorf("database liveness check failed: %w", err)
	}
	logrus.WithField("server_time", now).Info("Connected to database")
	healthHandler.AttachStore(gw)

	svc := service.NewServices(gw)

	if cfg.SeedOnStartup {
		if err := applySeed(ctx, cfg.SeedFile, svc); err != nil {
			logrus.WithError(err).Error("Failed to apply seed data")
		}
	}

	if err := dispatcher.Register(svc.Categories, svc.Components); err != nil {
		return fmt.Errorf("failed to register bridge operations: %w", err)
	}
	if missing := dispatcher.Verify(); len(missing) > 0 {
		logrus.WithField("missing", missing).Error("Bridge operations missing after registration")
	} else {
		logrus.WithField("operations", dispatcher.Registered()).Info("Bridge operations registered")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logrus.Infof("Received %s, shutting down", sig)
	}
	return nil
}

func applySeed(ctx context.Context, path string, svc *service.Services) error {
	data, err := seed.Load(path)
	if err != nil {
		return err
	}
	_, err = seed.Apply(ctx, data, svc.Categories, svc.Components)
	return err
}
