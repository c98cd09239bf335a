package main

import (
	"context"
	"fmt"
	"os"

	"component-inventory-backend/internal/bridge"
	"component-inventory-backend/internal/config"
	"component-inventory-backend/internal/database"
	"component-inventory-backend/internal/logger"
	"component-inventory-backend/internal/service"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

const version = "1.0.0"

// inventory-mcp serves the bridge operations as MCP tools over stdio.
// stdout carries the protocol, so logs go to stderr.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	logCloser := logger.Setup(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Output:     os.Stderr,
	})

	err = run(cfg)
	if err != nil {
		logrus.Error(err)
	}
	_ = logCloser.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
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
	defer gw.Close()

	now, err := gw.Ping(context.Background())
	if err != nil {
		return fmt.Errorf("database liveness check failed: %w", err)
	}
	logrus.WithField("server_time", now).Info("Connected to database")

	svc := service.NewServices(gw)
	dispatcher := bridge.NewDispatcher(cfg.BridgeTimeout)
	if err := dispatcher.Register(svc.Categories, svc.Components); err != nil {
		return fmt.Errorf("failed to register bridge operations: %w", err)
	}

	if err := server.ServeStdio(bridge.NewMCPServer(dispatcher, version)); err != nil {
		return fmt.Errorf("MCP server stopped: %w", err)
	}
	return nil
}
