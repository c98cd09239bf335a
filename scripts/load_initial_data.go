package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"component-inventory-backend/internal/config"
	"component-inventory-backend/internal/database"
	"component-inventory-backend/internal/seed"
	"component-inventory-backend/internal/service"

	"gorm.io/gorm/logger"
)

func main() {
	file := flag.String("file", "scripts/data/inventory.yaml", "seed file (.yaml, .yml or .toml)")
	flag.Parse()

	log.Printf("Loading initial data from %s...", *file)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	data, err := seed.Load(*file)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	gw, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer gw.Close()

	svc := service.NewServices(gw)
	res, err := seed.Apply(context.Background(), data, svc.Categories, svc.Components)
	if err != nil {
		log.Fatalf("Failed to apply seed data: %v", err)
	}

	log.Printf("Categories: %d created, %d already present", res.CategoriesCreated, res.CategoriesSkipped)
	log.Printf("Components: %d created, %d already present", res.ComponentsCreated, res.ComponentsSkipped)
	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to open the store with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*database.Gateway, error) {
	opts := &database.Options{
		LogLevel:    logger.Silent,
		AutoMigrate: true,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		gw, err := database.Open(dsn, opts)
		if err == nil {
			if _, err = gw.Ping(context.Background()); err == nil {
				return gw, nil
			}
			_ = gw.Close()
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}
