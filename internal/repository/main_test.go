//go:build integration
// +build integration

package repository

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"testing"

	"component-inventory-backend/internal/testutils"
)

// TestMain tears the shared Postgres container down however the run ends
func TestMain(m *testing.M) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("repository tests interrupted, purging Postgres container")
		testutils.CleanupSharedContainer()
		os.Exit(1)
	}()

	log.Println("starting repository integration tests")
	code := m.Run()

	testutils.CleanupSharedContainer()
	os.Exit(code)
}
