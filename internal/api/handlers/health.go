package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"component-inventory-backend/internal/bridge"

	"github.com/gin-gonic/gin"
)

// StorePinger is the liveness probe the health endpoints run against the store
type StorePinger interface {
	Ping(ctx context.Context) (time.Time, error)
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	dispatcher *bridge.Dispatcher
	version    string

	mu    sync.RWMutex
	store StorePinger
}

// NewHealthHandler creates a new health handler. The store is attached once it is connected.
func NewHealthHandler(dispatcher *bridge.Dispatcher, version string) *HealthHandler {
	return &HealthHandler{
		dispatcher: dispatcher,
		version:    version,
	}
}

// AttachStore sets the store probed by Health and Ready
func (h *HealthHandler) AttachStore(store StorePinger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store = store
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Ready     bool              `json:"ready"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health returns the health status of the application
// @Summary Health check
// @Description Get the overall health status of the backend including database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Backend is healthy"
// @Failure 503 {object} HealthResponse "Backend is unhealthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   h.version,
		Services:  make(map[string]string),
	}

	if err := h.pingStore(c.Request.Context()); err != nil {
		response.Status = "unhealthy"
		response.Services["database"] = "error: " + err.Error()
	} else {
		response.Services["database"] = "healthy"
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

// Ready reports whether the bridge accepts calls and the store answers
// @Summary Readiness check
// @Description Ready once the database is reachable and bridge operations are registered
// @Tags health
// @Produce json
// @Success 200 {object} ReadyResponse "Backend is ready"
// @Failure 503 {object} ReadyResponse "Backend is not ready"
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	response := ReadyResponse{
		Ready:     true,
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	if err := h.pingStore(c.Request.Context()); err != nil {
		response.Ready = false
		response.Services["database"] = "not ready: " + err.Error()
	} else {
		response.Services["database"] = "ready"
	}

	if h.dispatcher.Ready() {
		response.Services["bridge"] = "ready"
	} else {
		response.Ready = false
		response.Services["bridge"] = "not ready: operations not registered"
	}

	statusCode := http.StatusOK
	if !response.Ready {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

// Live returns the liveness status of the application
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Backend is alive"
// @Router /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now(),
	})
}

type errStoreNotConnected struct{}

func (errStoreNotConnected) Error() string { return "database connection not established" }

func (h *HealthHandler) pingStore(ctx context.Context) error {
	h.mu.RLock()
	store := h.store
	h.mu.RUnlock()

	if store == nil {
		return errStoreNotConnected{}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := store.Ping(ctx)
	return err
}
