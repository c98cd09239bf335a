package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"component-inventory-backend/internal/bridge"
	"component-inventory-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// BridgeHandler exposes the operation registry over HTTP and WebSocket
type BridgeHandler struct {
	dispatcher *bridge.Dispatcher
	ws         *bridge.WebSocketEndpoint
}

// NewBridgeHandler creates a new bridge handler
func NewBridgeHandler(dispatcher *bridge.Dispatcher, allowedOrigins []string) *BridgeHandler {
	return &BridgeHandler{
		dispatcher: dispatcher,
		ws:         bridge.NewWebSocketEndpoint(dispatcher, allowedOrigins),
	}
}

// InvokeRequest carries the positional arguments of one operation
type InvokeRequest struct {
	Args []json.RawMessage `json:"args" swaggertype:"array,object"`
}

// BridgeErrorResponse is returned when a call is rejected before reaching an operation
type BridgeErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"unknown operation: dropDatabase"`
}

// OperationsResponse lists the registered operations
type OperationsResponse struct {
	Ready      bool     `json:"ready"`
	Operations []string `json:"operations"`
}

// Invoke runs a named bridge operation
// @Summary Invoke a bridge operation
// @Description Runs one of getCategories, addCategory, updateCategory, deleteCategory, getComponents, getComponent, addComponent, updateComponent, deleteComponent, searchComponents with positional arguments. Write operations answer with {success, id?, changes?, error?}; list operations answer with an array.
// @Tags bridge
// @Accept json
// @Produce json
// @Param operation path string true "Operation name"
// @Param request body InvokeRequest false "Positional arguments"
// @Success 200 {object} interface{} "Operation result"
// @Failure 400 {object} BridgeErrorResponse "Malformed arguments"
// @Failure 404 {object} BridgeErrorResponse "Unknown operation"
// @Failure 503 {object} BridgeErrorResponse "Database not connected yet"
// @Router /bridge/{operation} [post]
func (h *BridgeHandler) Invoke(c *gin.Context) {
	operation := c.Param("operation")

	var req InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, BridgeErrorResponse{Error: "request body must be {\"args\": [...]}"})
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), operation, req.Args)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, bridge.ErrNotReady):
			status = http.StatusServiceUnavailable
		case errors.Is(err, bridge.ErrUnknownOperation):
			status = http.StatusNotFound
		case bridge.IsArgumentError(err):
			status = http.StatusBadRequest
		default:
			logger.WithContext(c.Request.Context()).WithError(err).WithField("operation", operation).Error("bridge invocation failed")
		}
		c.JSON(status, BridgeErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Operations lists the operations the bridge serves
// @Summary List bridge operations
// @Tags bridge
// @Produce json
// @Success 200 {object} OperationsResponse
// @Router /bridge/operations [get]
func (h *BridgeHandler) Operations(c *gin.Context) {
	c.JSON(http.StatusOK, OperationsResponse{
		Ready:      h.dispatcher.Ready(),
		Operations: h.dispatcher.Registered(),
	})
}

// WebSocket upgrades to the frame-based bridge
// @Summary Bridge over WebSocket
// @Description Frames {"id","operation","args"} are answered with {"id","result"} or {"id","error"}
// @Tags bridge
// @Router /bridge/ws [get]
func (h *BridgeHandler) WebSocket(c *gin.Context) {
	h.ws.HandleWebSocket(c.Writer, c.Request)
}
