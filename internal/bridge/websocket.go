package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"component-inventory-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	maxFrameSize = 16 << 20 // component images travel inline as data URIs
	writeWait    = 10 * time.Second
)

// Request is one frame sent by the UI over the WebSocket bridge
type Request struct {
	ID        json.RawMessage   `json:"id"`
	Operation string            `json:"operation"`
	Args      []json.RawMessage `json:"args"`
}

// Response answers the Request with the same ID. Exactly one of Result and Error is set.
type Response struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// WebSocketEndpoint serves the bridge over WebSocket connections. Frames on one
// connection are dispatched concurrently; responses are written one at a time.
type WebSocketEndpoint struct {
	dispatcher *Dispatcher
	upgrader   websocket.Upgrader
}

// NewWebSocketEndpoint creates an endpoint accepting the given origins ("*" accepts any).
// Requests without an Origin header, such as local tools, are always accepted.
func NewWebSocketEndpoint(d *Dispatcher, allowedOrigins []string) *WebSocketEndpoint {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketEndpoint{
		dispatcher: d,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// HandleWebSocket upgrades the request and serves frames until the peer disconnects
func (ws *WebSocketEndpoint) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithContext(r.Context()).WithError(err).Warn("websocket upgrade failed")
		return
	}

	connectionID := uuid.NewString()
	ctx, cancel := context.WithCancel(logger.ContextWithRequestID(context.Background(), connectionID))
	log := logger.WithContext(ctx)
	log.WithField("remote_addr", r.RemoteAddr).Info("bridge websocket connected")

	var (
		writeMu  sync.Mutex
		inFlight sync.WaitGroup
	)
	defer func() {
		cancel()
		inFlight.Wait()
		conn.Close()
		log.Info("bridge websocket disconnected")
	}()

	send := func(resp Response) {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			log.WithError(err).Warn("failed to write bridge response")
		}
	}

	conn.SetReadLimit(maxFrameSize)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("bridge websocket closed unexpectedly")
			}
			return
		}

		var req Request
		if err := json.Unmarshal(message, &req); err != nil {
			send(Response{Error: "malformed request frame"})
			continue
		}

		inFlight.Add(1)
		go func(req Request) {
			defer inFlight.Done()
			send(ws.dispatch(ctx, req))
		}(req)
	}
}

func (ws *WebSocketEndpoint) dispatch(ctx context.Context, req Request) Response {
	result, err := ws.dispatcher.Invoke(ctx, req.Operation, req.Args)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		logger.WithContext(ctx).WithError(err).WithField("operation", req.Operation).Error("failed to encode bridge result")
		return Response{ID: req.ID, Error: "failed to encode result"}
	}
	return Response{ID: req.ID, Result: encoded}
}
