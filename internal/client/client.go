// Package client calls a running backend's bridge over HTTP or WebSocket.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"component-inventory-backend/internal/bridge"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const bridgePath = "/api/v1/bridge"

// Client is an HTTP client for the bridge API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// OperationsResult lists the operations a backend serves
type OperationsResult struct {
	Ready      bool     `json:"ready"`
	Operations []string `json:"operations"`
}

// APIError is a non-2xx answer from the backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// NewClient creates a new API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Call invokes one bridge operation and returns its raw JSON result.
func (c *Client) Call(ctx context.Context, operation string, args []json.RawMessage) (json.RawMessage, error) {
	if args == nil {
		args = []json.RawMessage{}
	}
	body := map[string]interface{}{"args": args}
	var result json.RawMessage
	if err := c.post(ctx, bridgePath+"/"+url.PathEscape(operation), body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Operations lists the registered bridge operations.
func (c *Client) Operations(ctx context.Context) (*OperationsResult, error) {
	var resp OperationsResult
	if err := c.get(ctx, bridgePath+"/operations", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health returns the backend's health document.
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	var resp json.RawMessage
	if err := c.get(ctx, "/health", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CallWebSocket invokes one operation over the WebSocket bridge.
func (c *Client) CallWebSocket(ctx context.Context, operation string, args []json.RawMessage) (json.RawMessage, error) {
	wsURL, err := websocketURL(c.baseURL + bridgePath + "/ws")
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", wsURL, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	} else {
		_ = conn.SetReadDeadline(time.Now().Add(c.httpClient.Timeout))
	}

	id, _ := json.Marshal(uuid.NewString())
	if args == nil {
		args = []json.RawMessage{}
	}
	if err := conn.WriteJSON(bridge.Request{ID: id, Operation: operation, Args: args}); err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	var resp bridge.Response
	if err := conn.ReadJSON(&resp); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("bridge error: %s", resp.Error)
	}
	if len(resp.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return resp.Result, nil
}

func websocketURL(httpURL string) (string, error) {
	u, err := url.Parse(httpURL)
	if err != nil {
		return "", fmt.Errorf("parsing server url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	}
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var failure struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
			msg = failure.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshaling response: %w", err)
		}
	}
	return nil
}
