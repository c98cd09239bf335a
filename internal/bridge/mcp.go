package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer exposes every bridge operation as an MCP tool whose input is
// {"args": [...]} and whose output is the operation's JSON result
func NewMCPServer(d *Dispatcher, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"component-inventory",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, name := range Operations() {
		description, params, _ := d.Describe(name)
		tool := mcp.NewTool(name,
			mcp.WithDescription(description),
			mcp.WithArray("args", mcp.Description("positional arguments: "+params)),
		)
		s.AddTool(tool, d.toolHandler(name))
	}
	return s
}

func (d *Dispatcher) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := toolArgs(req.GetArguments()["args"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := d.Invoke(ctx, name, raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError("failed to encode result"), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// toolArgs re-encodes the decoded "args" array as positional raw arguments
func toolArgs(v interface{}) ([]json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("args must be an array")
	}
	out := make([]json.RawMessage, len(list))
	for i, item := range list {
		b, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}
