package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarenv/internal/server"
	"github.com/teemow/calendarenv/internal/tools/common"
)

// RegisterEnvironmentTools registers the environment hooks. Reset is
// available even on a read-only server since it has no remote effect.
func RegisterEnvironmentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	resetTool := mcp.NewTool("calendar_env_reset",
		mcp.WithDescription("Reset the evaluation environment before a new run"),
	)

	s.AddTool(resetTool, common.InstrumentedToolHandler("calendar_env_reset", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReset(ctx, request, sc)
		}))

	configTool := mcp.NewTool("calendar_env_config",
		mcp.WithDescription("Show the scenario configuration the environment was loaded with"),
	)

	s.AddTool(configTool, common.InstrumentedToolHandler("calendar_env_config", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleConfig(ctx, request, sc)
		}))

	return nil
}

type resetResult struct {
	Reset bool `json:"reset"`
}

type configResult struct {
	Path   string         `json:"path"`
	Config map[string]any `json:"config"`
}

func handleReset(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	env := sc.Environment()
	if env == nil {
		return mcp.NewToolResultError("calendar environment is not initialized"), nil
	}
	return common.JSONResult(resetResult{Reset: env.Reset(ctx)})
}

func handleConfig(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	env := sc.Environment()
	if env == nil {
		return mcp.NewToolResultError("calendar environment is not initialized"), nil
	}
	return common.JSONResult(configResult{Path: env.ConfigPath(), Config: env.Config()})
}
