package calendar_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarenv/internal/calendar"
	"github.com/teemow/calendarenv/internal/server"
)

// getCalendarClient returns the client of the loaded environment.
func getCalendarClient(sc *server.ServerContext) (*calendar.Client, error) {
	client, err := sc.CalendarClient()
	if err != nil {
		return nil, fmt.Errorf("%w. Start the server with --token and --config pointing at a valid token file and environment config", err)
	}
	return client, nil
}

// RegisterCalendarTools registers all Calendar-related tools with the MCP server
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterCalendarListTools(s, sc); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	if err := RegisterEventTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	if err := RegisterEnvironmentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register environment tools: %w", err)
	}

	return nil
}
