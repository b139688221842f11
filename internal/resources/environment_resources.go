package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarenv/internal/calendar"
	"github.com/teemow/calendarenv/internal/server"
)

// Resource URIs.
const (
	ConfigURI    = "calendarenv://environment/config"
	CalendarsURI = "calendarenv://calendars"
)

const mimeTypeJSON = "application/json"

// RegisterEnvironmentResources registers the environment resources
func RegisterEnvironmentResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	configResource := mcp.NewResource(
		ConfigURI,
		"Environment Configuration",
		mcp.WithResourceDescription("The JSON configuration the calendar environment was loaded with"),
		mcp.WithMIMEType(mimeTypeJSON),
	)

	s.AddResource(configResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleConfig(ctx, request, sc)
	})

	calendarsResource := mcp.NewResource(
		CalendarsURI,
		"Calendars",
		mcp.WithResourceDescription("Summary of every calendar visible to the authenticated account"),
		mcp.WithMIMEType(mimeTypeJSON),
	)

	s.AddResource(calendarsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCalendars(ctx, request, sc)
	})

	return nil
}

func handleConfig(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	env := sc.Environment()
	if env == nil {
		return nil, fmt.Errorf("calendar environment is not initialized")
	}

	return jsonContents(request.Params.URI, map[string]any{
		"path":   env.ConfigPath(),
		"config": env.Config(),
	})
}

func handleCalendars(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client, err := sc.CalendarClient()
	if err != nil {
		return nil, err
	}

	calendars, err := client.ListCalendars(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]calendar.CalendarInfo, 0, len(calendars))
	for _, p := range calendars {
		infos = append(infos, calendar.CalendarInfoFromPayload(p))
	}

	return jsonContents(request.Params.URI, infos)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeTypeJSON,
			Text:     string(jsonData),
		},
	}, nil
}
