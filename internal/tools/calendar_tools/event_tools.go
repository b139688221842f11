package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarenv/internal/calendar"
	"github.com/teemow/calendarenv/internal/instrumentation"
	"github.com/teemow/calendarenv/internal/server"
	"github.com/teemow/calendarenv/internal/tools/batch"
	"github.com/teemow/calendarenv/internal/tools/common"
)

// RegisterEventTools registers event-related tools with the MCP server.
// Create, update and delete are skipped when readOnly is set.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	searchEventsTool := mcp.NewTool("calendar_search_events",
		mcp.WithDescription("Search events between two instants. Recurring events are expanded into single instances ordered by start time."),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start of the range (RFC3339, e.g. '2025-01-01T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End of the range (RFC3339, e.g. '2025-01-31T23:59:59Z')"),
		),
	)

	s.AddTool(searchEventsTool, common.InstrumentedToolHandlerWithService(
		"calendar_search_events", instrumentation.ServiceCalendar, instrumentation.OpSearchEvents, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchEvents(ctx, request, sc)
		}))

	getEventTool := mcp.NewTool("calendar_get_event",
		mcp.WithDescription("Get details of a specific calendar event"),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to retrieve"),
		),
	)

	s.AddTool(getEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_get_event", instrumentation.ServiceCalendar, instrumentation.OpGetEvent, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEvent(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createEventTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a new calendar event"),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("summary",
			mcp.Description("Event title"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339, e.g. '2025-01-15T14:00:00Z')"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End time (RFC3339, e.g. '2025-01-15T15:00:00Z')"),
		),
		mcp.WithString("timeZone",
			mcp.Description("IANA time zone for start and end (default: 'UTC')"),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_create_event", instrumentation.ServiceCalendar, instrumentation.OpCreateEvent, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	updateEventTool := mcp.NewTool("calendar_update_event",
		mcp.WithDescription("Replace an existing event with the given event resource. Fetch the event first and send back the modified object."),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to replace"),
		),
		mcp.WithObject("event",
			mcp.Required(),
			mcp.Description("Full event resource as returned by calendar_get_event, with changes applied"),
		),
	)

	s.AddTool(updateEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_update_event", instrumentation.ServiceCalendar, instrumentation.OpUpdateEvent, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateEvent(ctx, request, sc)
		}))

	deleteEventTool := mcp.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete a calendar event. Reports deleted=false on any failure."),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to delete"),
		),
	)

	s.AddTool(deleteEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_delete_event", instrumentation.ServiceCalendar, instrumentation.OpDeleteEvent, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteEvent(ctx, request, sc)
		}))

	deleteEventsTool := mcp.NewTool("calendar_delete_events",
		mcp.WithDescription("Delete several calendar events. Each event is reported separately; one failure does not stop the rest."),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithArray("eventIds",
			mcp.Required(),
			mcp.Description("Event IDs to delete (an array, a single ID, or a JSON array string)"),
			mcp.WithStringItems(),
		),
	)

	s.AddTool(deleteEventsTool, common.InstrumentedToolHandlerWithService(
		"calendar_delete_events", instrumentation.ServiceCalendar, instrumentation.OpDeleteEvent, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteEvents(ctx, request, sc)
		}))

	return nil
}

func handleSearchEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	timeMin, err := common.RequiredStringArg(args, "timeMin")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeMax, err := common.RequiredStringArg(args, "timeMax")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := client.SearchEvents(ctx, timeMin, timeMax, common.CalendarIDArg(args))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search events: %v", err)), nil
	}

	return common.JSONResult(events)
}

func handleGetEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, err := common.RequiredStringArg(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.GetEvent(ctx, eventID, common.CalendarIDArg(args))
	if err != nil {
		if calendar.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("Event %s not found", eventID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get event: %v", err)), nil
	}

	return common.JSONResult(event)
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	start, err := common.RequiredStringArg(args, "start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := common.RequiredStringArg(args, "end")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.CreateEvent(ctx, calendar.EventInput{
		Summary:     common.OptionalStringArg(args, "summary"),
		Location:    common.OptionalStringArg(args, "location"),
		Description: common.OptionalStringArg(args, "description"),
		StartTime:   start,
		EndTime:     end,
		Attendees:   common.StringListArg(args, "attendees"),
		CalendarID:  common.CalendarIDArg(args),
		TimeZone:    common.StringArg(args, "timeZone"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	return common.JSONResult(event)
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, err := common.RequiredStringArg(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := common.ObjectArg(args, "event")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.UpdateEvent(ctx, eventID, calendar.Payload(body), common.CalendarIDArg(args))
	if err != nil {
		if calendar.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("Event %s not found", eventID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update event: %v", err)), nil
	}

	return common.JSONResult(event)
}

// deleteResult is the JSON body of a delete tool result.
type deleteResult struct {
	Deleted bool   `json:"deleted"`
	EventID string `json:"eventId"`
}

func handleDeleteEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, err := common.RequiredStringArg(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	deleted := client.DeleteEvent(ctx, eventID, common.CalendarIDArg(args))

	result, err := common.JSONResult(deleteResult{Deleted: deleted, EventID: eventID})
	if result != nil && !deleted {
		result.IsError = true
	}
	return result, err
}

func handleDeleteEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventIDs, err := batch.ParseStringOrArray(args["eventIds"], "eventIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendarID := common.CalendarIDArg(args)
	results := batch.Process(eventIDs, func(id string) (string, error) {
		if !client.DeleteEvent(ctx, id, calendarID) {
			return "", fmt.Errorf("event %s was not deleted", id)
		}
		return "deleted", nil
	})

	summary := batch.Summarize(results)
	result, err := common.JSONResult(summary)
	if result != nil && summary.Failed > 0 {
		result.IsError = true
	}
	return result, err
}
