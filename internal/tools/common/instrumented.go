package common

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/calendarenv/internal/instrumentation"
	"github.com/teemow/calendarenv/internal/logging"
	"github.com/teemow/calendarenv/internal/server"
)

// ToolHandler is the signature of an MCP tool handler.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with a span, metrics, a
// debug log line and an audit record per invocation.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return instrument(toolName, sc, handler, nil)
}

// InstrumentedToolHandlerWithService is like InstrumentedToolHandler but
// also tags the span and log line with the Google service and operation the
// tool drives. The API call itself is measured by the calendar client.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithService("my_tool", "calendar", "list_calendars", sc, handler))
func InstrumentedToolHandlerWithService(
	toolName string,
	serviceName string,
	operation string,
	sc *server.ServerContext,
	handler ToolHandler,
) ToolHandler {
	return instrument(toolName, sc, handler,
		func(ti *instrumentation.ToolInvocation) { ti.WithService(serviceName, operation) },
		attribute.String(instrumentation.SpanAttrService, serviceName),
		attribute.String(instrumentation.SpanAttrOperation, operation),
	)
}

func instrument(
	toolName string,
	sc *server.ServerContext,
	handler ToolHandler,
	describe func(*instrumentation.ToolInvocation),
	attrs ...attribute.KeyValue,
) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		ctx, span := instrumentation.StartToolSpan(ctx, toolName, attrs...)

		invocation := instrumentation.NewToolInvocation(toolName).
			WithCalendar(CalendarIDArg(request.GetArguments())).
			WithSpanContext(ctx)
		if describe != nil {
			describe(invocation)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}
		instrumentation.EndSpan(span, err)

		if status == instrumentation.StatusSuccess {
			invocation.CompleteSuccess()
		} else {
			invocation.CompleteWithError(toolError(result, err))
		}
		sc.AuditLogger().LogToolInvocation(ctx, invocation)

		sc.Metrics().RecordToolInvocation(ctx, toolName, status, duration)

		logAttrs := []any{
			logging.Tool(toolName),
			logging.Status(status),
			slog.Duration(logging.KeyDuration, duration),
			logging.Err(err),
		}
		for _, a := range attrs {
			logAttrs = append(logAttrs, slog.String(string(a.Key), a.Value.AsString()))
		}
		if traceID := instrumentation.GetTraceID(ctx); traceID != "" {
			logAttrs = append(logAttrs, slog.String("trace_id", traceID))
		}
		sc.Logger().Debug("tool invocation", logAttrs...)

		return result, err
	}
}

// errJSONResult stands in for structured error results, which may carry
// event ids and bodies.
var errJSONResult = errors.New("tool returned an error result")

// toolError returns err, or the message of an error result when the
// handler reported failure through the result instead.
func toolError(result *mcp.CallToolResult, err error) error {
	if err != nil || result == nil {
		return err
	}
	for _, c := range result.Content {
		text, ok := c.(mcp.TextContent)
		if !ok || text.Text == "" {
			continue
		}
		if strings.HasPrefix(text.Text, "{") || strings.HasPrefix(text.Text, "[") {
			return errJSONResult
		}
		return errors.New(text.Text)
	}
	return nil
}
