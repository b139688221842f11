// Package instrumentation provides OpenTelemetry metrics and tracing for
// calendarenv.
//
// # Metrics
//
// Calendar API metrics:
//   - google_api_operations_total: Calendar API calls by service, operation, status
//   - google_api_operation_duration_seconds: Calendar API call durations
//   - calendar_delete_failures_total: delete failures swallowed by the client
//
// Harness metrics:
//   - mcp_tool_invocations_total: MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: MCP tool execution durations
//   - environment_resets_total: Environment.Reset calls
//
// # Tracing
//
// Client spans are created for each Calendar API call
// (google.calendar.<operation>) and server spans for each MCP tool
// invocation (tool.<name>).
//
// # Configuration
//
// Instrumentation is configured from environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: calendarenv)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	client, err := calendar.NewClient(ctx, tokens,
//		calendar.WithMetrics(provider.Metrics()))
package instrumentation
