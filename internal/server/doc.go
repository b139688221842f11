// Package server provides the runtime context shared by the MCP tools and
// the auxiliary HTTP endpoints of the calendarenv server.
//
// # Key Components
//
// ServerContext owns the calendar Environment, the metrics recorder and the
// shutdown state. Tools obtain the calendar client through it.
//
// HealthChecker serves liveness and readiness probes:
//   - /healthz: the process is running
//   - /readyz: the server is ready and not shutting down
//   - /healthz/detailed: uptime and environment details
//
// MetricsServer exposes Prometheus metrics on a dedicated address, separate
// from the stdio MCP transport.
package server
