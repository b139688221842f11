// Package common provides shared utilities for MCP tool implementations:
// the instrumentation wrapper applied to every tool handler, argument
// helpers, and JSON result rendering.
package common
