// Package resources provides MCP resources for the calendar environment.
// Resources are read-only data sources that MCP clients can fetch, such as
// the loaded environment configuration and the account's calendar list.
package resources
