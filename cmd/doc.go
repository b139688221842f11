// Package cmd implements the command-line interface for calendarenv.
//
// This package provides the following commands:
//   - calendars: List calendars and show single calendar entries
//   - events: Create, get, update, delete and search events
//   - env: Reset the environment and show its configuration
//   - serve: Start the MCP server to provide tools for evaluation agents
//   - generate-docs: Generate markdown documentation for all MCP tools
//   - version: Display version information
//
// Global flags select the token file, the environment configuration and
// the output format. CALENDARENV_TOKEN and CALENDARENV_CONFIG are used when
// the flags are not set, and a .env file in the working directory is loaded
// first.
package cmd
