// Package calendar_tools provides MCP (Model Context Protocol) tools for the
// calendar evaluation environment.
//
// The tools expose the calendar client operations (calendar listing, event
// CRUD, batch deletion and search) and the environment hooks to evaluation
// agents. Results are returned as JSON text exactly as the Calendar API
// returned them. Write tools are only registered when the server is not
// read-only.
package calendar_tools
