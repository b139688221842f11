// Package logging provides structured logging helpers for calendarenv.
//
// All packages log through log/slog. This package keeps attribute names
// consistent across the calendar client, the evaluation environment and
// the MCP tools.
//
// # Usage Patterns
//
// Scope a logger to a calendar operation:
//
//	logger := logging.WithOperation(slog.Default(), "calendar.delete_event")
//	logger.Error("failed to delete event",
//	    logging.CalendarID("primary"),
//	    logging.EventID(id),
//	    logging.Err(err))
//
// Attendee addresses and OAuth tokens are never logged verbatim; use
// AnonymizeEmail and SanitizeToken.
package logging
