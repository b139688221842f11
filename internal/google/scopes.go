package google

// CalendarScope grants read/write access to calendars and events.
const CalendarScope = "https://www.googleapis.com/auth/calendar"

// Service identity for the Calendar API.
const (
	ServiceName    = "calendar"
	ServiceVersion = "v3"
)

// DefaultOAuthScopes are the scopes requested for the calendar harness.
var DefaultOAuthScopes = []string{
	CalendarScope,
}
