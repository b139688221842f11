package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithHelpers(t *testing.T) {
	logger := slog.Default()
	if WithOperation(logger, "calendar.list_calendars") == nil {
		t.Error("WithOperation returned nil")
	}
	if WithTool(logger, "calendar_get_event") == nil {
		t.Error("WithTool returned nil")
	}
	if WithService(logger, "calendar") == nil {
		t.Error("WithService returned nil")
	}
}

func TestAttrs(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"operation", Operation("get_event"), KeyOperation, "get_event"},
		{"calendar id", CalendarID("primary"), KeyCalendarID, "primary"},
		{"event id", EventID("evt123"), KeyEventID, "evt123"},
		{"tool", Tool("calendar_search_events"), KeyTool, "calendar_search_events"},
		{"status", Status(StatusSuccess), KeyStatus, StatusSuccess},
		{"count", Count(3), KeyCount, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value.String() != tt.wantVal {
				t.Errorf("value = %q, want %q", tt.attr.Value.String(), tt.wantVal)
			}
		})
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "boom")
	}

	attr = Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty group", attr.Key)
	}
}

func TestAnonymizeEmail(t *testing.T) {
	if got := AnonymizeEmail(""); got != "" {
		t.Errorf("AnonymizeEmail(\"\") = %q, want empty", got)
	}

	h1 := AnonymizeEmail("a@x.com")
	if len(h1) != 21 || h1[:5] != "user:" {
		t.Errorf("unexpected hash format %q", h1)
	}
	if h1 != AnonymizeEmail("a@x.com") {
		t.Error("AnonymizeEmail should be deterministic")
	}
	if h1 == AnonymizeEmail("b@y.com") {
		t.Error("different emails should hash differently")
	}
}

func TestAttendees(t *testing.T) {
	attr := Attendees([]string{"a@x.com", "b@y.com"})
	hashed, ok := attr.Value.Any().([]string)
	if !ok {
		t.Fatalf("Attendees value type = %T, want []string", attr.Value.Any())
	}
	if len(hashed) != 2 {
		t.Fatalf("len = %d, want 2", len(hashed))
	}
	for _, h := range hashed {
		if h == "a@x.com" || h == "b@y.com" {
			t.Errorf("attendee email leaked into log attribute: %q", h)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"ya29.a0Af_long_access_token", "[token:27 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := SanitizeToken(tt.token); got != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.expected)
			}
		})
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"a@x.com", "x.com"},
		{"invalid", ""},
		{"", ""},
		{"user@", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ExtractDomain(tt.email); got != tt.expected {
				t.Errorf("ExtractDomain(%q) = %q, want %q", tt.email, got, tt.expected)
			}
		})
	}
}
