package common

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StringArg returns the string argument key, or "" if absent.
func StringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// RequiredStringArg returns the string argument key or an error when it is
// missing or empty.
func RequiredStringArg(args map[string]any, key string) (string, error) {
	s := StringArg(args, key)
	if s == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

// OptionalStringArg returns a pointer to the string argument key, or nil
// when the caller did not send it.
func OptionalStringArg(args map[string]any, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// CalendarIDArg returns the calendarId argument. Empty selects the primary
// calendar.
func CalendarIDArg(args map[string]any) string {
	return StringArg(args, "calendarId")
}

// StringListArg accepts either a JSON array of strings or a comma-separated
// string.
func StringListArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case string:
		return ParseCommaSeparatedList(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case []string:
		return v
	}
	return nil
}

// ObjectArg returns the object argument key. A JSON-encoded string is
// accepted as well.
func ObjectArg(args map[string]any, key string) (map[string]any, error) {
	switch v := args[key].(type) {
	case map[string]any:
		return v, nil
	case string:
		var obj map[string]any
		if err := json.Unmarshal([]byte(v), &obj); err != nil {
			return nil, fmt.Errorf("%s must be a JSON object: %w", key, err)
		}
		if obj == nil {
			return nil, fmt.Errorf("%s must be a JSON object", key)
		}
		return obj, nil
	case nil:
		return nil, fmt.Errorf("%s is required", key)
	}
	return nil, fmt.Errorf("%s must be a JSON object", key)
}

// ParseCommaSeparatedList splits s on commas and drops empty items.
func ParseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// JSONResult renders v as an indented JSON text result.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
