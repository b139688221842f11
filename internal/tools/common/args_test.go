package common

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommaSeparatedList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string", input: "", expected: nil},
		{name: "single item", input: "a@x.com", expected: []string{"a@x.com"}},
		{name: "multiple items", input: "a@x.com,b@x.com", expected: []string{"a@x.com", "b@x.com"}},
		{name: "items with spaces", input: " a@x.com , b@x.com ", expected: []string{"a@x.com", "b@x.com"}},
		{name: "empty items filtered", input: "a@x.com,,b@x.com,", expected: []string{"a@x.com", "b@x.com"}},
		{name: "only commas", input: ",,,", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCommaSeparatedList(tt.input))
		})
	}
}

func TestStringListArg(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		expected []string
	}{
		{name: "missing", args: map[string]any{}, expected: nil},
		{name: "comma string", args: map[string]any{"attendees": "a@x.com, b@x.com"}, expected: []string{"a@x.com", "b@x.com"}},
		{name: "json array", args: map[string]any{"attendees": []any{"a@x.com", "", 3, "b@x.com"}}, expected: []string{"a@x.com", "b@x.com"}},
		{name: "string slice", args: map[string]any{"attendees": []string{"a@x.com"}}, expected: []string{"a@x.com"}},
		{name: "wrong type", args: map[string]any{"attendees": 42}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StringListArg(tt.args, "attendees"))
		})
	}
}

func TestStringArgs(t *testing.T) {
	args := map[string]any{"summary": "Lunch", "empty": "", "count": 3}

	assert.Equal(t, "Lunch", StringArg(args, "summary"))
	assert.Equal(t, "", StringArg(args, "count"))
	assert.Equal(t, "", CalendarIDArg(args))
	assert.Equal(t, "team", CalendarIDArg(map[string]any{"calendarId": "team"}))

	v, err := RequiredStringArg(args, "summary")
	require.NoError(t, err)
	assert.Equal(t, "Lunch", v)
	_, err = RequiredStringArg(args, "empty")
	assert.EqualError(t, err, "empty is required")

	assert.Nil(t, OptionalStringArg(args, "missing"))
	assert.Nil(t, OptionalStringArg(args, "count"))
	require.NotNil(t, OptionalStringArg(args, "empty"))
	assert.Equal(t, "", *OptionalStringArg(args, "empty"))
}

func TestObjectArg(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    map[string]any
		wantErr bool
	}{
		{name: "object", value: map[string]any{"summary": "x"}, want: map[string]any{"summary": "x"}},
		{name: "json string", value: `{"summary":"x"}`, want: map[string]any{"summary": "x"}},
		{name: "json null", value: `null`, wantErr: true},
		{name: "invalid json", value: `{`, wantErr: true},
		{name: "missing", value: nil, wantErr: true},
		{name: "wrong type", value: 5.0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ObjectArg(map[string]any{"event": tt.value}, "event")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONResult(t *testing.T) {
	result, err := JSONResult(map[string]any{"ok": true})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"ok": true}`, text.Text)

	result, err = JSONResult(func() {})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
