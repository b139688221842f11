package environment

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calendarenv/internal/calendar"
	"github.com/teemow/calendarenv/internal/calendar/calendartest"
	"github.com/teemow/calendarenv/internal/logging"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFakeClient(t *testing.T) (*calendar.Client, *calendartest.Server) {
	t.Helper()
	fake := calendartest.NewServer()
	t.Cleanup(fake.Close)

	client, err := calendar.NewClientWithHTTPClient(context.Background(), fake.HTTPClient(),
		calendar.WithAPIOptions(fake.APIOptions()...))
	require.NoError(t, err)
	return client, fake
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    map[string]any
		wantErr string
	}{
		{
			name:    "scenario",
			content: ptr(`{"scenario": "demo"}`),
			want:    map[string]any{"scenario": "demo"},
		},
		{
			name:    "nested",
			content: ptr(`{"users": ["a@x.com"], "limits": {"events": 3}}`),
			want: map[string]any{
				"users":  []any{"a@x.com"},
				"limits": map[string]any{"events": float64(3)},
			},
		},
		{
			name:    "null document",
			content: ptr(`null`),
			want:    map[string]any{},
		},
		{
			name:    "malformed",
			content: ptr(`{"scenario": `),
			wantErr: "failed to parse config file",
		},
		{
			name:    "not an object",
			content: ptr(`["demo"]`),
			wantErr: "failed to parse config file",
		},
		{
			name:    "missing file",
			wantErr: "failed to read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.json")
			if tt.content != nil {
				path = writeFile(t, "config.json", *tt.content)
			}

			got, err := LoadConfig(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWithClient(t *testing.T) {
	client, _ := newFakeClient(t)
	configPath := writeFile(t, "config.json", `{"scenario": "demo"}`)

	env, err := NewWithClient(client, configPath)
	require.NoError(t, err)
	assert.Same(t, client, env.Client())
	assert.Equal(t, map[string]any{"scenario": "demo"}, env.Config())
	assert.Equal(t, configPath, env.ConfigPath())

	_, err = NewWithClient(nil, configPath)
	require.Error(t, err)

	_, err = NewWithClient(client, filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	fake := calendartest.NewServer()
	t.Cleanup(fake.Close)
	fake.SetCalendarPages([]map[string]any{{"id": "me@example.com", "primary": true}})

	tokenPath := writeFile(t, "token.json", `{"token": "access-123", "refresh_token": "refresh-456"}`)
	configPath := writeFile(t, "config.json", `{"scenario": "demo"}`)

	env, err := New(context.Background(), tokenPath, configPath,
		WithClientOptions(calendar.WithAPIOptions(fake.APIOptions()...)))
	require.NoError(t, err)
	assert.Equal(t, "demo", env.Config()["scenario"])

	calendars, err := env.Client().ListCalendars(context.Background())
	require.NoError(t, err)
	require.Len(t, calendars, 1)

	reqs := fake.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "Bearer access-123", reqs[0].Header.Get("Authorization"))
}

func TestNew_Errors(t *testing.T) {
	tokenPath := writeFile(t, "token.json", `{"token": "access-123"}`)
	configPath := writeFile(t, "config.json", `{}`)
	absentToken := filepath.Join(t.TempDir(), "absent.json")

	tests := []struct {
		name       string
		tokenPath  string
		configPath string
		wantErr    string
	}{
		{
			name:       "missing token",
			tokenPath:  absentToken,
			configPath: configPath,
			wantErr:    "no Google OAuth token found at " + absentToken,
		},
		{
			name:       "invalid token",
			tokenPath:  writeFile(t, "bad.json", `{}`),
			configPath: configPath,
			wantErr:    "failed to create calendar client",
		},
		{
			name:       "missing config",
			tokenPath:  tokenPath,
			configPath: filepath.Join(t.TempDir(), "absent.json"),
			wantErr:    "failed to read config file",
		},
		{
			name:       "malformed config",
			tokenPath:  tokenPath,
			configPath: writeFile(t, "broken.json", `{`),
			wantErr:    "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := New(context.Background(), tt.tokenPath, tt.configPath)
			require.Error(t, err)
			assert.Nil(t, env)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvironment_Reset(t *testing.T) {
	var buf bytes.Buffer
	client, fake := newFakeClient(t)
	configPath := writeFile(t, "config.json", `{"scenario": "demo"}`)

	env, err := NewWithClient(client, configPath, WithLogger(logging.NewLogger(&buf, true)))
	require.NoError(t, err)

	assert.True(t, env.Reset(context.Background()))
	assert.True(t, env.Reset(context.Background()))
	assert.Contains(t, buf.String(), "environment reset")
	assert.Empty(t, fake.Requests())
}

func ptr(s string) *string {
	return &s
}
