package google

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func writeToken(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestFileTokenProvider(t *testing.T) {
	expiry := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	path := writeToken(t, `{"token":"ya29.valid","refresh_token":"r","expiry":"`+expiry+`"}`)

	p := NewFileTokenProvider(path)
	assert.Equal(t, path, p.Path())
	assert.True(t, p.HasToken())

	ts, err := p.TokenSource(context.Background())
	require.NoError(t, err)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.valid", tok.AccessToken)
}

func TestFileTokenProvider_Missing(t *testing.T) {
	p := NewFileTokenProvider(filepath.Join(t.TempDir(), "nope.json"))
	assert.False(t, p.HasToken())

	_, err := p.TokenSource(context.Background())
	assert.Error(t, err)
}

func TestFileTokenProvider_DefaultPath(t *testing.T) {
	p := NewFileTokenProvider("")
	assert.Equal(t, DefaultTokenPath(), p.Path())
}

func TestStaticTokenProvider(t *testing.T) {
	p := NewStaticTokenProvider(&oauth2.Token{AccessToken: "static"})
	assert.True(t, p.HasToken())

	ts, err := p.TokenSource(context.Background())
	require.NoError(t, err)
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "static", tok.AccessToken)

	empty := NewStaticTokenProvider(nil)
	assert.False(t, empty.HasToken())
	_, err = empty.TokenSource(context.Background())
	assert.Error(t, err)
}

func TestTokenProviderInterface(t *testing.T) {
	var _ TokenProvider = (*FileTokenProvider)(nil)
	var _ TokenProvider = (*StaticTokenProvider)(nil)
}
