package google

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"

	"github.com/teemow/calendarenv/internal/logging"
)

// TokenProvider supplies OAuth tokens for the Calendar API.
type TokenProvider interface {
	// TokenSource returns a refreshing token source.
	TokenSource(ctx context.Context) (oauth2.TokenSource, error)

	// HasToken reports whether token material is available.
	HasToken() bool
}

// FileTokenProvider reads token material from a file on disk.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a file-based token provider.
// An empty path falls back to DefaultTokenPath.
func NewFileTokenProvider(path string) *FileTokenProvider {
	if path == "" {
		path = DefaultTokenPath()
	}
	return &FileTokenProvider{path: path}
}

// Path returns the token file location.
func (p *FileTokenProvider) Path() string {
	return p.path
}

// HasToken checks if the token file exists.
func (p *FileTokenProvider) HasToken() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// TokenSource loads the token file and wraps it in a refreshing source.
func (p *FileTokenProvider) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	creds, err := LoadCredentials(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load Google OAuth token: %w", err)
	}

	slog.Debug("loaded calendar token",
		slog.String("path", p.path),
		slog.String("access_token", logging.SanitizeToken(creds.Token.AccessToken)),
		slog.Bool("has_refresh_token", creds.Token.RefreshToken != ""))

	conf := GetOAuthConfig(creds)
	return conf.TokenSource(ctx, creds.Token), nil
}

// StaticTokenProvider serves a fixed token without refresh.
type StaticTokenProvider struct {
	token *oauth2.Token
}

// NewStaticTokenProvider creates a provider around an existing token.
func NewStaticTokenProvider(token *oauth2.Token) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// HasToken reports whether a token was supplied.
func (p *StaticTokenProvider) HasToken() bool {
	return p.token != nil
}

// TokenSource returns a source that always yields the static token.
func (p *StaticTokenProvider) TokenSource(_ context.Context) (oauth2.TokenSource, error) {
	if p.token == nil {
		return nil, fmt.Errorf("no token configured")
	}
	return oauth2.StaticTokenSource(p.token), nil
}
