package google

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Credentials is the token material read from a token file.
// ClientID, ClientSecret and TokenURI are optional; when present they
// override the environment for token refresh.
type Credentials struct {
	Token        *oauth2.Token
	ClientID     string
	ClientSecret string
	TokenURI     string
	Scopes       []string
}

// tokenFile covers both the google-auth authorized user layout
// ("token", "client_id", ...) and the oauth2.Token layout ("access_token").
type tokenFile struct {
	Token        string   `json:"token"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
	Expiry       string   `json:"expiry"`
}

// DefaultTokenPath returns the token location used when none is given.
func DefaultTokenPath() string {
	return filepath.Join(xdg.ConfigHome, "calendarenv", "token.json")
}

// LoadCredentials reads and decodes the token file at path.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}
	return ParseCredentials(data)
}

// ParseCredentials decodes token file contents.
func ParseCredentials(data []byte) (*Credentials, error) {
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	access := tf.Token
	if access == "" {
		access = tf.AccessToken
	}
	if access == "" && tf.RefreshToken == "" {
		return nil, fmt.Errorf("token file contains neither an access token nor a refresh token")
	}

	tok := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: tf.RefreshToken,
		TokenType:    tf.TokenType,
	}
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}
	if tf.Expiry != "" {
		expiry, err := time.Parse(time.RFC3339, tf.Expiry)
		if err != nil {
			return nil, fmt.Errorf("invalid token expiry %q: %w", tf.Expiry, err)
		}
		tok.Expiry = expiry
	}

	return &Credentials{
		Token:        tok,
		ClientID:     tf.ClientID,
		ClientSecret: tf.ClientSecret,
		TokenURI:     tf.TokenURI,
		Scopes:       tf.Scopes,
	}, nil
}

// GetOAuthConfig returns the OAuth2 configuration used to refresh calendar
// tokens. Client credentials come from creds when set, otherwise from
// GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET.
func GetOAuthConfig(creds *Credentials) *oauth2.Config {
	conf := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Endpoint:     google.Endpoint,
		Scopes:       DefaultOAuthScopes,
	}
	if creds == nil {
		return conf
	}
	if creds.ClientID != "" {
		conf.ClientID = creds.ClientID
	}
	if creds.ClientSecret != "" {
		conf.ClientSecret = creds.ClientSecret
	}
	if creds.TokenURI != "" {
		conf.Endpoint.TokenURL = creds.TokenURI
	}
	return conf
}
