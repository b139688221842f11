// Package google loads OAuth2 credentials for the Google Calendar API.
//
// Token material is produced by an external authorization flow and read
// from disk. Both the google-auth "authorized user" JSON layout and the
// golang.org/x/oauth2 Token JSON layout are accepted. Refreshing an expired
// access token is left to oauth2.TokenSource.
//
// The TokenProvider interface lets callers swap the file-based source for
// a static token in tests.
package google
