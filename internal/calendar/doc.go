// Package calendar provides a client for the Google Calendar v3 API.
//
// The client is a stateless facade: it lists calendars, creates, reads,
// updates, deletes and searches events. Response bodies are decoded
// straight into a Payload (a generic JSON object), so zero values, nulls
// and keys the typed client library does not know survive unchanged.
// UpdateEvent sends the caller's Payload as the request body without
// reshaping it. Nothing is cached between calls and no retries are
// attempted here.
//
// The Calendar client library is used only to resolve the API base path;
// requests go through the supplied HTTP client and errors are mapped with
// googleapi.CheckResponse.
//
// Errors from every operation except DeleteEvent are returned to the
// caller wrapped with %w, so errors.As to *googleapi.Error and IsNotFound
// both work. DeleteEvent reports only a boolean.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx, google.NewFileTokenProvider(tokenPath))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	events, err := client.SearchEvents(ctx,
//	    "2024-05-01T00:00:00Z", "2024-05-08T00:00:00Z", "primary")
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
