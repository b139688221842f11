package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/calendarenv/internal/google"
	"github.com/teemow/calendarenv/internal/instrumentation"
	"github.com/teemow/calendarenv/internal/logging"
)

// Client talks to the Google Calendar v3 REST API. Request and response
// bodies are exchanged as raw JSON objects so that every field the service
// sends, including zero values and keys unknown to the typed client
// library, reaches the caller unchanged.
type Client struct {
	httpClient *http.Client
	basePath   string
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
	apiOpts    []option.ClientOption
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for swallowed errors and debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics enables recording of Google API operation metrics.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithAPIOptions appends client library options used to resolve the API
// endpoint, e.g. option.WithEndpoint for a local fake.
func WithAPIOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.apiOpts = append(c.apiOpts, opts...)
	}
}

// NewClient creates a new Calendar client authorized by the given token provider
func NewClient(ctx context.Context, provider google.TokenProvider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	tokenSource, err := provider.TokenSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token: %w", err)
	}

	// Force HTTP/1.1 by disabling HTTP/2
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: tokenSource,
			Base:   &http.Transport{ForceAttemptHTTP2: false, Proxy: http.ProxyFromEnvironment},
		},
	}

	return NewClientWithHTTPClient(ctx, httpClient, opts...)
}

// NewClientWithHTTPClient creates a Client that sends requests through
// httpClient, which must already carry any authorization. The base path is
// resolved by the Calendar client library from the configured API options.
func NewClientWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...Option) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}

	c := &Client{
		httpClient: httpClient,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	apiOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.apiOpts...)
	svc, err := calendar.NewService(ctx, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	c.basePath = svc.BasePath

	return c, nil
}

// IsNotFound reports whether err carries a 404 from the Calendar API.
func IsNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}

// request describes one REST call relative to the API base path.
type request struct {
	method string
	path   string            // template, e.g. "calendars/{calendarId}/events"
	params map[string]string // path template expansions
	query  url.Values
	body   any
}

// do sends r and decodes the JSON response into out. A nil out discards
// the response body. Non-2xx responses become *googleapi.Error.
func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	query := url.Values{}
	for k, v := range r.query {
		query[k] = v
	}
	query.Set("alt", "json")
	query.Set("prettyPrint", "false")

	urls := googleapi.ResolveRelative(c.basePath, r.path) + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, r.method, urls, body)
	if err != nil {
		return err
	}
	googleapi.Expand(req.URL, r.params)
	req.Header.Set("User-Agent", googleapi.UserAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer googleapi.CloseBody(res)

	if err := googleapi.CheckResponse(res); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// listPage is one page of a calendarList or events list response.
type listPage struct {
	Items         []Payload `json:"items"`
	NextPageToken string    `json:"nextPageToken"`
}

// observe runs fn inside a client span and records the operation metrics.
func (c *Client) observe(ctx context.Context, operation string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	start := time.Now()
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceCalendar, operation, attrs...)

	err := fn(ctx)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	instrumentation.EndSpan(span, err)
	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, operation, status, time.Since(start))
	return err
}

// ListCalendars returns every calendar visible to the account, following
// page tokens until the service stops returning one.
func (c *Client) ListCalendars(ctx context.Context) ([]Payload, error) {
	calendars := []Payload{}

	err := c.observe(ctx, instrumentation.OpListCalendars, func(ctx context.Context) error {
		pageToken := ""
		pages := 0
		for {
			query := url.Values{}
			if pageToken != "" {
				query.Set("pageToken", pageToken)
			}

			var list listPage
			err := c.do(ctx, request{method: http.MethodGet, path: "users/me/calendarList", query: query}, &list)
			if err != nil {
				return fmt.Errorf("failed to list calendars: %w", err)
			}
			pages++

			calendars = append(calendars, list.Items...)

			pageToken = list.NextPageToken
			if pageToken == "" {
				break
			}
		}

		c.logger.Debug("listed calendars",
			logging.Operation(instrumentation.OpListCalendars),
			logging.Count(len(calendars)),
			slog.Int("pages", pages))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return calendars, nil
}

// GetCalendar returns the calendar list entry for calendarID.
func (c *Client) GetCalendar(ctx context.Context, calendarID string) (Payload, error) {
	calendarID = calendarIDOrPrimary(calendarID)

	var result Payload
	err := c.observe(ctx, instrumentation.OpGetCalendar, func(ctx context.Context) error {
		err := c.do(ctx, request{
			method: http.MethodGet,
			path:   "users/me/calendarList/{calendarId}",
			params: map[string]string{"calendarId": calendarID},
		}, &result)
		if err != nil {
			return fmt.Errorf("failed to get calendar: %w", err)
		}
		return nil
	}, instrumentation.CalendarID(calendarID))
	return result, err
}

// CreateEvent inserts a new event and returns it as created by the service.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (Payload, error) {
	calendarID := calendarIDOrPrimary(input.CalendarID)
	body := NewEventBody(input)

	var result Payload
	err := c.observe(ctx, instrumentation.OpCreateEvent, func(ctx context.Context) error {
		err := c.do(ctx, request{
			method: http.MethodPost,
			path:   "calendars/{calendarId}/events",
			params: map[string]string{"calendarId": calendarID},
			body:   body,
		}, &result)
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		return nil
	}, instrumentation.CalendarID(calendarID))
	return result, err
}

// deleteOutcome carries the result of a delete call before it is
// collapsed to a bool.
type deleteOutcome struct {
	err error
}

func (o deleteOutcome) ok() bool {
	return o.err == nil
}

// DeleteEvent deletes an event. Failures of any kind are logged and
// reported as false; the cause is not returned.
func (c *Client) DeleteEvent(ctx context.Context, eventID, calendarID string) bool {
	calendarID = calendarIDOrPrimary(calendarID)
	outcome := c.deleteEvent(ctx, eventID, calendarID)
	if !outcome.ok() {
		c.metrics.RecordDeleteFailure(ctx)
		c.logger.Error("failed to delete event",
			logging.EventID(eventID),
			logging.CalendarID(calendarID),
			logging.Err(outcome.err))
	}
	return outcome.ok()
}

func (c *Client) deleteEvent(ctx context.Context, eventID, calendarID string) deleteOutcome {
	err := c.observe(ctx, instrumentation.OpDeleteEvent, func(ctx context.Context) error {
		return c.do(ctx, request{
			method: http.MethodDelete,
			path:   "calendars/{calendarId}/events/{eventId}",
			params: map[string]string{"calendarId": calendarID, "eventId": eventID},
		}, nil)
	}, instrumentation.CalendarID(calendarID), instrumentation.EventID(eventID))
	return deleteOutcome{err: err}
}

// GetEvent returns a single event.
func (c *Client) GetEvent(ctx context.Context, eventID, calendarID string) (Payload, error) {
	calendarID = calendarIDOrPrimary(calendarID)

	var result Payload
	err := c.observe(ctx, instrumentation.OpGetEvent, func(ctx context.Context) error {
		err := c.do(ctx, request{
			method: http.MethodGet,
			path:   "calendars/{calendarId}/events/{eventId}",
			params: map[string]string{"calendarId": calendarID, "eventId": eventID},
		}, &result)
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		return nil
	}, instrumentation.CalendarID(calendarID), instrumentation.EventID(eventID))
	return result, err
}

// UpdateEvent replaces an existing event with the supplied body. The body
// is sent as given, so every key the caller sets reaches the service.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, updated Payload, calendarID string) (Payload, error) {
	calendarID = calendarIDOrPrimary(calendarID)
	if updated == nil {
		return nil, fmt.Errorf("failed to update event: body cannot be nil")
	}

	var result Payload
	err := c.observe(ctx, instrumentation.OpUpdateEvent, func(ctx context.Context) error {
		err := c.do(ctx, request{
			method: http.MethodPut,
			path:   "calendars/{calendarId}/events/{eventId}",
			params: map[string]string{"calendarId": calendarID, "eventId": eventID},
			body:   updated,
		}, &result)
		if err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}
		return nil
	}, instrumentation.CalendarID(calendarID), instrumentation.EventID(eventID))
	return result, err
}

// SearchEvents lists events between startTime and endTime with recurring
// events expanded into instances, ordered by start time.
func (c *Client) SearchEvents(ctx context.Context, startTime, endTime, calendarID string) ([]Payload, error) {
	calendarID = calendarIDOrPrimary(calendarID)
	events := []Payload{}

	err := c.observe(ctx, instrumentation.OpSearchEvents, func(ctx context.Context) error {
		query := url.Values{}
		query.Set("timeMin", startTime)
		query.Set("timeMax", endTime)
		query.Set("singleEvents", "true")
		query.Set("orderBy", "startTime")

		var list listPage
		err := c.do(ctx, request{
			method: http.MethodGet,
			path:   "calendars/{calendarId}/events",
			params: map[string]string{"calendarId": calendarID},
			query:  query,
		}, &list)
		if err != nil {
			return fmt.Errorf("failed to search events: %w", err)
		}

		events = append(events, list.Items...)
		return nil
	}, instrumentation.CalendarID(calendarID))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("searched events",
		logging.Operation(instrumentation.OpSearchEvents),
		logging.CalendarID(calendarID),
		logging.Count(len(events)))
	return events, nil
}
