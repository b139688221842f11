// Package calendartest provides an in-memory fake of the Google Calendar v3
// REST API for use in tests.
//
// The fake understands the subset of endpoints the calendar client calls:
// calendar list paging, calendar list entries, and event insert, get,
// update, delete and list. Recurring events carrying an RRULE are expanded
// into instances when the list request sets singleEvents=true.
package calendartest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/teambition/rrule-go"
	"google.golang.org/api/option"
)

const pageTokenPrefix = "page-"

// Request is a request received by the fake.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type failure struct {
	method string
	prefix string
	code   int
}

// Server is a fake Calendar API backed by httptest.Server.
type Server struct {
	srv *httptest.Server

	mu            sync.Mutex
	calendarPages [][]map[string]any
	events        map[string][]map[string]any
	failures      []failure
	requests      []Request
	nextID        int
}

// NewServer starts a fake. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		events: make(map[string][]map[string]any),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me/calendarList", s.handleCalendarList)
	mux.HandleFunc("GET /users/me/calendarList/{calendarId}", s.handleCalendarGet)
	mux.HandleFunc("POST /calendars/{calendarId}/events", s.handleEventInsert)
	mux.HandleFunc("GET /calendars/{calendarId}/events", s.handleEventList)
	mux.HandleFunc("GET /calendars/{calendarId}/events/{eventId}", s.handleEventGet)
	mux.HandleFunc("PUT /calendars/{calendarId}/events/{eventId}", s.handleEventUpdate)
	mux.HandleFunc("DELETE /calendars/{calendarId}/events/{eventId}", s.handleEventDelete)

	s.srv = httptest.NewServer(s.intercept(mux))
	return s
}

// URL returns the base URL of the fake.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close shuts the fake down.
func (s *Server) Close() {
	s.srv.Close()
}

// APIOptions returns client options pointing the Calendar client library at
// the fake.
func (s *Server) APIOptions() []option.ClientOption {
	return []option.ClientOption{option.WithEndpoint(s.srv.URL + "/")}
}

// HTTPClient returns an unauthenticated client for talking to the fake.
func (s *Server) HTTPClient() *http.Client {
	return s.srv.Client()
}

// SetCalendarPages replaces the calendar list. Each argument is one page.
func (s *Server) SetCalendarPages(pages ...[]map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendarPages = pages
}

// AddEvent stores an event and returns its id. An id is generated when the
// event has none.
func (s *Server) AddEvent(calendarID string, event map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeLocked(calendarID, maps.Clone(event))
}

// Event returns a stored event.
func (s *Server) Event(calendarID, eventID string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ev := s.findLocked(calendarID, eventID)
	return ev, ev != nil
}

// FailWith makes every request with the given method whose path starts
// with prefix answer with an API error carrying code.
func (s *Server) FailWith(method, prefix string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, prefix: prefix, code: code})
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		var failed *failure
		for i := range s.failures {
			f := s.failures[i]
			if f.method == r.Method && strings.HasPrefix(r.URL.Path, f.prefix) {
				failed = &f
				break
			}
		}
		s.mu.Unlock()

		if failed != nil {
			writeError(w, failed.code, http.StatusText(failed.code))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCalendarList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := 0
	if token := r.URL.Query().Get("pageToken"); token != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(token, pageTokenPrefix))
		if err != nil || n <= 0 || n >= len(s.calendarPages) {
			writeError(w, http.StatusBadRequest, "invalid page token")
			return
		}
		page = n
	}

	resp := map[string]any{
		"kind":  "calendar#calendarList",
		"items": []map[string]any{},
	}
	if page < len(s.calendarPages) {
		resp["items"] = s.calendarPages[page]
	}
	if page+1 < len(s.calendarPages) {
		resp["nextPageToken"] = pageTokenPrefix + strconv.Itoa(page+1)
	}
	writeJSON(w, resp)
}

func (s *Server) handleCalendarGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("calendarId")
	for _, page := range s.calendarPages {
		for _, entry := range page {
			if entry["id"] == id || (id == "primary" && entry["primary"] == true) {
				writeJSON(w, entry)
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, "Not Found")
}

func (s *Server) handleEventInsert(w http.ResponseWriter, r *http.Request) {
	var event map[string]any
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(event, "id")
	s.storeLocked(r.PathValue("calendarId"), event)
	writeJSON(w, event)
}

func (s *Server) handleEventGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, event := s.findLocked(r.PathValue("calendarId"), r.PathValue("eventId"))
	if event == nil {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, event)
}

func (s *Server) handleEventUpdate(w http.ResponseWriter, r *http.Request) {
	var event map[string]any
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	calendarID, eventID := r.PathValue("calendarId"), r.PathValue("eventId")
	idx, existing := s.findLocked(calendarID, eventID)
	if existing == nil {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	event["id"] = eventID
	event["kind"] = "calendar#event"
	if _, ok := event["status"]; !ok {
		event["status"] = existing["status"]
	}
	s.events[calendarID][idx] = event
	writeJSON(w, event)
}

func (s *Server) handleEventDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	calendarID := r.PathValue("calendarId")
	idx, event := s.findLocked(calendarID, r.PathValue("eventId"))
	if event == nil {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	s.events[calendarID] = append(s.events[calendarID][:idx], s.events[calendarID][idx+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEventList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	singleEvents := q.Get("singleEvents") == "true"
	if q.Get("orderBy") == "startTime" && !singleEvents {
		writeError(w, http.StatusBadRequest, "orderBy=startTime requires singleEvents=true")
		return
	}

	timeMin, err := parseBound(q.Get("timeMin"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timeMin")
		return
	}
	timeMax, err := parseBound(q.Get("timeMax"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timeMax")
		return
	}

	s.mu.Lock()
	stored := s.events[r.PathValue("calendarId")]
	var candidates []map[string]any
	for _, event := range stored {
		if singleEvents {
			instances, err := expand(event, timeMin, timeMax)
			if err != nil {
				s.mu.Unlock()
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			candidates = append(candidates, instances...)
			continue
		}
		candidates = append(candidates, event)
	}
	s.mu.Unlock()

	items := []map[string]any{}
	for _, event := range candidates {
		start, end := eventSpan(event)
		if !timeMin.IsZero() && !end.IsZero() && !end.After(timeMin) {
			continue
		}
		if !timeMax.IsZero() && !start.IsZero() && !start.Before(timeMax) {
			continue
		}
		items = append(items, event)
	}

	if q.Get("orderBy") == "startTime" {
		sort.SliceStable(items, func(i, j int) bool {
			a, _ := eventSpan(items[i])
			b, _ := eventSpan(items[j])
			return a.Before(b)
		})
	}

	writeJSON(w, map[string]any{
		"kind":  "calendar#events",
		"items": items,
	})
}

func (s *Server) storeLocked(calendarID string, event map[string]any) string {
	id, _ := event["id"].(string)
	if id == "" {
		s.nextID++
		id = fmt.Sprintf("evt%04d", s.nextID)
		event["id"] = id
	}
	event["kind"] = "calendar#event"
	if _, ok := event["status"]; !ok {
		event["status"] = "confirmed"
	}
	s.events[calendarID] = append(s.events[calendarID], event)
	return id
}

func (s *Server) findLocked(calendarID, eventID string) (int, map[string]any) {
	for i, event := range s.events[calendarID] {
		if event["id"] == eventID {
			return i, event
		}
	}
	return -1, nil
}

// expand returns the instances of a recurring event that may fall inside
// [from, to), or the event itself when it does not recur. Without an upper
// bound expansion stops one year after the first occurrence.
func expand(event map[string]any, from, to time.Time) ([]map[string]any, error) {
	rule := recurrenceRule(event["recurrence"])
	if rule == "" {
		return []map[string]any{event}, nil
	}

	start, end := eventSpan(event)
	if start.IsZero() {
		return nil, fmt.Errorf("recurring event %v has no start", event["id"])
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	r.DTStart(start)

	duration := end.Sub(start)
	baseID, _ := event["id"].(string)

	if from.IsZero() {
		from = start
	} else {
		from = from.Add(-duration)
	}
	if to.IsZero() {
		to = start.AddDate(1, 0, 0)
	}

	var instances []map[string]any
	for _, occurrence := range r.Between(from, to, true) {
		instance := maps.Clone(event)
		delete(instance, "recurrence")
		instance["id"] = baseID + "_" + occurrence.UTC().Format("20060102T150405Z")
		instance["recurringEventId"] = baseID
		instance["start"] = withDateTime(event["start"], occurrence)
		instance["end"] = withDateTime(event["end"], occurrence.Add(duration))
		instance["originalStartTime"] = withDateTime(event["start"], occurrence)
		instances = append(instances, instance)
	}
	return instances, nil
}

func recurrenceRule(v any) string {
	var lines []string
	switch rules := v.(type) {
	case []string:
		lines = rules
	case []any:
		for _, r := range rules {
			if s, ok := r.(string); ok {
				lines = append(lines, s)
			}
		}
	}
	for _, line := range lines {
		if rule, ok := strings.CutPrefix(line, "RRULE:"); ok {
			return rule
		}
	}
	return ""
}

func withDateTime(v any, t time.Time) map[string]any {
	m, _ := v.(map[string]any)
	out := maps.Clone(m)
	if out == nil {
		out = map[string]any{}
	}
	out["dateTime"] = t.Format(time.RFC3339)
	return out
}

func eventSpan(event map[string]any) (time.Time, time.Time) {
	return eventTime(event["start"]), eventTime(event["end"])
}

func eventTime(v any) time.Time {
	m, _ := v.(map[string]any)
	if s, ok := m["dateTime"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	if s, ok := m["date"].(string); ok {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"errors": []map[string]any{
				{"domain": "global", "reason": strings.ReplaceAll(strings.ToLower(http.StatusText(code)), " ", ""), "message": message},
			},
		},
	})
}
