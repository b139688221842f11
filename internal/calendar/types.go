package calendar

// PrimaryCalendarID is the calendar addressed when no id is supplied.
const PrimaryCalendarID = "primary"

// DefaultTimeZone is applied to created events without an explicit zone.
const DefaultTimeZone = "UTC"

// Payload is a calendar or event representation exactly as the remote
// service returned it. Unknown keys, zero values and nulls are preserved.
type Payload map[string]any

// EventInput holds the arguments for CreateEvent.
// Summary, Location and Description are optional; nil values are sent as
// JSON null. StartTime and EndTime are passed through unvalidated.
type EventInput struct {
	Summary     *string
	Location    *string
	Description *string
	StartTime   string
	EndTime     string
	Attendees   []string
	CalendarID  string
	TimeZone    string
}

// EventDateTime is the start or end of an event.
type EventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Attendee is an event guest addressed by email.
type Attendee struct {
	Email string `json:"email"`
}

// EventBody is the request body CreateEvent submits.
type EventBody struct {
	Summary     *string       `json:"summary"`
	Location    *string       `json:"location"`
	Description *string       `json:"description"`
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
	Attendees   []Attendee    `json:"attendees"`
}

// CalendarInfo is a typed view over a calendar list entry, used for display.
type CalendarInfo struct {
	ID         string `json:"id"`
	Summary    string `json:"summary"`
	TimeZone   string `json:"timeZone"`
	AccessRole string `json:"accessRole"` // "owner", "writer", "reader", "freeBusyReader"
	Primary    bool   `json:"primary"`
}

// NewEventBody builds the body for an insert request.
func NewEventBody(input EventInput) EventBody {
	tz := input.TimeZone
	if tz == "" {
		tz = DefaultTimeZone
	}

	attendees := make([]Attendee, 0, len(input.Attendees))
	for _, email := range input.Attendees {
		attendees = append(attendees, Attendee{Email: email})
	}

	return EventBody{
		Summary:     input.Summary,
		Location:    input.Location,
		Description: input.Description,
		Start:       EventDateTime{DateTime: input.StartTime, TimeZone: tz},
		End:         EventDateTime{DateTime: input.EndTime, TimeZone: tz},
		Attendees:   attendees,
	}
}

// CalendarInfoFromPayload reads the display fields of a calendar list entry.
func CalendarInfoFromPayload(p Payload) CalendarInfo {
	return CalendarInfo{
		ID:         stringField(p, "id"),
		Summary:    stringField(p, "summary"),
		TimeZone:   stringField(p, "timeZone"),
		AccessRole: stringField(p, "accessRole"),
		Primary:    p["primary"] == true,
	}
}

func stringField(p Payload, key string) string {
	s, _ := p[key].(string)
	return s
}

func calendarIDOrPrimary(id string) string {
	if id == "" {
		return PrimaryCalendarID
	}
	return id
}
