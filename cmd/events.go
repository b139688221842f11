package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/calendarenv/internal/calendar"
)

func newEventsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Create, read, update, delete and search events",
	}

	cmd.AddCommand(newEventsCreateCmd(opts))
	cmd.AddCommand(newEventsGetCmd(opts))
	cmd.AddCommand(newEventsUpdateCmd(opts))
	cmd.AddCommand(newEventsDeleteCmd(opts))
	cmd.AddCommand(newEventsSearchCmd(opts))
	return cmd
}

func addCalendarFlag(cmd *cobra.Command, calendarID *string) {
	cmd.Flags().StringVar(calendarID, "calendar", "", "Calendar ID (default: primary)")
}

// optionalFlag returns the flag value, or nil when the flag was not given.
func optionalFlag(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func newEventsCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		summary     string
		location    string
		description string
		start       string
		end         string
		attendees   []string
		calendarID  string
		timeZone    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			event, err := env.Client().CreateEvent(cmd.Context(), calendar.EventInput{
				Summary:     optionalFlag(cmd, "summary", summary),
				Location:    optionalFlag(cmd, "location", location),
				Description: optionalFlag(cmd, "description", description),
				StartTime:   start,
				EndTime:     end,
				Attendees:   attendees,
				CalendarID:  calendarID,
				TimeZone:    timeZone,
			})
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.output, event)
		},
	}

	cmd.Flags().StringVar(&summary, "summary", "", "Event title")
	cmd.Flags().StringVar(&location, "location", "", "Event location")
	cmd.Flags().StringVar(&description, "description", "", "Event description")
	cmd.Flags().StringVar(&start, "start", "", "Start time (RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "End time (RFC3339)")
	cmd.Flags().StringSliceVar(&attendees, "attendee", nil, "Attendee email (repeatable or comma-separated)")
	cmd.Flags().StringVar(&timeZone, "time-zone", calendar.DefaultTimeZone, "Time zone for start and end")
	addCalendarFlag(cmd, &calendarID)
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newEventsGetCmd(opts *rootOptions) *cobra.Command {
	var calendarID string

	cmd := &cobra.Command{
		Use:   "get EVENT_ID",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			event, err := env.Client().GetEvent(cmd.Context(), args[0], calendarID)
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.output, event)
		},
	}

	addCalendarFlag(cmd, &calendarID)
	return cmd
}

func newEventsUpdateCmd(opts *rootOptions) *cobra.Command {
	var (
		calendarID string
		bodyPath   string
	)

	cmd := &cobra.Command{
		Use:   "update EVENT_ID",
		Short: "Replace an event with a JSON body",
		Long: `Replace an event with the JSON object read from --body.
Use "-" to read the body from stdin. The body replaces the whole event, so
start from the output of "events get".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readEventBody(cmd.InOrStdin(), bodyPath)
			if err != nil {
				return err
			}

			env, err := opts.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			event, err := env.Client().UpdateEvent(cmd.Context(), args[0], body, calendarID)
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.output, event)
		},
	}

	cmd.Flags().StringVar(&bodyPath, "body", "", `Path to the event JSON, or "-" for stdin`)
	addCalendarFlag(cmd, &calendarID)
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

func readEventBody(stdin io.Reader, path string) (calendar.Payload, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read event body: %w", err)
	}

	var body calendar.Payload
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("failed to parse event body: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("event body must be a JSON object")
	}
	return body, nil
}

func newEventsDeleteCmd(opts *rootOptions) *cobra.Command {
	var calendarID string

	cmd := &cobra.Command{
		Use:   "delete EVENT_ID",
		Short: "Delete an event and print whether it succeeded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			deleted := env.Client().DeleteEvent(cmd.Context(), args[0], calendarID)
			fmt.Fprintln(cmd.OutOrStdout(), deleted)
			return nil
		},
	}

	addCalendarFlag(cmd, &calendarID)
	return cmd
}

func newEventsSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		start      string
		end        string
		calendarID string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List event instances between two instants, ordered by start time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			events, err := env.Client().SearchEvents(cmd.Context(), start, end, calendarID)
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.output, events)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Lower bound (RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "Upper bound (RFC3339)")
	addCalendarFlag(cmd, &calendarID)
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
