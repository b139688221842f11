package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teemow/calendarenv/internal/calendar"
)

func newCalendarsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "Inspect the calendars of the account",
	}

	cmd.AddCommand(newCalendarsListCmd(opts))
	cmd.AddCommand(newCalendarsGetCmd(opts))
	return cmd
}

func newCalendarsListCmd(opts *rootOptions) *cobra.Command {
	var brief bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			calendars, err := env.Client().ListCalendars(cmd.Context())
			if err != nil {
				return err
			}

			if brief {
				return printCalendarTable(cmd, calendars)
			}
			return printOutput(cmd.OutOrStdout(), opts.output, calendars)
		},
	}

	cmd.Flags().BoolVar(&brief, "brief", false, "Print a table of id, summary, role and time zone")
	return cmd
}

func printCalendarTable(cmd *cobra.Command, calendars []calendar.Payload) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSUMMARY\tROLE\tTIME ZONE\tPRIMARY")
	for _, p := range calendars {
		info := calendar.CalendarInfoFromPayload(p)
		primary := ""
		if info.Primary {
			primary = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", info.ID, info.Summary, info.AccessRole, info.TimeZone, primary)
	}
	return tw.Flush()
}

func newCalendarsGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [CALENDAR_ID]",
		Short: "Show a calendar list entry (default: primary)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			calendarID := ""
			if len(args) == 1 {
				calendarID = args[0]
			}

			cal, err := env.Client().GetCalendar(cmd.Context(), calendarID)
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.output, cal)
		},
	}
}
