package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rehabflow/care-scheduler/internal/domain/calendar"
	"github.com/rehabflow/care-scheduler/internal/timezone"
)

func newGridCmd() *cobra.Command {
	var tz string
	cmd := &cobra.Command{
		Use:   "grid [YYYY-MM-DD]",
		Short: "Print the Monday-first month grid around a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := timezone.Location(tz)
			ref := timezone.NowIn(tz)
			if len(args) == 1 {
				d, err := timezone.ParseDate(args[0], loc)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", args[0], err)
				}
				ref = d
			}
			printGrid(cmd.OutOrStdout(), ref)
			return nil
		},
	}
	cmd.Flags().StringVar(&tz, "tz", timezone.DefaultTimezone, "IANA time zone")
	return cmd
}

func printGrid(w io.Writer, ref time.Time) {
	fmt.Fprintln(w, ref.Format("January 2006"))
	fmt.Fprintln(w, " Mo  Tu  We  Th  Fr  Sa  Su")

	var row strings.Builder
	for i, d := range calendar.MonthGrid(ref) {
		if calendar.SameMonth(d, ref) {
			fmt.Fprintf(&row, " %2d ", d.Day())
		} else {
			fmt.Fprintf(&row, "(%2d)", d.Day())
		}
		if (i+1)%calendar.DaysPerWeek == 0 {
			fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
}
