package calendar

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"google.golang.org/api/calendar/v3"
)

// PreviewSink prints the planned events as a table without touching
// any calendar. Backs the --dry-run flag.
type PreviewSink struct {
	Out io.Writer
}

// NewPreviewSink creates a sink that prints to the given writer.
func NewPreviewSink(out io.Writer) *PreviewSink {
	return &PreviewSink{Out: out}
}

// Write renders one row per event.
func (s *PreviewSink) Write(ctx context.Context, events []*calendar.Event) error {
	tw := tabwriter.NewWriter(s.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSTART\tEND\tSUMMARY")

	for _, event := range events {
		start, err := eventTime(event.Start)
		if err != nil {
			return fmt.Errorf("bad event start: %w", err)
		}
		end, err := eventTime(event.End)
		if err != nil {
			return fmt.Errorf("bad event end: %w", err)
		}

		endLabel := end.Format("15:04")
		if end.Day() != start.Day() {
			endLabel = end.Format("15:04 (Jan 2)")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			start.Format("2006-01-02"),
			start.Format("15:04"),
			endLabel,
			event.Summary)
	}

	return tw.Flush()
}
