package calendar

import (
	"context"

	"google.golang.org/api/calendar/v3"
)

// Sink receives the calendar events built from a roster run. The
// Google Calendar sink upserts them through the Events API; the file
// sink writes them to an iCalendar file; the preview sink prints them.
type Sink interface {
	Write(ctx context.Context, events []*calendar.Event) error
}
