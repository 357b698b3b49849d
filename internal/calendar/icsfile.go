package calendar

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
)

// FileSink writes events to an iCalendar file instead of a Google
// Calendar. Useful for importing shifts into other calendar apps.
type FileSink struct {
	Path string
}

// NewFileSink creates a sink that writes to the given .ics path.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

// Write encodes all events into a single VCALENDAR and writes the file.
func (s *FileSink) Write(ctx context.Context, events []*calendar.Event) error {
	cal, err := ToICal(events)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}

	if err := os.WriteFile(s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}

	return nil
}

// ToICal converts Google Calendar events into a single iCalendar object.
func ToICal(events []*calendar.Event) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//shiftcal//EN")

	now := time.Now()

	for _, event := range events {
		vevent := ical.NewComponent(ical.CompEvent)

		vevent.Props.SetText(ical.PropUID, uuid.NewString()+"@shiftcal")

		if event.Summary != "" {
			vevent.Props.SetText(ical.PropSummary, event.Summary)
		}
		if event.Location != "" {
			vevent.Props.SetText(ical.PropLocation, event.Location)
		}

		start, err := eventTime(event.Start)
		if err != nil {
			return nil, fmt.Errorf("bad event start: %w", err)
		}
		end, err := eventTime(event.End)
		if err != nil {
			return nil, fmt.Errorf("bad event end: %w", err)
		}

		vevent.Props.SetDateTime(ical.PropDateTimeStart, start)
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, end)
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, now)

		if key := eventShiftKey(event); key != "" {
			vevent.Props.SetText("X-SHIFT-KEY", key)
		}

		cal.Children = append(cal.Children, vevent)
	}

	return cal, nil
}

// eventTime parses the RFC3339 datetime of a timed event.
func eventTime(edt *calendar.EventDateTime) (time.Time, error) {
	if edt == nil || edt.DateTime == "" {
		return time.Time{}, fmt.Errorf("missing datetime")
	}
	return time.Parse(time.RFC3339, edt.DateTime)
}
