package calendar

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/jwrobel/shiftcal/internal/schedule"
)

// shiftKeyProperty is the private extended property carrying the shift
// identity, used to find previously created events on re-runs.
const shiftKeyProperty = "shiftKey"

// EventSettings controls the shape of the created calendar events.
type EventSettings struct {
	Title           string
	Location        string
	Timezone        string // IANA name attached to the event datetimes
	ReminderMinutes int64  // popup reminder before the shift starts
}

// BuildEvent converts a workshift into a Google Calendar event:
// summary and location from the settings, timed start/end in the
// configured timezone, a popup reminder overriding calendar defaults,
// and the shift key stored as a private extended property.
func BuildEvent(shift schedule.Workshift, settings EventSettings) *calendar.Event {
	return &calendar.Event{
		Summary:  settings.Title,
		Location: settings.Location,
		Start: &calendar.EventDateTime{
			DateTime: shift.Start.Format(time.RFC3339),
			TimeZone: settings.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: shift.End.Format(time.RFC3339),
			TimeZone: settings.Timezone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: settings.ReminderMinutes},
			},
			ForceSendFields: []string{"UseDefault"},
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				shiftKeyProperty: shift.Key(),
			},
		},
	}
}

// eventShiftKey returns the shift key stored on an event, or "".
func eventShiftKey(event *calendar.Event) string {
	if event.ExtendedProperties == nil || event.ExtendedProperties.Private == nil {
		return ""
	}
	return event.ExtendedProperties.Private[shiftKeyProperty]
}
