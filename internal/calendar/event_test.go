package calendar

import (
	"testing"
	"time"

	"github.com/jwrobel/shiftcal/internal/schedule"
)

func testShift(t *testing.T) schedule.Workshift {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	return schedule.Workshift{
		Start: time.Date(2025, time.June, 2, 9, 0, 0, 0, loc),
		End:   time.Date(2025, time.June, 2, 17, 0, 0, 0, loc),
	}
}

func TestBuildEvent(t *testing.T) {
	settings := EventSettings{
		Title:           "Work shift",
		Location:        "Marszałkowska 1, Warszawa",
		Timezone:        "Europe/Warsaw",
		ReminderMinutes: 15,
	}

	event := BuildEvent(testShift(t), settings)

	if event.Summary != "Work shift" {
		t.Errorf("Expected Summary to be 'Work shift', got '%s'", event.Summary)
	}

	if event.Location != "Marszałkowska 1, Warszawa" {
		t.Errorf("Expected Location to be set, got '%s'", event.Location)
	}

	if event.Start.DateTime != "2025-06-02T09:00:00+02:00" {
		t.Errorf("Expected Start to be '2025-06-02T09:00:00+02:00', got '%s'", event.Start.DateTime)
	}

	if event.End.DateTime != "2025-06-02T17:00:00+02:00" {
		t.Errorf("Expected End to be '2025-06-02T17:00:00+02:00', got '%s'", event.End.DateTime)
	}

	if event.Start.TimeZone != "Europe/Warsaw" || event.End.TimeZone != "Europe/Warsaw" {
		t.Errorf("Expected event timezone 'Europe/Warsaw', got start '%s' end '%s'", event.Start.TimeZone, event.End.TimeZone)
	}

	if event.Reminders == nil || event.Reminders.UseDefault {
		t.Fatal("Expected reminders to override calendar defaults")
	}

	if len(event.Reminders.Overrides) != 1 {
		t.Fatalf("Expected 1 reminder override, got %d", len(event.Reminders.Overrides))
	}

	reminder := event.Reminders.Overrides[0]
	if reminder.Method != "popup" || reminder.Minutes != 15 {
		t.Errorf("Expected a popup reminder 15 minutes before, got %s/%d", reminder.Method, reminder.Minutes)
	}

	if got := eventShiftKey(event); got != "2025-06-02/09:00" {
		t.Errorf("Expected shift key '2025-06-02/09:00', got '%s'", got)
	}
}

func TestEventShiftKey_Missing(t *testing.T) {
	event := BuildEvent(testShift(t), EventSettings{Title: "Work shift"})
	event.ExtendedProperties = nil

	if got := eventShiftKey(event); got != "" {
		t.Errorf("Expected empty shift key, got '%s'", got)
	}
}
