package sync

import (
	"context"
	"fmt"
	"testing"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/jwrobel/shiftcal/internal/config"
)

// fakeSource serves a fixed roster grid.
type fakeSource struct {
	resolved  string
	grid      [][]string
	rangeSeen string
}

func (f *fakeSource) ResolveSpreadsheet(ctx context.Context, ref string) (string, error) {
	if f.resolved == "" {
		return "", fmt.Errorf("no spreadsheet named %q found", ref)
	}
	return f.resolved, nil
}

func (f *fakeSource) Grid(ctx context.Context, spreadsheetID, rangeSpec string) ([][]string, error) {
	f.rangeSeen = rangeSpec
	return f.grid, nil
}

// fakeSink records the events it receives.
type fakeSink struct {
	events []*gcal.Event
}

func (f *fakeSink) Write(ctx context.Context, events []*gcal.Event) error {
	f.events = append(f.events, events...)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		CalendarID:      "primary",
		Timezone:        "Europe/Warsaw",
		EventTitle:      "Work shift",
		EventLocation:   "The venue",
		ReminderMinutes: 15,
		Worksheet:       "PT-CZW",
		DateRow:         2,
		ShiftBlocks:     [][2]int{{4, 5}},
		Days:            2,
		StripTags:       []string{"PLAKATY"},
		Year:            2025,
	}
}

func testGrid() [][]string {
	return [][]string{
		{},
		{"02 Jun", "", "03 Jun", ""},
		{},
		{"9.00 - 17.00", "J. Kowalski", "9.00 - 17.00", "A. Nowak"},
		{"12.00 - 20.00", "A. Nowak", "17.00 - 24.00", "J. Kowalski"},
	}
}

func TestSync(t *testing.T) {
	source := &fakeSource{resolved: "spreadsheet-id", grid: testGrid()}
	sink := &fakeSink{}

	syncer := NewSyncer(source, sink, testConfig(), false)

	if err := syncer.Sync(context.Background(), "Shift plan", "Jan Kowalski"); err != nil {
		t.Fatalf("Sync() returned an error: %v", err)
	}

	if source.rangeSeen != "PT-CZW!A1:D5" {
		t.Errorf("Expected roster range 'PT-CZW!A1:D5', got %q", source.rangeSeen)
	}

	if len(sink.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(sink.events))
	}

	first := sink.events[0]
	if first.Summary != "Work shift" {
		t.Errorf("Expected event summary 'Work shift', got '%s'", first.Summary)
	}
	if first.Location != "The venue" {
		t.Errorf("Expected event location 'The venue', got '%s'", first.Location)
	}
	if first.Start.DateTime != "2025-06-02T09:00:00+02:00" {
		t.Errorf("Expected first event to start at '2025-06-02T09:00:00+02:00', got '%s'", first.Start.DateTime)
	}

	// The second shift ends at midnight and rolls over to June 4
	second := sink.events[1]
	if second.End.DateTime != "2025-06-04T00:00:00+02:00" {
		t.Errorf("Expected second event to end at '2025-06-04T00:00:00+02:00', got '%s'", second.End.DateTime)
	}
}

func TestSync_NoShiftsIsNotAnError(t *testing.T) {
	source := &fakeSource{resolved: "spreadsheet-id", grid: testGrid()}
	sink := &fakeSink{}

	syncer := NewSyncer(source, sink, testConfig(), false)

	if err := syncer.Sync(context.Background(), "Shift plan", "Maria Wiśniewska"); err != nil {
		t.Fatalf("Sync() returned an error: %v", err)
	}

	if len(sink.events) != 0 {
		t.Errorf("Expected no events, got %d", len(sink.events))
	}
}

func TestSync_UnresolvedSpreadsheet(t *testing.T) {
	source := &fakeSource{}
	sink := &fakeSink{}

	syncer := NewSyncer(source, sink, testConfig(), false)

	if err := syncer.Sync(context.Background(), "No such plan", "Jan Kowalski"); err == nil {
		t.Error("Sync() should have returned an error for an unresolvable spreadsheet")
	}
}
