package calendar

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"google.golang.org/api/calendar/v3"
)

func TestPreviewSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPreviewSink(&buf)

	events := []*calendar.Event{
		shiftEvent(t, "2025-06-02/09:00"),
	}

	if err := sink.Write(context.Background(), events); err != nil {
		t.Fatalf("Write() returned an error: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "DATE") || !strings.Contains(out, "SUMMARY") {
		t.Errorf("Expected a table header, got:\n%s", out)
	}

	if !strings.Contains(out, "2025-06-02") {
		t.Errorf("Expected the shift date in the output, got:\n%s", out)
	}

	if !strings.Contains(out, "09:00") || !strings.Contains(out, "17:00") {
		t.Errorf("Expected the shift hours in the output, got:\n%s", out)
	}
}

func TestPreviewSink_MidnightRollover(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPreviewSink(&buf)

	events := []*calendar.Event{
		{
			Summary: "Work shift",
			Start:   &calendar.EventDateTime{DateTime: "2025-06-02T17:00:00+02:00"},
			End:     &calendar.EventDateTime{DateTime: "2025-06-03T00:00:00+02:00"},
		},
	}

	if err := sink.Write(context.Background(), events); err != nil {
		t.Fatalf("Write() returned an error: %v", err)
	}

	// An end past midnight is labeled with its date
	if !strings.Contains(buf.String(), "00:00 (Jun 3)") {
		t.Errorf("Expected the rolled-over end date in the output, got:\n%s", buf.String())
	}
}
