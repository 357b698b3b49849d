package sync

import (
	"context"
	"fmt"
	"log"

	gcal "google.golang.org/api/calendar/v3"

	calclient "github.com/jwrobel/shiftcal/internal/calendar"
	"github.com/jwrobel/shiftcal/internal/config"
	"github.com/jwrobel/shiftcal/internal/schedule"
)

// SheetSource is the slice of the sheets client the syncer needs.
type SheetSource interface {
	ResolveSpreadsheet(ctx context.Context, ref string) (string, error)
	Grid(ctx context.Context, spreadsheetID, rangeSpec string) ([][]string, error)
}

// Syncer runs one pass of the shift sync: fetch the roster, extract
// the worker's shifts, build calendar events and hand them to the sink.
type Syncer struct {
	source  SheetSource
	sink    calclient.Sink
	config  *config.Config
	verbose bool
}

// NewSyncer creates a new Syncer instance.
func NewSyncer(source SheetSource, sink calclient.Sink, cfg *config.Config, verbose bool) *Syncer {
	return &Syncer{
		source:  source,
		sink:    sink,
		config:  cfg,
		verbose: verbose,
	}
}

// Sync performs the synchronization for one spreadsheet and worker.
func (s *Syncer) Sync(ctx context.Context, spreadsheetRef, worker string) error {
	log.Printf("Loading %q from Google Sheets...", spreadsheetRef)

	spreadsheetID, err := s.source.ResolveSpreadsheet(ctx, spreadsheetRef)
	if err != nil {
		return fmt.Errorf("failed to resolve spreadsheet: %w", err)
	}
	if s.verbose {
		log.Printf("DEBUG: resolved spreadsheet %q to ID %s", spreadsheetRef, spreadsheetID)
	}

	layout := s.config.Layout()
	grid, err := s.source.Grid(ctx, spreadsheetID, layout.Range())
	if err != nil {
		return fmt.Errorf("failed to fetch roster: %w", err)
	}

	log.Printf("Extracting %q workshifts...", worker)

	shifts, err := schedule.Extract(grid, layout, worker, s.config.RosterYear(), s.config.Location())
	if err != nil {
		return fmt.Errorf("failed to parse roster: %w", err)
	}

	if len(shifts) == 0 {
		log.Printf("No workshifts found for %q", worker)
		return nil
	}

	if s.verbose {
		for _, shift := range shifts {
			log.Printf("DEBUG: shift %s - %s", shift.Start.Format("2006-01-02 15:04"), shift.End.Format("15:04"))
		}
	}

	events := make([]*gcal.Event, len(shifts))
	settings := calclient.EventSettings{
		Title:           s.config.EventTitle,
		Location:        s.config.EventLocation,
		Timezone:        s.config.Timezone,
		ReminderMinutes: int64(s.config.ReminderMinutes),
	}
	for i, shift := range shifts {
		events[i] = calclient.BuildEvent(shift, settings)
	}

	if err := s.sink.Write(ctx, events); err != nil {
		return fmt.Errorf("failed to write events: %w", err)
	}

	log.Printf("Processed %d workshift(s) for %q", len(shifts), worker)

	return nil
}
