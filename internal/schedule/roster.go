package schedule

import (
	"fmt"
	"time"
)

// Workshift is a single labeled time interval worked by a person,
// extracted from one row of the shift plan.
type Workshift struct {
	Start time.Time
	End   time.Time
}

// Key returns a stable identifier for the shift, used to deduplicate
// calendar events across repeated runs.
func (w Workshift) Key() string {
	return w.Start.Format("2006-01-02/15:04")
}

// Layout describes where the roster lives inside the worksheet grid.
// All row numbers are 1-based, matching what the spreadsheet UI shows.
//
// Days run left to right as column pairs: an hours column followed by a
// names column. Day 0 occupies columns A/B, day 1 columns C/D and so on.
type Layout struct {
	// Worksheet is the name of the sheet holding the roster.
	Worksheet string

	// DateRow is the row holding one date cell per day.
	DateRow int

	// Blocks are the inclusive row ranges holding shift rows. The
	// roster splits each day into separate blocks (e.g. customer
	// service and ticket agents).
	Blocks [][2]int

	// Days is the number of day column pairs in the sheet.
	Days int

	// StripTags are annotations removed from name cells before
	// matching (e.g. "PLAKATY").
	StripTags []string
}

// DefaultLayout returns the layout of the venue's shift plan: seven
// day column pairs, dates in row 5, shifts in rows 7-15 and 24-31.
func DefaultLayout() Layout {
	return Layout{
		Worksheet: "PT-CZW",
		DateRow:   5,
		Blocks:    [][2]int{{7, 15}, {24, 31}},
		Days:      7,
		StripTags: []string{"PLAKATY"},
	}
}

// Range returns the A1-notation range covering the whole roster,
// suitable for a single Sheets values fetch.
func (l Layout) Range() string {
	lastRow := l.DateRow
	for _, block := range l.Blocks {
		if block[1] > lastRow {
			lastRow = block[1]
		}
	}
	return fmt.Sprintf("%s!A1:%s%d", l.Worksheet, columnName(2*l.Days), lastRow)
}

// hoursColumn and namesColumn return the 0-based grid columns for a day.
func (l Layout) hoursColumn(day int) int { return 2 * day }
func (l Layout) namesColumn(day int) int { return 2*day + 1 }

// columnName converts a 1-based column number to its A1-notation letter(s).
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
