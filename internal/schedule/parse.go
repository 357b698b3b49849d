package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks strips combining marks after NFD decomposition, so "ś"
// becomes "s" and "ą" becomes "a".
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stroked maps letters that don't decompose into base + combining mark.
var stroked = strings.NewReplacer("ł", "l", "Ł", "l")

// hoursPattern matches a time range like "9.00 - 17.00", "09:00-17:00"
// or "9 - 17". Trailing annotations in the cell are ignored.
var hoursPattern = regexp.MustCompile(`(\d{1,2})(?:[.:](\d{2}))?\s*-\s*(\d{1,2})(?:[.:](\d{2}))?`)

// FoldName normalizes a person name for comparison: lowercased, with
// Polish diacritics folded to their plain latin counterparts.
func FoldName(s string) string {
	s = stroked.Replace(strings.ToLower(s))
	folded, _, err := transform.String(foldMarks, s)
	if err != nil {
		return s
	}
	return folded
}

// ShortName converts a full name to the short form used in the roster
// cells: "Jan Kowalski" becomes "J. Kowalski".
func ShortName(fullName string) (string, error) {
	fields := strings.Fields(fullName)
	if len(fields) < 2 {
		return "", fmt.Errorf("expected a first and last name, got %q", fullName)
	}
	first := []rune(fields[0])
	return fmt.Sprintf("%c. %s", first[0], fields[len(fields)-1]), nil
}

// normalizeCell cleans a roster name cell down to a comparable form:
// annotation tags and spaces are removed, a "x/y" handover cell
// resolves to the person after the slash, and diacritics are folded.
func normalizeCell(cell string, tags []string) string {
	for _, tag := range tags {
		cell = strings.ReplaceAll(cell, tag, "")
	}
	cell = strings.ReplaceAll(cell, " ", "")
	if i := strings.LastIndex(cell, "/"); i >= 0 {
		cell = cell[i+1:]
	}
	return FoldName(cell)
}

// parseClock parses a clock value like "9", "9.30" or "09:30" into
// hours and minutes. A 24 hour reads as midnight, matching the sheet
// convention of writing "24.00" for end-of-day.
func parseClock(hour, minute string) (int, int, error) {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour %q: %w", hour, err)
	}
	if h == 24 {
		h = 0
	}
	if h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("hour %d out of range", h)
	}
	m := 0
	if minute != "" {
		if m, err = strconv.Atoi(minute); err != nil {
			return 0, 0, fmt.Errorf("invalid minute %q: %w", minute, err)
		}
	}
	if m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("minute %d out of range", m)
	}
	return h, m, nil
}

// ParseHours parses an hours cell like "9.00 - 17.00" into the start
// and end of a shift on the given day. An end at or before the start
// rolls over to the next day, so "17.00 - 24.00" and overnight shifts
// end on the following date.
func ParseHours(cell string, day time.Time, loc *time.Location) (start, end time.Time, err error) {
	match := hoursPattern.FindStringSubmatch(cell)
	if match == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("cell %q is not a time range", cell)
	}

	startHour, startMin, err := parseClock(match[1], match[2])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endHour, endMin, err := parseClock(match[3], match[4])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start = time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, loc)
	end = time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return start, end, nil
}

// dateLayouts are the formats accepted for date cells, tried in order.
var dateLayouts = []string{"2 Jan 2006", "2 January 2006", "2.1 2006", "2006-01-02"}

// ParseDate parses a date cell like "02 Jan". The roster omits the
// year, so the caller supplies it.
func ParseDate(cell string, year int, loc *time.Location) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	for _, layout := range dateLayouts {
		withYear := cell + " " + strconv.Itoa(year)
		if layout == "2006-01-02" {
			withYear = cell
		}
		if t, err := time.ParseInLocation(layout, withYear, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date cell %q", cell)
}

// Extract walks the roster grid and returns the workshifts belonging
// to the named person, in sheet order. The worker is matched by short
// name ("J. Kowalski"), case-insensitively and with diacritics folded,
// so "j. kowalski" in the sheet matches "Jan Kowalski".
//
// Days whose date cell is empty are skipped; a day with shifts but an
// unparseable date is an error.
func Extract(grid [][]string, layout Layout, worker string, year int, loc *time.Location) ([]Workshift, error) {
	short, err := ShortName(worker)
	if err != nil {
		return nil, err
	}
	target := normalizeCell(short, nil)

	var shifts []Workshift

	for day := 0; day < layout.Days; day++ {
		hoursCol := layout.hoursColumn(day)
		namesCol := layout.namesColumn(day)

		// The date sits in either cell of the day's column pair.
		dateCell := cellAt(grid, layout.DateRow-1, hoursCol)
		if dateCell == "" {
			dateCell = cellAt(grid, layout.DateRow-1, namesCol)
		}

		var date time.Time
		dateErr := fmt.Errorf("day %d has no date cell", day)
		if dateCell != "" {
			date, dateErr = ParseDate(dateCell, year, loc)
		}

		for _, block := range layout.Blocks {
			for row := block[0]; row <= block[1]; row++ {
				name := cellAt(grid, row-1, namesCol)
				if name == "" || normalizeCell(name, layout.StripTags) != target {
					continue
				}
				if dateErr != nil {
					return nil, fmt.Errorf("shift found in row %d but date is unusable: %w", row, dateErr)
				}

				hoursCell := cellAt(grid, row-1, hoursCol)
				start, end, err := ParseHours(hoursCell, date, loc)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", row, err)
				}

				shifts = append(shifts, Workshift{Start: start, End: end})
			}
		}
	}

	return shifts, nil
}

// cellAt returns the trimmed cell value, or "" when the grid is too
// short or the row too narrow. Sheets API responses drop trailing
// empty cells, so ragged rows are normal.
func cellAt(grid [][]string, row, col int) string {
	if row < 0 || row >= len(grid) {
		return ""
	}
	if col < 0 || col >= len(grid[row]) {
		return ""
	}
	return strings.TrimSpace(grid[row][col])
}
