package gsheet

import (
	"context"
	"fmt"
	"regexp"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// spreadsheetURLPattern extracts the spreadsheet ID from a
// docs.google.com URL.
var spreadsheetURLPattern = regexp.MustCompile(`^https://docs\.google\.com/spreadsheets/d/(.*?)(?:/.*)?$`)

// spreadsheetIDPattern matches a bare spreadsheet ID. Drive file IDs
// are long URL-safe base64 strings.
var spreadsheetIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`)

// Client is a wrapper around the Google Sheets and Drive API services.
// Drive is only used to resolve spreadsheet titles to IDs.
type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// NewClient creates a new Sheets client using the provided client options
// (typically option.WithHTTPClient for OAuth or option.WithCredentialsFile
// for a service account).
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{sheets: sheetsService, drive: driveService}, nil
}

// ResolveSpreadsheet turns a spreadsheet reference into a spreadsheet ID.
// The reference may be a docs.google.com URL, a bare spreadsheet ID, or
// a spreadsheet title. URLs and ID-shaped references resolve locally;
// anything else is looked up by name through the Drive API.
func (c *Client) ResolveSpreadsheet(ctx context.Context, ref string) (string, error) {
	if match := spreadsheetURLPattern.FindStringSubmatch(ref); len(match) == 2 {
		return match[1], nil
	}

	if spreadsheetIDPattern.MatchString(ref) {
		return ref, nil
	}

	query := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", escapeQuery(ref))
	fileList, err := c.drive.Files.List().
		Context(ctx).
		Q(query).
		Fields("files(id, name)").
		PageSize(2).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to search for spreadsheet %q: %w", ref, err)
	}

	switch len(fileList.Files) {
	case 1:
		return fileList.Files[0].Id, nil
	case 0:
		return "", fmt.Errorf("no spreadsheet named %q found", ref)
	default:
		return "", fmt.Errorf("multiple spreadsheets named %q found, use the spreadsheet URL instead", ref)
	}
}

// Grid fetches the requested range and returns it as a rectangularized
// string grid. The Sheets API drops trailing empty cells, so rows may
// be shorter than the requested width; callers must bounds-check.
func (c *Client) Grid(ctx context.Context, spreadsheetID, rangeSpec string) ([][]string, error) {
	response, err := c.sheets.Spreadsheets.Values.Get(spreadsheetID, rangeSpec).
		Context(ctx).
		ValueRenderOption("FORMATTED_VALUE").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %q: %w", rangeSpec, err)
	}

	if len(response.Values) == 0 {
		return nil, fmt.Errorf("no data in range %q", rangeSpec)
	}

	return gridFromValues(response.Values), nil
}

// gridFromValues converts the untyped Sheets values into strings.
func gridFromValues(values [][]interface{}) [][]string {
	grid := make([][]string, len(values))
	for i, row := range values {
		grid[i] = make([]string, len(row))
		for j, cell := range row {
			grid[i][j] = fmt.Sprint(cell)
		}
	}
	return grid
}

// escapeQuery escapes single quotes and backslashes for a Drive query string.
func escapeQuery(s string) string {
	escaped := ""
	for _, r := range s {
		if r == '\'' || r == '\\' {
			escaped += `\`
		}
		escaped += string(r)
	}
	return escaped
}
