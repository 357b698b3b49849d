package gsheet

import (
	"context"
	"testing"
)

func TestResolveSpreadsheet_URL(t *testing.T) {
	// URL references resolve without any API call
	client := &Client{}

	tests := []struct {
		url  string
		want string
	}{
		{"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
		{"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
	}

	for _, tt := range tests {
		got, err := client.ResolveSpreadsheet(context.Background(), tt.url)
		if err != nil {
			t.Fatalf("ResolveSpreadsheet(%q) returned an error: %v", tt.url, err)
		}
		if got != tt.want {
			t.Errorf("ResolveSpreadsheet(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestResolveSpreadsheet_BareID(t *testing.T) {
	// An ID-shaped reference resolves without any API call
	client := &Client{}

	id := "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"
	got, err := client.ResolveSpreadsheet(context.Background(), id)
	if err != nil {
		t.Fatalf("ResolveSpreadsheet(%q) returned an error: %v", id, err)
	}
	if got != id {
		t.Errorf("ResolveSpreadsheet(%q) = %q, want the ID unchanged", id, got)
	}
}

func TestSpreadsheetIDPattern(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", true},
		{"Shift plan June", false},
		{"GRAFIK", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := spreadsheetIDPattern.MatchString(tt.ref); got != tt.want {
			t.Errorf("spreadsheetIDPattern.MatchString(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestGridFromValues(t *testing.T) {
	values := [][]interface{}{
		{"02 Jun", ""},
		{"9.00 - 17.00", "J. Kowalski"},
		{42},
	}

	grid := gridFromValues(values)

	if len(grid) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(grid))
	}

	if grid[1][0] != "9.00 - 17.00" || grid[1][1] != "J. Kowalski" {
		t.Errorf("Unexpected row conversion: %v", grid[1])
	}

	// Numeric cells are stringified
	if grid[2][0] != "42" {
		t.Errorf("Expected '42', got %q", grid[2][0])
	}

	// Ragged rows stay ragged; bounds checking is the caller's job
	if len(grid[2]) != 1 {
		t.Errorf("Expected ragged row of length 1, got %d", len(grid[2]))
	}
}

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Shift plan", "Shift plan"},
		{"June's plan", `June\'s plan`},
		{`a\b`, `a\\b`},
	}

	for _, tt := range tests {
		if got := escapeQuery(tt.in); got != tt.want {
			t.Errorf("escapeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
