package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jwrobel/shiftcal/internal/schedule"
)

// GoogleCredentials represents the structure of a Google OAuth credentials JSON file.
type GoogleCredentials struct {
	Installed struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"installed"`
	Web struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"web"`
}

// LoadGoogleCredentials loads Google OAuth credentials from a JSON file.
func LoadGoogleCredentials(path string) (clientID, clientSecret string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds GoogleCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", "", fmt.Errorf("failed to parse credentials file: %w", err)
	}

	// Try "installed" first (for desktop apps), then "web"
	if creds.Installed.ClientID != "" {
		return creds.Installed.ClientID, creds.Installed.ClientSecret, nil
	}
	if creds.Web.ClientID != "" {
		return creds.Web.ClientID, creds.Web.ClientSecret, nil
	}

	return "", "", fmt.Errorf("no client_id found in credentials file (expected 'installed' or 'web' section)")
}

// Config holds the configuration for the shift sync tool.
type Config struct {
	// Authentication. Either an OAuth client (credentials + cached
	// token) or a service account key; the service account wins when
	// both are set.
	GoogleCredentialsPath string `json:"google_credentials_path,omitempty"`
	TokenPath             string `json:"token_path,omitempty"`
	ServiceAccountPath    string `json:"service_account_path,omitempty"`

	// Calendar output.
	CalendarID      string `json:"calendar_id,omitempty"`      // default "primary"
	Timezone        string `json:"timezone,omitempty"`         // IANA name, default "Europe/Warsaw"
	EventTitle      string `json:"event_title,omitempty"`      // default "Work shift"
	EventLocation   string `json:"event_location,omitempty"`   // optional
	ReminderMinutes int    `json:"reminder_minutes,omitempty"` // popup reminder, default 15

	// Roster layout. Defaults match the venue's shift plan.
	Worksheet   string   `json:"worksheet,omitempty"`
	DateRow     int      `json:"date_row,omitempty"`
	ShiftBlocks [][2]int `json:"shift_blocks,omitempty"`
	Days        int      `json:"days,omitempty"`
	StripTags   []string `json:"strip_tags,omitempty"`

	// Year assumed for the roster's year-less date cells.
	// Zero means the current year.
	Year int `json:"year,omitempty"`
}

// LoadConfigFromFile loads configuration from a JSON file.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadConfig loads configuration with the following precedence (highest to lowest):
// 1. Command-line flags
// 2. Environment variables
// 3. Config file
// 4. Defaults
// Returns an error if any required value is missing.
func LoadConfig(configFile string, credentialsFlag, tokenPathFlag, calendarIDFlag, timezoneFlag string) (*Config, error) {
	var config Config

	// Step 1: Load from config file if provided
	if configFile != "" {
		fileConfig, err := LoadConfigFromFile(configFile)
		if err != nil {
			return nil, err
		}
		config = *fileConfig
	}

	// Step 2: Override with environment variables
	if credentials := os.Getenv("GOOGLE_CREDENTIALS_PATH"); credentials != "" {
		config.GoogleCredentialsPath = credentials
	}
	if serviceAccount := os.Getenv("GOOGLE_SERVICE_ACCOUNT_PATH"); serviceAccount != "" {
		config.ServiceAccountPath = serviceAccount
	}
	if tokenPath := os.Getenv("SHIFTCAL_TOKEN_PATH"); tokenPath != "" {
		config.TokenPath = tokenPath
	}
	if calendarID := os.Getenv("SHIFTCAL_CALENDAR_ID"); calendarID != "" {
		config.CalendarID = calendarID
	}
	if timezone := os.Getenv("SHIFTCAL_TIMEZONE"); timezone != "" {
		config.Timezone = timezone
	}

	// Step 3: Override with command-line flags (highest priority)
	if credentialsFlag != "" {
		config.GoogleCredentialsPath = credentialsFlag
	}
	if tokenPathFlag != "" {
		config.TokenPath = tokenPathFlag
	}
	if calendarIDFlag != "" {
		config.CalendarID = calendarIDFlag
	}
	if timezoneFlag != "" {
		config.Timezone = timezoneFlag
	}

	// Step 4: Apply defaults and validate required fields
	if config.ServiceAccountPath == "" {
		if config.GoogleCredentialsPath == "" {
			return nil, fmt.Errorf("google_credentials_path must be provided via --credentials flag, GOOGLE_CREDENTIALS_PATH environment variable, or config file (or configure service_account_path)")
		}
		if config.TokenPath == "" {
			return nil, fmt.Errorf("token_path must be provided via --token-path flag, SHIFTCAL_TOKEN_PATH environment variable, or config file")
		}
	}

	if config.CalendarID == "" {
		config.CalendarID = "primary"
	}
	if config.Timezone == "" {
		config.Timezone = "Europe/Warsaw"
	}
	if _, err := time.LoadLocation(config.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", config.Timezone, err)
	}
	if config.EventTitle == "" {
		config.EventTitle = "Work shift"
	}
	if config.ReminderMinutes == 0 {
		config.ReminderMinutes = 15
	}

	defaults := schedule.DefaultLayout()
	if config.Worksheet == "" {
		config.Worksheet = defaults.Worksheet
	}
	if config.DateRow == 0 {
		config.DateRow = defaults.DateRow
	}
	if len(config.ShiftBlocks) == 0 {
		config.ShiftBlocks = defaults.Blocks
	}
	for i, block := range config.ShiftBlocks {
		if block[0] < 1 || block[1] < block[0] {
			return nil, fmt.Errorf("shift_blocks[%d]: invalid row range [%d, %d]", i, block[0], block[1])
		}
	}
	if config.Days == 0 {
		config.Days = defaults.Days
	}
	if config.StripTags == nil {
		config.StripTags = defaults.StripTags
	}

	return &config, nil
}

// Layout returns the roster layout described by the configuration.
func (c *Config) Layout() schedule.Layout {
	return schedule.Layout{
		Worksheet: c.Worksheet,
		DateRow:   c.DateRow,
		Blocks:    c.ShiftBlocks,
		Days:      c.Days,
		StripTags: c.StripTags,
	}
}

// Location returns the configured timezone. The timezone was validated
// during LoadConfig, so a zero-value Config falls back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RosterYear returns the year assumed for the roster's date cells.
func (c *Config) RosterYear() int {
	if c.Year != 0 {
		return c.Year
	}
	return time.Now().Year()
}
