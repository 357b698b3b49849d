package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	calclient "github.com/jwrobel/shiftcal/internal/calendar"
	"github.com/jwrobel/shiftcal/internal/config"
	"github.com/jwrobel/shiftcal/internal/gsheet"
	"github.com/jwrobel/shiftcal/internal/sync"
)

func newSyncCmd() *cobra.Command {
	var (
		spreadsheet     string
		worker          string
		calendarID      string
		credentialsPath string
		tokenPath       string
		timezone        string
		icsPath         string
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Read the shift plan and create calendar events",
		Long: `Reads the shift plan spreadsheet, extracts the workshifts of the given
person and creates one calendar event per shift. Re-running the sync
updates previously created events instead of duplicating them.

The spreadsheet may be given as a title, a docs.google.com URL or a
bare spreadsheet ID. When --spreadsheet or --worker is missing, the
value is asked for interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.LoadConfig(configFile, credentialsPath, tokenPath, calendarID, timezone)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			in := bufio.NewReader(cmd.InOrStdin())
			if spreadsheet == "" {
				if spreadsheet, err = prompt(in, cmd.OutOrStdout(), "Spreadsheet name"); err != nil {
					return err
				}
			}
			if worker == "" {
				if worker, err = prompt(in, cmd.OutOrStdout(), "Worker full name"); err != nil {
					return err
				}
			}

			opts, err := googleClientOptions(ctx, cfg)
			if err != nil {
				return err
			}

			source, err := gsheet.NewClient(ctx, opts...)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			var sink calclient.Sink
			switch {
			case dryRun:
				sink = calclient.NewPreviewSink(os.Stdout)
			case icsPath != "":
				sink = calclient.NewFileSink(icsPath)
			default:
				client, err := calclient.NewClient(ctx, opts...)
				if err != nil {
					return fmt.Errorf("failed to create calendar client: %w", err)
				}
				sink = calclient.NewGoogleSink(client, cfg.CalendarID)
			}

			syncer := sync.NewSyncer(source, sink, cfg, verbose)
			return syncer.Sync(ctx, spreadsheet, worker)
		},
	}

	cmd.Flags().StringVar(&spreadsheet, "spreadsheet", "", "Spreadsheet title, URL or ID (prompted for when omitted)")
	cmd.Flags().StringVar(&worker, "worker", "", "Full name of the person whose shifts to extract (prompted for when omitted)")
	cmd.Flags().StringVar(&calendarID, "calendar-id", "", "Destination calendar ID (default \"primary\")")
	cmd.Flags().StringVar(&credentialsPath, "credentials", "", "Path to the Google OAuth credentials JSON file")
	cmd.Flags().StringVar(&tokenPath, "token-path", "", "Path to the cached OAuth token file")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for the created events (default \"Europe/Warsaw\")")
	cmd.Flags().StringVar(&icsPath, "ics", "", "Write events to this iCalendar file instead of Google Calendar")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print planned events without creating anything")

	return cmd
}

// prompt asks for a value on the console and returns the entered line.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%s must not be empty", strings.ToLower(label))
	}

	return line, nil
}
