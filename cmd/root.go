package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the shiftcal application
var rootCmd = &cobra.Command{
	Use:   "shiftcal",
	Short: "Creates Google Calendar events from a Google Sheets shift plan",
	Long: `shiftcal reads workshift hour entries from a Google Sheets shift plan,
extracts the shifts belonging to a named person, and creates matching
events in that person's Google Calendar.

On first run you will be prompted to authorize access to your sheets,
drive and calendar data via OAuth 2.0. Subsequent runs use the cached
token. Alternatively, a service account key can be configured.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	},
}

var (
	configFile string
	verbose    bool
)

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "shiftcal version %s\n" .Version}}`)

	// If no subcommand is provided, run the sync command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "sync")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (show DEBUG logs)")

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAuthorizeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
