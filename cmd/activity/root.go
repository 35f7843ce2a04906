package activity

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath   string
	userFlag string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "activity",
	Short: "activity tracks daily habits and meals from your terminal",
	Long:  "activity is a local-first tracker: mark habits on a weekly grid, log meals with macros, and review streaks, trends, and an AI-assisted weekly summary.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "Profile name (default from ACTIVITY_USER or \"local\")")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}
