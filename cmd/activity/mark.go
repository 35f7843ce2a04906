package activity

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/config"
	"github.com/Marakke/activity-app/internal/dates"
	"github.com/Marakke/activity-app/internal/store"
)

var markDate string

var markCmd = &cobra.Command{
	Use:     "mark <habit>",
	Aliases: []string{"unmark"},
	Short:   "Toggle a habit's completion for a day",
	Long:    "Toggle a habit's completion for a day. Marking an already-marked day unmarks it; toggling twice is a no-op.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrNow(markDate)
		if err != nil {
			return err
		}
		key := dates.Key(target)
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			a, err := s.ActivityByLabel(cfg.UserID, args[0])
			if err != nil {
				return err
			}
			done, err := s.ToggleCompletion(cfg.UserID, a.ID, key)
			if err != nil {
				return err
			}
			if done {
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s for %s %s\n", a.Label, key, color.GreenString("✓"))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unmarked %s for %s\n", a.Label, key)
			}
			return nil
		})
	},
}

var weekDate string

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the weekly grid for the week containing a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseDateOrNow(weekDate)
		if err != nil {
			return err
		}
		window := dates.WindowOf(ref)
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			activities, err := s.ListActivities(cfg.UserID)
			if err != nil {
				return err
			}
			completions, err := s.CompletionsInRange(cfg.UserID, dates.Key(window.Start), dates.Key(window.End))
			if err != nil {
				return err
			}

			done := map[int64]map[string]bool{}
			for _, c := range completions {
				if done[c.ActivityID] == nil {
					done[c.ActivityID] = map[string]bool{}
				}
				done[c.ActivityID][c.Date] = true
			}

			year, isoWeek := dates.ISOWeekYear(ref)
			fmt.Fprintf(cmd.OutOrStdout(), "Week %d of %d (%s)\n\n", isoWeek, year, window.Label())
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s Mon Tue Wed Thu Fri Sat Sun\n", "")

			days := window.Days()
			green := color.New(color.FgGreen)
			for _, a := range activities {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s", trimLabel(a.Label, 16))
				for _, day := range days {
					cell := "·"
					if done[a.ID][dates.Key(day)] {
						cell = green.Sprint("✓")
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %s ", cell)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if len(activities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No habits yet. Add one with: activity habit add <label>")
			}
			return nil
		})
	},
}

func trimLabel(label string, max int) string {
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	return string(runes[:max-1]) + "…"
}

func init() {
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(weekCmd)

	markCmd.Flags().StringVar(&markDate, "date", "", "Date YYYY-MM-DD (default today)")
	weekCmd.Flags().StringVar(&weekDate, "date", "", "Any date in the target week (default today)")
}
