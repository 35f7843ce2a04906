package activity

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/analytics"
	"github.com/Marakke/activity-app/internal/config"
	"github.com/Marakke/activity-app/internal/store"
)

var statsDate string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Weekly activity statistics: streak, averages, week-over-week change",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseDateOrNow(statsDate)
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			activities, err := s.ListActivities(cfg.UserID)
			if err != nil {
				return err
			}
			completions, err := s.ListCompletions(cfg.UserID)
			if err != nil {
				return err
			}

			now := time.Now()
			snap := analytics.BuildWeekSnapshot(activities, completions, ref, now)
			series := analytics.WeeklySeries(completions)

			fmt.Fprintf(cmd.OutOrStdout(), "Week: %s\n", snap.WeekRangeLabel)
			fmt.Fprintf(cmd.OutOrStdout(), "Completions: %d across %d active days\n", snap.Total, snap.ActiveDays)
			fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d days\n", snap.Streak)
			fmt.Fprintf(cmd.OutOrStdout(), "Average per day: %.1f\n", snap.AveragePerDay)
			fmt.Fprintf(cmd.OutOrStdout(), "Average per week: %.1f\n", snap.AveragePerWeek)

			if delta, ok := analytics.WeekChange(series); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Change from previous week: %+d\n", delta)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Change from previous week: n/a")
			}

			for _, a := range snap.PerActivity {
				icon := a.Icon
				if icon == "" {
					icon = "•"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %-20s %d\n", icon, a.Label, a.Count)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsDate, "date", "", "Any date in the target week (default today)")
}
