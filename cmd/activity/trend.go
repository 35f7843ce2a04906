package activity

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/analytics"
	"github.com/Marakke/activity-app/internal/config"
	"github.com/Marakke/activity-app/internal/store"
)

var (
	trendFrom string
	trendTo   string
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Daily calorie and macro totals over a date range (default last 14 days)",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := resolveDateRange(trendFrom, trendTo, 14)
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			precomputed, err := s.GetDailyTotals(cfg.UserID, from, to)
			if err != nil {
				return err
			}
			meals, err := s.ListMeals(cfg.UserID, from, to)
			if err != nil {
				return err
			}

			series := analytics.TrendSeries(precomputed, meals)
			if len(series) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meals logged in this range.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %8s %8s %8s %8s\n", "Day", "kcal", "Protein", "Carbs", "Fats")
			for _, d := range series {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %8d %7dg %7dg %7dg\n",
					d.Day, d.Calories, d.Protein, d.Carbs, d.Fats)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(trendCmd)
	trendCmd.Flags().StringVar(&trendFrom, "from", "", "Start date YYYY-MM-DD")
	trendCmd.Flags().StringVar(&trendTo, "to", "", "End date YYYY-MM-DD (inclusive)")
}
