package activity

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/ai"
	"github.com/Marakke/activity-app/internal/analytics"
	"github.com/Marakke/activity-app/internal/config"
	"github.com/Marakke/activity-app/internal/store"
)

var summaryDate string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Narrative recap of the week, AI-written when a key is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseDateOrNow(summaryDate)
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store, cfg config.Config, log *zap.Logger) error {
			activities, err := s.ListActivities(cfg.UserID)
			if err != nil {
				return err
			}
			completions, err := s.ListCompletions(cfg.UserID)
			if err != nil {
				return err
			}

			snap := analytics.BuildWeekSnapshot(activities, completions, ref, time.Now())

			var summarizer ai.Summarizer
			client, err := ai.New(cmd.Context(), ai.Config{APIKey: cfg.AIKey, Model: cfg.AIModel}, log)
			if err == nil {
				defer client.Close()
				summarizer = client
			} else {
				log.Debug("ai client unavailable", zap.Error(err))
			}

			text := ai.SummarizeOrFallback(cmd.Context(), summarizer, snap, log)
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "Any date in the target week (default today)")
}
