package activity

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/config"
	"github.com/Marakke/activity-app/internal/store"
)

var (
	prefsCalorieTarget float64
	prefsProteinTarget float64
	prefsReminderTime  string
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change daily targets and the reminder time",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			p, err := s.GetUserPreferences(cfg.UserID)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No preferences saved yet. Use 'activity prefs set'.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calorie target:  %d kcal\n", p.CalorieTarget)
			fmt.Fprintf(cmd.OutOrStdout(), "Protein target:  %dg\n", p.ProteinTargetG)
			fmt.Fprintf(cmd.OutOrStdout(), "Reminder time:   %s\n", p.ReminderTime)
			return nil
		})
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set daily targets and reminder time",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			in := store.PreferencesInput{
				CalorieTarget:  prefsCalorieTarget,
				ProteinTargetG: prefsProteinTarget,
				ReminderTime:   prefsReminderTime,
			}
			if existing, err := s.GetUserPreferences(cfg.UserID); err != nil {
				return err
			} else if existing != nil {
				if !cmd.Flags().Changed("calories") {
					in.CalorieTarget = float64(existing.CalorieTarget)
				}
				if !cmd.Flags().Changed("protein") {
					in.ProteinTargetG = float64(existing.ProteinTargetG)
				}
				if !cmd.Flags().Changed("reminder") {
					in.ReminderTime = existing.ReminderTime
				}
			}
			p, err := s.UpsertUserPreferences(cfg.UserID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved: %d kcal, %dg protein, reminder at %s\n",
				p.CalorieTarget, p.ProteinTargetG, p.ReminderTime)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd)

	prefsSetCmd.Flags().Float64Var(&prefsCalorieTarget, "calories", 2000, "Daily calorie target")
	prefsSetCmd.Flags().Float64Var(&prefsProteinTarget, "protein", 100, "Daily protein target in grams")
	prefsSetCmd.Flags().StringVar(&prefsReminderTime, "reminder", "", "Reminder time, free-form (e.g. '8.30 pm')")
}
