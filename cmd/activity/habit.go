package activity

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/config"
	"github.com/Marakke/activity-app/internal/model"
	"github.com/Marakke/activity-app/internal/store"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage your daily habits",
}

var habitIcon string

var habitAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Add a habit to the end of your list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			a, err := s.UpsertActivity(cfg.UserID, model.Activity{Label: args[0], Icon: habitIcon})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added habit %s (#%d)\n", a.Label, a.ID)
			return nil
		})
	},
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits in your chosen order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			activities, err := s.ListActivities(cfg.UserID)
			if err != nil {
				return err
			}
			if len(activities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No habits yet. Add one with: activity habit add <label>")
				return nil
			}
			bold := color.New(color.Bold)
			for i, a := range activities {
				icon := a.Icon
				if icon == "" {
					icon = "•"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s %s\n", i+1, icon, bold.Sprint(a.Label))
			}
			return nil
		})
	},
}

var habitRenameCmd = &cobra.Command{
	Use:   "rename <label> <new-label>",
	Short: "Rename a habit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			a, err := s.ActivityByLabel(cfg.UserID, args[0])
			if err != nil {
				return err
			}
			a.Label = args[1]
			if _, err := s.UpsertActivity(cfg.UserID, *a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], args[1])
			return nil
		})
	},
}

var habitIconCmd = &cobra.Command{
	Use:   "icon <label> <icon>",
	Short: "Set a habit's icon",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			a, err := s.ActivityByLabel(cfg.UserID, args[0])
			if err != nil {
				return err
			}
			a.Icon = args[1]
			if _, err := s.UpsertActivity(cfg.UserID, *a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set icon for %s to %s\n", a.Label, a.Icon)
			return nil
		})
	},
}

var habitMoveCmd = &cobra.Command{
	Use:   "move <label> <up|down>",
	Short: "Swap a habit with its neighbor in the list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var up bool
		switch args[1] {
		case "up":
			up = true
		case "down":
			up = false
		default:
			return fmt.Errorf("direction must be up or down, got %q", args[1])
		}
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			a, err := s.ActivityByLabel(cfg.UserID, args[0])
			if err != nil {
				return err
			}
			if err := s.MoveActivity(cfg.UserID, a.ID, up); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s %s\n", a.Label, args[1])
			return nil
		})
	},
}

var habitDeleteCmd = &cobra.Command{
	Use:   "delete <label>",
	Short: "Delete a habit and its completion history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			a, err := s.ActivityByLabel(cfg.UserID, args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteActivity(cfg.UserID, a.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted habit %s\n", a.Label)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(habitCmd)
	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitRenameCmd)
	habitCmd.AddCommand(habitIconCmd)
	habitCmd.AddCommand(habitMoveCmd)
	habitCmd.AddCommand(habitDeleteCmd)

	habitAddCmd.Flags().StringVar(&habitIcon, "icon", "", "Icon shown on the weekly grid")
}
