package activity

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/ai"
	"github.com/Marakke/activity-app/internal/config"
	"github.com/Marakke/activity-app/internal/dates"
	"github.com/Marakke/activity-app/internal/model"
	"github.com/Marakke/activity-app/internal/store"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and manage meals",
}

var (
	mealCalories float64
	mealProtein  float64
	mealCarbs    float64
	mealFats     float64
	mealDate     string
	mealTime     string
	mealNotes    string
	mealEstimate string
)

var mealAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Log a meal",
	Long:  "Log a meal with explicit macros, or let --estimate fill them in from a free-text description.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eaten, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store, cfg config.Config, log *zap.Logger) error {
			in := store.MealInput{
				Name:     args[0],
				Calories: mealCalories,
				ProteinG: mealProtein,
				CarbsG:   mealCarbs,
				FatsG:    mealFats,
				EatenAt:  eaten,
				Notes:    mealNotes,
			}
			if mealEstimate != "" {
				est, err := estimateMacros(cmd, cfg, log, mealEstimate)
				if err != nil {
					return err
				}
				in.Calories = float64(est.Calories)
				in.ProteinG = float64(est.Protein)
				in.CarbsG = float64(est.Carbs)
				in.FatsG = float64(est.Fats)
			}
			meal, err := s.UpsertMeal(cfg.UserID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %d kcal | P %dg | C %dg | F %dg (id %s)\n",
				meal.Name, meal.Calories, meal.ProteinG, meal.CarbsG, meal.FatsG, meal.ID)
			return nil
		})
	},
}

func estimateMacros(cmd *cobra.Command, cfg config.Config, log *zap.Logger, description string) (ai.MacroEstimate, error) {
	client, err := ai.New(cmd.Context(), ai.Config{APIKey: cfg.AIKey, Model: cfg.AIModel}, log)
	if err != nil {
		return ai.MacroEstimate{}, fmt.Errorf("macro estimation unavailable (%v); pass --calories/--protein/--carbs/--fats instead", err)
	}
	defer func() { _ = client.Close() }()

	est, err := client.EstimateMacros(cmd.Context(), description)
	if err != nil {
		return ai.MacroEstimate{}, fmt.Errorf("macro estimation failed (%v); pass --calories/--protein/--carbs/--fats instead", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Estimated from %q: %d kcal | P %dg | C %dg | F %dg\n",
		description, est.Calories, est.Protein, est.Carbs, est.Fats)
	return est, nil
}

var (
	mealFrom string
	mealTo   string
)

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals in a date range (default last 7 days)",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := resolveDateRange(mealFrom, mealTo, 7)
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			meals, err := s.ListMeals(cfg.UserID, from, to)
			if err != nil {
				return err
			}
			if len(meals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meals in range.")
				return nil
			}
			for _, m := range meals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s %5d kcal | P %3dg | C %3dg | F %3dg  %s\n",
					m.EatenAt.Format("2006-01-02 15:04"), m.Name, m.Calories, m.ProteinG, m.CarbsG, m.FatsG, m.ID)
			}
			return nil
		})
	},
}

var mealEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			existing, err := findMeal(s, cfg.UserID, args[0])
			if err != nil {
				return err
			}

			in := store.MealInput{
				ID:       existing.ID,
				Name:     existing.Name,
				Calories: float64(existing.Calories),
				ProteinG: float64(existing.ProteinG),
				CarbsG:   float64(existing.CarbsG),
				FatsG:    float64(existing.FatsG),
				EatenAt:  existing.EatenAt,
				Notes:    existing.Notes,
			}
			if cmd.Flags().Changed("name") {
				in.Name = mealName
			}
			if cmd.Flags().Changed("calories") {
				in.Calories = mealCalories
			}
			if cmd.Flags().Changed("protein") {
				in.ProteinG = mealProtein
			}
			if cmd.Flags().Changed("carbs") {
				in.CarbsG = mealCarbs
			}
			if cmd.Flags().Changed("fats") {
				in.FatsG = mealFats
			}
			if cmd.Flags().Changed("date") || cmd.Flags().Changed("time") {
				// Changing only the clock keeps the meal on its original
				// day; changing only the day keeps its original clock.
				day := dates.StartOfDay(existing.EatenAt)
				if cmd.Flags().Changed("date") {
					parsed, err := dates.ParseKey(mealDate)
					if err != nil {
						return err
					}
					day = parsed
				}
				clock := existing.EatenAt.Format("15:04")
				if cmd.Flags().Changed("time") {
					clock = dates.NormalizeTimeOfDay(mealTime)
				}
				eaten, err := time.ParseInLocation("2006-01-02 15:04", dates.Key(day)+" "+clock, time.Local)
				if err != nil {
					return err
				}
				in.EatenAt = eaten
			}
			if cmd.Flags().Changed("notes") {
				in.Notes = mealNotes
			}

			meal, err := s.UpsertMeal(cfg.UserID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %d kcal | P %dg | C %dg | F %dg\n",
				meal.Name, meal.Calories, meal.ProteinG, meal.CarbsG, meal.FatsG)
			return nil
		})
	},
}

var mealName string

// findMeal looks a meal up by id across the whole history.
func findMeal(s *store.Store, userID, id string) (*model.Meal, error) {
	wideFrom := time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)
	wideTo := time.Now().AddDate(1, 0, 0)
	meals, err := s.ListMeals(userID, wideFrom, wideTo)
	if err != nil {
		return nil, err
	}
	for i := range meals {
		if meals[i].ID == id {
			return &meals[i], nil
		}
	}
	return nil, fmt.Errorf("meal %s not found", id)
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, cfg config.Config, _ *zap.Logger) error {
			if err := s.DeleteMeal(cfg.UserID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealEditCmd)
	mealCmd.AddCommand(mealDeleteCmd)

	for _, c := range []*cobra.Command{mealAddCmd, mealEditCmd} {
		c.Flags().Float64Var(&mealCalories, "calories", 0, "Calories (kcal)")
		c.Flags().Float64Var(&mealProtein, "protein", 0, "Protein (g)")
		c.Flags().Float64Var(&mealCarbs, "carbs", 0, "Carbs (g)")
		c.Flags().Float64Var(&mealFats, "fats", 0, "Fats (g)")
		c.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
		c.Flags().StringVar(&mealTime, "time", "", "Time of day, free-form (e.g. 19:30, 730, 8pm)")
		c.Flags().StringVar(&mealNotes, "notes", "", "Free-text notes")
	}
	mealAddCmd.Flags().StringVar(&mealEstimate, "estimate", "", "Estimate macros from this description via the AI adapter")
	mealEditCmd.Flags().StringVar(&mealName, "name", "", "New meal name")

	mealListCmd.Flags().StringVar(&mealFrom, "from", "", "Start date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealTo, "to", "", "End date YYYY-MM-DD (inclusive)")
}
