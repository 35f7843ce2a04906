package analytics_test

import (
	"math"
	"testing"
	"time"

	"github.com/Marakke/activity-app/internal/analytics"
	"github.com/Marakke/activity-app/internal/model"
)

func meal(name string, eaten time.Time, calories, protein, carbs, fats int) model.Meal {
	return model.Meal{
		ID:       name,
		UserID:   "local",
		Name:     name,
		Calories: calories,
		ProteinG: protein,
		CarbsG:   carbs,
		FatsG:    fats,
		EatenAt:  eaten,
	}
}

func TestTotalsFromMealsGroupsByLocalDay(t *testing.T) {
	t.Parallel()
	meals := []model.Meal{
		meal("breakfast", time.Date(2026, 2, 10, 8, 0, 0, 0, time.Local), 400, 30, 40, 12),
		meal("dinner", time.Date(2026, 2, 10, 19, 30, 0, 0, time.Local), 250, 20, 15, 8),
		meal("late snack", time.Date(2026, 2, 11, 23, 55, 0, 0, time.Local), 150, 5, 20, 4),
	}
	totals := analytics.TotalsFromMeals(meals)
	if len(totals) != 2 {
		t.Fatalf("expected 2 days, got %d", len(totals))
	}
	if totals[0].Day != "2026-02-10" || totals[0].Calories != 650 || totals[0].Protein != 50 {
		t.Fatalf("unexpected first day %+v", totals[0])
	}
	if totals[1].Day != "2026-02-11" || totals[1].Calories != 150 {
		t.Fatalf("unexpected second day %+v", totals[1])
	}
}

func TestMergeDailyTotalsFreshWins(t *testing.T) {
	t.Parallel()
	precomputed := []model.DailyTotals{
		{Day: "2026-02-09", Calories: 1800, Protein: 120, Carbs: 180, Fats: 60},
		{Day: "2026-02-10", Calories: 500, Protein: 40, Carbs: 50, Fats: 15},
	}
	fresh := []model.DailyTotals{
		{Day: "2026-02-10", Calories: 650, Protein: 50, Carbs: 55, Fats: 20},
		{Day: "2026-02-11", Calories: 150, Protein: 5, Carbs: 20, Fats: 4},
	}
	merged := analytics.MergeDailyTotals(precomputed, fresh)
	if len(merged) != 3 {
		t.Fatalf("expected 3 days, got %d", len(merged))
	}
	if merged[0].Day != "2026-02-09" || merged[0].Calories != 1800 {
		t.Fatalf("stored-only day should survive untouched: %+v", merged[0])
	}
	if merged[1].Day != "2026-02-10" || merged[1].Calories != 650 {
		t.Fatalf("fresh total must win for the conflicting day: %+v", merged[1])
	}
	if merged[2].Day != "2026-02-11" || merged[2].Calories != 150 {
		t.Fatalf("fresh-only day missing: %+v", merged[2])
	}
}

func TestTrendSeriesMergesFreshMeals(t *testing.T) {
	t.Parallel()
	precomputed := []model.DailyTotals{{Day: "2026-02-10", Calories: 500}}
	meals := []model.Meal{
		meal("breakfast", time.Date(2026, 2, 10, 8, 0, 0, 0, time.Local), 400, 30, 40, 12),
		meal("dinner", time.Date(2026, 2, 10, 19, 0, 0, 0, time.Local), 250, 20, 15, 8),
	}
	series := analytics.TrendSeries(precomputed, meals)
	if len(series) != 1 {
		t.Fatalf("expected 1 point, got %d", len(series))
	}
	if series[0].Calories != 650 {
		t.Fatalf("expected recomputed 650 kcal, got %d", series[0].Calories)
	}
}

func TestValidateMacro(t *testing.T) {
	t.Parallel()
	if _, err := analytics.ValidateMacro("calories", -5); err == nil {
		t.Fatalf("negative macro must be rejected")
	}
	if _, err := analytics.ValidateMacro("protein", math.NaN()); err == nil {
		t.Fatalf("NaN macro must be rejected")
	}
	got, err := analytics.ValidateMacro("calories", 12.7)
	if err != nil {
		t.Fatalf("validate 12.7: %v", err)
	}
	if got != 13 {
		t.Fatalf("expected 12.7 to round to 13, got %d", got)
	}
	got, err = analytics.ValidateMacro("fats", 0)
	if err != nil || got != 0 {
		t.Fatalf("zero must pass unchanged, got %d err %v", got, err)
	}
}
