package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/Marakke/activity-app/internal/dates"
	"github.com/Marakke/activity-app/internal/model"
)

// TotalsFromMeals sums macros per local calendar day of each meal's eaten
// time, ascending by day. Only days with at least one meal appear.
func TotalsFromMeals(meals []model.Meal) []model.DailyTotals {
	byDay := map[string]*model.DailyTotals{}
	for _, m := range meals {
		day := dates.Key(m.EatenAt)
		totals, ok := byDay[day]
		if !ok {
			totals = &model.DailyTotals{Day: day}
			byDay[day] = totals
		}
		totals.Calories += m.Calories
		totals.Protein += m.ProteinG
		totals.Carbs += m.CarbsG
		totals.Fats += m.FatsG
	}
	out := make([]model.DailyTotals, 0, len(byDay))
	for _, totals := range byDay {
		out = append(out, *totals)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// MergeDailyTotals unions a stored aggregate with freshly summed totals.
// When both sides have the same day, the fresh value wins: it reflects
// edits the stored aggregate has not caught up with yet. Result is
// ascending by day.
func MergeDailyTotals(precomputed, fresh []model.DailyTotals) []model.DailyTotals {
	byDay := make(map[string]model.DailyTotals, len(precomputed)+len(fresh))
	for _, d := range precomputed {
		byDay[d.Day] = d
	}
	for _, d := range fresh {
		byDay[d.Day] = d
	}
	out := make([]model.DailyTotals, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// TrendSeries builds the daily macro trend: the stored per-day aggregate
// merged with totals recomputed from the meals currently in memory, one
// point per distinct day with data.
func TrendSeries(precomputed []model.DailyTotals, meals []model.Meal) []model.DailyTotals {
	return MergeDailyTotals(precomputed, TotalsFromMeals(meals))
}

// ValidateMacro rejects negative and non-finite macro input and rounds
// accepted values to the nearest whole unit. The store calls this before
// any persistence happens, so bad input never reaches SQL.
func ValidateMacro(name string, value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a finite number", name)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be >= 0", name)
	}
	return int(math.Round(value)), nil
}
