// Package analytics turns raw completion and meal records into the derived
// numbers the app shows: per-day counts, weekly series, streaks, averages,
// and trend points. Every function is pure: no I/O, no mutation of inputs,
// deterministic for a given "today".
package analytics

import (
	"sort"
	"time"

	"github.com/Marakke/activity-app/internal/dates"
	"github.com/Marakke/activity-app/internal/model"
)

// streakLookback bounds the backward walk. A safety bound, not a business
// rule: nobody has a longer streak than a year of recorded data here.
const streakLookback = 365

// PerDayCounts groups completions by day key and counts distinct activities
// completed on each day.
func PerDayCounts(completions []model.Completion) map[string]int {
	seen := map[string]map[int64]struct{}{}
	for _, c := range completions {
		byActivity, ok := seen[c.Date]
		if !ok {
			byActivity = map[int64]struct{}{}
			seen[c.Date] = byActivity
		}
		byActivity[c.ActivityID] = struct{}{}
	}
	out := make(map[string]int, len(seen))
	for day, byActivity := range seen {
		out[day] = len(byActivity)
	}
	return out
}

// TotalCompletions counts completion events.
func TotalCompletions(completions []model.Completion) int {
	return len(completions)
}

// ActiveDays counts distinct days with at least one completion.
func ActiveDays(completions []model.Completion) int {
	days := map[string]struct{}{}
	for _, c := range completions {
		days[c.Date] = struct{}{}
	}
	return len(days)
}

// WeekPoint is one entry of the weekly trend series.
type WeekPoint struct {
	WeekStart string // Monday day key
	Count     int
}

// WeeklySeries assigns every completion to the Monday of its own date and
// counts completion events per week, ascending. Weeks with zero activity
// are absent from the series, not zero-filled; consumers that average over
// the series or diff its last two points rely on that.
func WeeklySeries(completions []model.Completion) []WeekPoint {
	counts := map[string]int{}
	for _, c := range completions {
		day, err := dates.ParseKey(c.Date)
		if err != nil {
			continue
		}
		counts[dates.Key(dates.MondayOf(day))]++
	}
	out := make([]WeekPoint, 0, len(counts))
	for weekStart, count := range counts {
		out = append(out, WeekPoint{WeekStart: weekStart, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}

// CurrentStreak counts consecutive days with at least one completion,
// walking backward from today. A streak that does not include today is 0:
// yesterday's run is broken the moment a day passes without activity.
func CurrentStreak(completions []model.Completion, today time.Time) int {
	days := map[string]struct{}{}
	for _, c := range completions {
		days[c.Date] = struct{}{}
	}
	streak := 0
	day := dates.StartOfDay(today)
	for i := 0; i < streakLookback; i++ {
		if _, ok := days[dates.Key(day)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// AveragePerDay divides the window's completions by the days elapsed in
// the window so far: from the window's Monday up to and including today,
// never counting future days. Zero elapsed days yields 0.
func AveragePerDay(completions []model.Completion, window dates.Window, today time.Time) float64 {
	elapsed := elapsedDays(window, today)
	if elapsed == 0 {
		return 0
	}
	total := 0
	for _, c := range completions {
		day, err := dates.ParseKey(c.Date)
		if err != nil {
			continue
		}
		if window.Contains(day) {
			total++
		}
	}
	return float64(total) / float64(elapsed)
}

func elapsedDays(window dates.Window, today time.Time) int {
	day := dates.StartOfDay(today)
	if day.Before(window.Start) {
		return 0
	}
	if day.After(window.End) {
		return 7
	}
	elapsed := 0
	for d := window.Start; !d.After(day); d = d.AddDate(0, 0, 1) {
		elapsed++
	}
	return elapsed
}

// AveragePerWeek divides total completions by the number of weeks present
// in the series. Empty weeks are absent from the series and therefore do
// not dilute the denominator.
func AveragePerWeek(series []WeekPoint) float64 {
	if len(series) == 0 {
		return 0
	}
	total := 0
	for _, p := range series {
		total += p.Count
	}
	return float64(total) / float64(len(series))
}

// WeekChange returns the difference between the two most recent points in
// the series. Because empty weeks are omitted, those points are the two
// most recent non-empty weeks, not necessarily adjacent calendar weeks.
// ok is false when the series has fewer than two points.
func WeekChange(series []WeekPoint) (delta int, ok bool) {
	if len(series) < 2 {
		return 0, false
	}
	last := series[len(series)-1]
	prev := series[len(series)-2]
	return last.Count - prev.Count, true
}

// ActivityCount is a per-activity completion count within the active week.
type ActivityCount struct {
	Label string
	Icon  string
	Count int
}

// WeekSnapshot is the structured view of one week's analytics handed to
// the summary adapter and to its local fallback.
type WeekSnapshot struct {
	PerActivity    []ActivityCount
	Total          int
	ActiveDays     int
	Streak         int
	AveragePerDay  float64
	AveragePerWeek float64
	WeekRangeLabel string
}

// BuildWeekSnapshot assembles the snapshot for the week containing ref.
// Per-activity counts and totals cover the window only; the streak and the
// weekly average are computed over the full completion history.
func BuildWeekSnapshot(activities []model.Activity, completions []model.Completion, ref, today time.Time) WeekSnapshot {
	window := dates.WindowOf(ref)

	inWindow := make([]model.Completion, 0, len(completions))
	countByActivity := map[int64]int{}
	for _, c := range completions {
		day, err := dates.ParseKey(c.Date)
		if err != nil || !window.Contains(day) {
			continue
		}
		inWindow = append(inWindow, c)
		countByActivity[c.ActivityID]++
	}

	perActivity := make([]ActivityCount, 0, len(activities))
	for _, a := range activities {
		perActivity = append(perActivity, ActivityCount{
			Label: a.Label,
			Icon:  a.Icon,
			Count: countByActivity[a.ID],
		})
	}

	return WeekSnapshot{
		PerActivity:    perActivity,
		Total:          TotalCompletions(inWindow),
		ActiveDays:     ActiveDays(inWindow),
		Streak:         CurrentStreak(completions, today),
		AveragePerDay:  AveragePerDay(completions, window, today),
		AveragePerWeek: AveragePerWeek(WeeklySeries(completions)),
		WeekRangeLabel: window.Label(),
	}
}
