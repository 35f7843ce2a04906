package store_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/Marakke/activity-app/internal/db"
	"github.com/Marakke/activity-app/internal/model"
	"github.com/Marakke/activity-app/internal/store"
)

const testUser = "local"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	sqldb := openRaw(t)
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.New(sqldb, nil)
}

func openRaw(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}

func addActivity(t *testing.T, s *store.Store, label string) *model.Activity {
	t.Helper()
	a, err := s.UpsertActivity(testUser, model.Activity{Label: label})
	if err != nil {
		t.Fatalf("add activity %q: %v", label, err)
	}
	return a
}

func TestUpsertActivityAssignsOrder(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	run := addActivity(t, s, "Run")
	read := addActivity(t, s, "Read")

	if run.OrderIndex >= read.OrderIndex {
		t.Fatalf("expected run before read, got %d and %d", run.OrderIndex, read.OrderIndex)
	}

	listed, err := s.ListActivities(testUser)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(listed) != 2 || listed[0].Label != "Run" || listed[1].Label != "Read" {
		t.Fatalf("unexpected order: %+v", listed)
	}
}

func TestUpsertActivityRename(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a := addActivity(t, s, "Run")

	a.Label = "Morning run"
	a.Icon = "🏃"
	if _, err := s.UpsertActivity(testUser, *a); err != nil {
		t.Fatalf("rename activity: %v", err)
	}

	listed, err := s.ListActivities(testUser)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(listed) != 1 || listed[0].Label != "Morning run" || listed[0].Icon != "🏃" {
		t.Fatalf("rename not persisted: %+v", listed)
	}
}

func TestMoveActivityAdjacentSwap(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	addActivity(t, s, "Run")
	read := addActivity(t, s, "Read")
	addActivity(t, s, "Meditate")

	if err := s.MoveActivity(testUser, read.ID, true); err != nil {
		t.Fatalf("move up: %v", err)
	}
	listed, err := s.ListActivities(testUser)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if listed[0].Label != "Read" || listed[1].Label != "Run" || listed[2].Label != "Meditate" {
		t.Fatalf("unexpected order after move: %+v", labels(listed))
	}

	// Top of the list: moving up again is a no-op, not an error.
	if err := s.MoveActivity(testUser, read.ID, true); err != nil {
		t.Fatalf("move past top: %v", err)
	}
	listed, err = s.ListActivities(testUser)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if listed[0].Label != "Read" {
		t.Fatalf("no-op move changed order: %+v", labels(listed))
	}
}

func labels(activities []model.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.Label)
	}
	return out
}

func TestToggleCompletionRoundTrips(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a := addActivity(t, s, "Run")

	done, err := s.ToggleCompletion(testUser, a.ID, "2026-02-10")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !done {
		t.Fatalf("first toggle should mark the day")
	}

	completions, err := s.ListCompletions(testUser)
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(completions) != 1 || completions[0].Date != "2026-02-10" {
		t.Fatalf("unexpected completions: %+v", completions)
	}

	done, err = s.ToggleCompletion(testUser, a.ID, "2026-02-10")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if done {
		t.Fatalf("second toggle should unmark the day")
	}
	completions, err = s.ListCompletions(testUser)
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(completions) != 0 {
		t.Fatalf("toggle twice must round-trip to empty, got %+v", completions)
	}
}

func TestToggleCompletionRejectsBadDate(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a := addActivity(t, s, "Run")
	if _, err := s.ToggleCompletion(testUser, a.ID, "tomorrow"); err == nil {
		t.Fatalf("expected error for malformed date key")
	}
}

func TestToggleCompletionScopedToOwner(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a := addActivity(t, s, "Run")
	if _, err := s.ToggleCompletion(testUser, a.ID, "2026-02-10"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// Another profile addressing this activity id must not remove the
	// owner's completion.
	_, _ = s.ToggleCompletion("intruder", a.ID, "2026-02-10")

	completions, err := s.ListCompletions(testUser)
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(completions) != 1 || completions[0].Date != "2026-02-10" {
		t.Fatalf("owner's completion must survive, got %+v", completions)
	}
}

func TestDeleteActivityCascadesCompletions(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a := addActivity(t, s, "Run")
	if _, err := s.ToggleCompletion(testUser, a.ID, "2026-02-10"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := s.DeleteActivity(testUser, a.ID); err != nil {
		t.Fatalf("delete activity: %v", err)
	}
	completions, err := s.ListCompletions(testUser)
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(completions) != 0 {
		t.Fatalf("completions must cascade away, got %+v", completions)
	}
}

func TestUpsertMealValidatesBeforePersisting(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.UpsertMeal(testUser, store.MealInput{Name: "bad", Calories: -5})
	if err == nil {
		t.Fatalf("negative calories must be rejected")
	}

	from := time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2100, 1, 1, 0, 0, 0, 0, time.Local)
	meals, err := s.ListMeals(testUser, from, to)
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("rejected meal must not reach the store, got %+v", meals)
	}
}

func TestUpsertMealRoundsMacros(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	meal, err := s.UpsertMeal(testUser, store.MealInput{
		Name:     "Oatmeal",
		Calories: 12.7,
		ProteinG: 3.2,
		EatenAt:  time.Date(2026, 2, 10, 8, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatalf("upsert meal: %v", err)
	}
	if meal.Calories != 13 {
		t.Fatalf("expected 12.7 kcal to round to 13, got %d", meal.Calories)
	}
	if meal.ProteinG != 3 {
		t.Fatalf("expected 3.2g protein to round to 3, got %d", meal.ProteinG)
	}
	if meal.ID == "" {
		t.Fatalf("expected a generated meal id")
	}
}

func TestUpsertMealUpdatesExisting(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	eaten := time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)

	meal, err := s.UpsertMeal(testUser, store.MealInput{Name: "Salad", Calories: 300, EatenAt: eaten})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}
	if _, err := s.UpsertMeal(testUser, store.MealInput{ID: meal.ID, Name: "Big salad", Calories: 450, EatenAt: eaten}); err != nil {
		t.Fatalf("update meal: %v", err)
	}

	meals, err := s.ListMeals(testUser, eaten.AddDate(0, 0, -1), eaten.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 1 || meals[0].Name != "Big salad" || meals[0].Calories != 450 {
		t.Fatalf("update not persisted: %+v", meals)
	}
}

func TestUpsertMealScopedToOwner(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	eaten := time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)

	meal, err := s.UpsertMeal(testUser, store.MealInput{Name: "Salad", Calories: 300, EatenAt: eaten})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}

	// Another profile reusing this meal id must not overwrite the row.
	if _, err := s.UpsertMeal("intruder", store.MealInput{ID: meal.ID, Name: "Hijacked", Calories: 1, EatenAt: eaten}); err == nil {
		t.Fatalf("expected not-found for another profile's meal id")
	}

	meals, err := s.ListMeals(testUser, eaten.AddDate(0, 0, -1), eaten.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 1 || meals[0].Name != "Salad" || meals[0].Calories != 300 {
		t.Fatalf("owner's meal must be untouched, got %+v", meals)
	}
}

func TestGetDailyTotalsGroupsByLocalDay(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	seed := []store.MealInput{
		{Name: "Breakfast", Calories: 400, ProteinG: 30, EatenAt: time.Date(2026, 2, 10, 8, 0, 0, 0, time.Local)},
		{Name: "Dinner", Calories: 250, ProteinG: 20, EatenAt: time.Date(2026, 2, 10, 19, 0, 0, 0, time.Local)},
		{Name: "Lunch", Calories: 600, ProteinG: 45, EatenAt: time.Date(2026, 2, 11, 13, 0, 0, 0, time.Local)},
	}
	for _, in := range seed {
		if _, err := s.UpsertMeal(testUser, in); err != nil {
			t.Fatalf("seed meal %s: %v", in.Name, err)
		}
	}

	from := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 2, 12, 0, 0, 0, 0, time.Local)
	totals, err := s.GetDailyTotals(testUser, from, to)
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 days, got %+v", totals)
	}
	if totals[0].Day != "2026-02-10" || totals[0].Calories != 650 || totals[0].Protein != 50 {
		t.Fatalf("unexpected first day: %+v", totals[0])
	}
	if totals[1].Day != "2026-02-11" || totals[1].Calories != 600 {
		t.Fatalf("unexpected second day: %+v", totals[1])
	}
}

func TestDeleteMeal(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	meal, err := s.UpsertMeal(testUser, store.MealInput{Name: "Snack", Calories: 100})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}
	if err := s.DeleteMeal(testUser, meal.ID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}
	if err := s.DeleteMeal(testUser, meal.ID); err == nil {
		t.Fatalf("expected not-found for second delete")
	}
}

func TestPreferencesAbsentThenUpserted(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	prefs, err := s.GetUserPreferences(testUser)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if prefs != nil {
		t.Fatalf("expected absent preferences, got %+v", prefs)
	}

	saved, err := s.UpsertUserPreferences(testUser, store.PreferencesInput{
		CalorieTarget:  2000.4,
		ProteinTargetG: 150,
		ReminderTime:   "8.30 pm",
	})
	if err != nil {
		t.Fatalf("upsert preferences: %v", err)
	}
	if saved.CalorieTarget != 2000 {
		t.Fatalf("expected rounded calorie target 2000, got %d", saved.CalorieTarget)
	}
	if saved.ReminderTime != "20:30" {
		t.Fatalf("expected normalized reminder time 20:30, got %q", saved.ReminderTime)
	}
}

func TestListOperationsDegradeWhenNotProvisioned(t *testing.T) {
	t.Parallel()
	// No migrations applied: every table is missing.
	s := store.New(openRaw(t), nil)

	completions, err := s.ListCompletions(testUser)
	if err != nil {
		t.Fatalf("list completions against empty schema: %v", err)
	}
	if len(completions) != 0 {
		t.Fatalf("expected empty result, got %+v", completions)
	}

	activities, err := s.ListActivities(testUser)
	if err != nil {
		t.Fatalf("list activities against empty schema: %v", err)
	}
	if len(activities) != 0 {
		t.Fatalf("expected empty result, got %+v", activities)
	}

	prefs, err := s.GetUserPreferences(testUser)
	if err != nil {
		t.Fatalf("get preferences against empty schema: %v", err)
	}
	if prefs != nil {
		t.Fatalf("expected absent preferences, got %+v", prefs)
	}

	// Writes do not degrade: callers must see the failure.
	if _, err := s.UpsertMeal(testUser, store.MealInput{Name: "Snack", Calories: 100}); err == nil {
		t.Fatalf("expected write against empty schema to fail")
	}
}
