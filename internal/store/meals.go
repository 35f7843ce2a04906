package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Marakke/activity-app/internal/analytics"
	"github.com/Marakke/activity-app/internal/model"
)

// MealInput carries raw meal fields as entered by the user. Macro values
// stay float64 here so validation and rounding happen in one place, before
// any persistence call.
type MealInput struct {
	ID       string
	Name     string
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatsG    float64
	EatenAt  time.Time
	Notes    string
}

// UpsertMeal validates and rounds the input, then inserts a new meal (a
// fresh uuid when ID is empty) or overwrites the existing one. Invalid
// macros are rejected before any SQL runs.
func (s *Store) UpsertMeal(userID string, in MealInput) (*model.Meal, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("meal name is required")
	}
	calories, err := analytics.ValidateMacro("calories", in.Calories)
	if err != nil {
		return nil, err
	}
	protein, err := analytics.ValidateMacro("protein", in.ProteinG)
	if err != nil {
		return nil, err
	}
	carbs, err := analytics.ValidateMacro("carbs", in.CarbsG)
	if err != nil {
		return nil, err
	}
	fats, err := analytics.ValidateMacro("fats", in.FatsG)
	if err != nil {
		return nil, err
	}
	if in.EatenAt.IsZero() {
		in.EatenAt = time.Now()
	}

	meal := &model.Meal{
		ID:       strings.TrimSpace(in.ID),
		UserID:   userID,
		Name:     in.Name,
		Calories: calories,
		ProteinG: protein,
		CarbsG:   carbs,
		FatsG:    fats,
		EatenAt:  in.EatenAt,
		Notes:    strings.TrimSpace(in.Notes),
	}
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}

	res, err := s.db.Exec(`
INSERT INTO meals(id, user_id, name, calories, protein_g, carbs_g, fats_g, eaten_at, notes)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fats_g=excluded.fats_g,
  eaten_at=excluded.eaten_at,
  notes=excluded.notes,
  updated_at=CURRENT_TIMESTAMP
WHERE meals.user_id = excluded.user_id
`, meal.ID, meal.UserID, meal.Name, meal.Calories, meal.ProteinG, meal.CarbsG, meal.FatsG,
		meal.EatenAt.Format(time.RFC3339), meal.Notes)
	if err != nil {
		return nil, fmt.Errorf("upsert meal %q: %w", meal.Name, classify(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("read rows affected for meal %s: %w", meal.ID, err)
	}
	// The conflict update is scoped to the owning user; an id belonging
	// to another profile changes nothing.
	if affected == 0 {
		return nil, fmt.Errorf("meal %s: %w", meal.ID, ErrNotFound)
	}
	return meal, nil
}

// ListMeals returns the user's meals eaten within [from, to), newest first.
func (s *Store) ListMeals(userID string, from, to time.Time) ([]model.Meal, error) {
	rows, err := s.db.Query(`
SELECT id, user_id, name, calories, protein_g, carbs_g, fats_g, eaten_at, IFNULL(notes, '')
FROM meals
WHERE user_id = ? AND eaten_at >= ? AND eaten_at < ?
ORDER BY eaten_at DESC
`, userID, from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		if err = classify(err); s.degradeToEmpty("list meals", err) {
			return []model.Meal{}, nil
		}
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0)
	for rows.Next() {
		var m model.Meal
		var eatenRaw string
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Calories, &m.ProteinG, &m.CarbsG, &m.FatsG, &eatenRaw, &m.Notes); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		eaten, err := time.Parse(time.RFC3339, eatenRaw)
		if err != nil {
			return nil, fmt.Errorf("parse eaten_at for meal %s: %w", m.ID, err)
		}
		m.EatenAt = eaten.In(time.Local)
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return meals, nil
}

// DeleteMeal removes one meal by id.
func (s *Store) DeleteMeal(userID, mealID string) error {
	mealID = strings.TrimSpace(mealID)
	if mealID == "" {
		return fmt.Errorf("meal id is required")
	}
	res, err := s.db.Exec(`DELETE FROM meals WHERE id = ? AND user_id = ?`, mealID, userID)
	if err != nil {
		return fmt.Errorf("delete meal %s: %w", mealID, classify(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for meal %s: %w", mealID, err)
	}
	if affected == 0 {
		return fmt.Errorf("meal %s: %w", mealID, ErrNotFound)
	}
	return nil
}

// GetDailyTotals returns the store's per-day macro aggregate for meals in
// [from, to). Timestamps are stored as RFC3339 in local time, so the first
// ten characters are the local day key. This is the "precomputed" side of
// the merge rule: whenever fresh meals for a day are in memory, the
// recomputed totals win over these rows.
func (s *Store) GetDailyTotals(userID string, from, to time.Time) ([]model.DailyTotals, error) {
	rows, err := s.db.Query(`
SELECT substr(eaten_at, 1, 10) AS day, SUM(calories), SUM(protein_g), SUM(carbs_g), SUM(fats_g)
FROM meals
WHERE user_id = ? AND eaten_at >= ? AND eaten_at < ?
GROUP BY day
ORDER BY day ASC
`, userID, from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		if err = classify(err); s.degradeToEmpty("daily totals", err) {
			return []model.DailyTotals{}, nil
		}
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	defer rows.Close()

	totals := make([]model.DailyTotals, 0)
	for rows.Next() {
		var d model.DailyTotals
		if err := rows.Scan(&d.Day, &d.Calories, &d.Protein, &d.Carbs, &d.Fats); err != nil {
			return nil, fmt.Errorf("scan daily totals: %w", err)
		}
		totals = append(totals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily totals: %w", err)
	}
	return totals, nil
}
