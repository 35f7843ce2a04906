package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Marakke/activity-app/internal/analytics"
	"github.com/Marakke/activity-app/internal/dates"
	"github.com/Marakke/activity-app/internal/model"
)

// PreferencesInput carries raw preference fields. ReminderTime accepts
// free-form input and is normalized to HH:MM on write.
type PreferencesInput struct {
	CalorieTarget  float64
	ProteinTargetG float64
	ReminderTime   string
}

// GetUserPreferences returns the user's preferences, or nil when none have
// been saved yet. Absence is a normal state, not an error.
func (s *Store) GetUserPreferences(userID string) (*model.UserPreferences, error) {
	var p model.UserPreferences
	err := s.db.QueryRow(`
SELECT user_id, calorie_target, protein_target_g, reminder_time, updated_at
FROM user_preferences
WHERE user_id = ?
`, userID).Scan(&p.UserID, &p.CalorieTarget, &p.ProteinTargetG, &p.ReminderTime, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if err = classify(err); s.degradeToEmpty("get preferences", err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &p, nil
}

// UpsertUserPreferences validates, normalizes, and writes the preferences.
func (s *Store) UpsertUserPreferences(userID string, in PreferencesInput) (*model.UserPreferences, error) {
	calories, err := analytics.ValidateMacro("calorie target", in.CalorieTarget)
	if err != nil {
		return nil, err
	}
	protein, err := analytics.ValidateMacro("protein target", in.ProteinTargetG)
	if err != nil {
		return nil, err
	}
	reminder := dates.NormalizeTimeOfDay(in.ReminderTime)

	if _, err := s.db.Exec(`
INSERT INTO user_preferences(user_id, calorie_target, protein_target_g, reminder_time, updated_at)
VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(user_id) DO UPDATE SET
  calorie_target=excluded.calorie_target,
  protein_target_g=excluded.protein_target_g,
  reminder_time=excluded.reminder_time,
  updated_at=CURRENT_TIMESTAMP
`, userID, calories, protein, reminder); err != nil {
		return nil, fmt.Errorf("upsert preferences: %w", classify(err))
	}
	return s.GetUserPreferences(userID)
}
