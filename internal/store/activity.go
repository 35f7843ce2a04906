package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Marakke/activity-app/internal/dates"
	"github.com/Marakke/activity-app/internal/model"
)

// ListActivities returns the user's activities in their chosen order.
func (s *Store) ListActivities(userID string) ([]model.Activity, error) {
	rows, err := s.db.Query(`
SELECT id, user_id, label, IFNULL(icon, ''), order_index, created_at
FROM activities
WHERE user_id = ?
ORDER BY order_index ASC, id ASC
`, userID)
	if err != nil {
		if err = classify(err); s.degradeToEmpty("list activities", err) {
			return []model.Activity{}, nil
		}
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]model.Activity, 0)
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Icon, &a.OrderIndex, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}

// ActivityByLabel resolves one of the user's activities by its label.
func (s *Store) ActivityByLabel(userID, label string) (*model.Activity, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("activity label is required")
	}
	var a model.Activity
	err := s.db.QueryRow(`
SELECT id, user_id, label, IFNULL(icon, ''), order_index, created_at
FROM activities
WHERE user_id = ? AND label = ?
`, userID, label).Scan(&a.ID, &a.UserID, &a.Label, &a.Icon, &a.OrderIndex, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity %q: %w", label, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup activity %q: %w", label, classify(err))
	}
	return &a, nil
}

// UpsertActivity creates a new activity at the end of the user's order, or
// updates the label and icon of an existing one when ID is set.
func (s *Store) UpsertActivity(userID string, a model.Activity) (*model.Activity, error) {
	a.Label = strings.TrimSpace(a.Label)
	if a.Label == "" {
		return nil, fmt.Errorf("activity label is required")
	}
	a.UserID = userID

	if a.ID > 0 {
		res, err := s.db.Exec(`
UPDATE activities SET label = ?, icon = ? WHERE id = ? AND user_id = ?
`, a.Label, a.Icon, a.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("update activity %d: %w", a.ID, classify(err))
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("read rows affected for activity %d: %w", a.ID, err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("activity %d: %w", a.ID, ErrNotFound)
		}
		return &a, nil
	}

	var next sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(order_index) + 1 FROM activities WHERE user_id = ?`, userID).Scan(&next); err != nil {
		return nil, fmt.Errorf("next activity order: %w", classify(err))
	}
	a.OrderIndex = int(next.Int64)

	res, err := s.db.Exec(`
INSERT INTO activities(user_id, label, icon, order_index) VALUES(?, ?, ?, ?)
`, userID, a.Label, a.Icon, a.OrderIndex)
	if err != nil {
		return nil, fmt.Errorf("insert activity %q: %w", a.Label, classify(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("resolve inserted activity id: %w", err)
	}
	a.ID = id
	return &a, nil
}

// DeleteActivity removes the activity; its completions cascade away.
func (s *Store) DeleteActivity(userID string, activityID int64) error {
	if activityID <= 0 {
		return fmt.Errorf("activity id must be > 0")
	}
	res, err := s.db.Exec(`DELETE FROM activities WHERE id = ? AND user_id = ?`, activityID, userID)
	if err != nil {
		return fmt.Errorf("delete activity %d: %w", activityID, classify(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for activity %d: %w", activityID, err)
	}
	if affected == 0 {
		return fmt.Errorf("activity %d: %w", activityID, ErrNotFound)
	}
	return nil
}

// MoveActivity swaps the activity with its adjacent neighbor, up or down.
// Moving past either end of the list is a no-op.
func (s *Store) MoveActivity(userID string, activityID int64, up bool) error {
	activities, err := s.ListActivities(userID)
	if err != nil {
		return err
	}
	idx := -1
	for i, a := range activities {
		if a.ID == activityID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("activity %d: %w", activityID, ErrNotFound)
	}
	other := idx + 1
	if up {
		other = idx - 1
	}
	if other < 0 || other >= len(activities) {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin move tx: %w", err)
	}
	a, b := activities[idx], activities[other]
	if _, err := tx.Exec(`UPDATE activities SET order_index = ? WHERE id = ?`, b.OrderIndex, a.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("move activity %d: %w", a.ID, err)
	}
	if _, err := tx.Exec(`UPDATE activities SET order_index = ? WHERE id = ?`, a.OrderIndex, b.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("move activity %d: %w", b.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit move tx: %w", err)
	}
	return nil
}

// ToggleCompletion flips the (activity, date) membership fact: marking an
// unmarked day inserts it, marking a marked day removes it. Toggling twice
// round-trips. Returns true when the day ends up completed.
func (s *Store) ToggleCompletion(userID string, activityID int64, dateKey string) (bool, error) {
	if activityID <= 0 {
		return false, fmt.Errorf("activity id must be > 0")
	}
	if _, err := dates.ParseKey(dateKey); err != nil {
		return false, err
	}

	res, err := s.db.Exec(`DELETE FROM completions WHERE activity_id = ? AND user_id = ? AND date = ?`, activityID, userID, dateKey)
	if err != nil {
		return false, fmt.Errorf("toggle completion: %w", classify(err))
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read rows affected for completion toggle: %w", err)
	}
	if removed > 0 {
		return false, nil
	}

	if _, err := s.db.Exec(`
INSERT INTO completions(activity_id, user_id, date) VALUES(?, ?, ?)
`, activityID, userID, dateKey); err != nil {
		return false, fmt.Errorf("insert completion: %w", classify(err))
	}
	return true, nil
}

// ListCompletions returns the user's full completion history.
func (s *Store) ListCompletions(userID string) ([]model.Completion, error) {
	rows, err := s.db.Query(`
SELECT activity_id, user_id, date
FROM completions
WHERE user_id = ?
ORDER BY date ASC, activity_id ASC
`, userID)
	if err != nil {
		if err = classify(err); s.degradeToEmpty("list completions", err) {
			return []model.Completion{}, nil
		}
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

// CompletionsInRange returns completions whose date falls in [from, to],
// both inclusive day keys.
func (s *Store) CompletionsInRange(userID, fromKey, toKey string) ([]model.Completion, error) {
	rows, err := s.db.Query(`
SELECT activity_id, user_id, date
FROM completions
WHERE user_id = ? AND date >= ? AND date <= ?
ORDER BY date ASC, activity_id ASC
`, userID, fromKey, toKey)
	if err != nil {
		if err = classify(err); s.degradeToEmpty("completions in range", err) {
			return []model.Completion{}, nil
		}
		return nil, fmt.Errorf("completions in range: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func scanCompletions(rows *sql.Rows) ([]model.Completion, error) {
	completions := make([]model.Completion, 0)
	for rows.Next() {
		var c model.Completion
		if err := rows.Scan(&c.ActivityID, &c.UserID, &c.Date); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completions: %w", err)
	}
	return completions, nil
}
