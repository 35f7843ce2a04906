package model

import "time"

// Activity is a user-defined daily habit shown on the weekly grid.
// OrderIndex is a user-controlled total order within one user's list.
type Activity struct {
	ID         int64
	UserID     string
	Label      string
	Icon       string
	OrderIndex int
	CreatedAt  time.Time
}

// Completion records that an activity was done on a calendar day.
// The (activity, date) pair is a set-membership fact: marking a day twice
// is the same as marking it once, and toggling twice is a no-op.
type Completion struct {
	ActivityID int64
	UserID     string
	Date       string // YYYY-MM-DD, local calendar day
}

// Meal is one logged meal with whole-unit macro values.
type Meal struct {
	ID       string
	UserID   string
	Name     string
	Calories int
	ProteinG int
	CarbsG   int
	FatsG    int
	EatenAt  time.Time
	Notes    string
}

// DailyTotals is the macro sum over all meals eaten on one local calendar
// day. It is derived data: whenever raw meals for the day are in memory,
// the freshly summed value is authoritative over any stored aggregate.
type DailyTotals struct {
	Day      string // YYYY-MM-DD
	Calories int
	Protein  int
	Carbs    int
	Fats     int
}

// UserPreferences carries per-user targets and the reminder time.
type UserPreferences struct {
	UserID         string
	CalorieTarget  int
	ProteinTargetG int
	ReminderTime   string // HH:MM
	UpdatedAt      time.Time
}
