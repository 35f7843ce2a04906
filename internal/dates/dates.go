// Package dates holds the calendar math the rest of the app depends on.
// Everything works on local calendar fields: day keys, week windows, and
// ISO week numbers must agree with what the user sees on their own wall
// calendar, not with UTC.
package dates

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const keyLayout = "2006-01-02"

// Key formats t's local year, month, and day as a canonical YYYY-MM-DD key.
func Key(t time.Time) string {
	return t.Format(keyLayout)
}

// ParseKey returns the local-midnight instant for a YYYY-MM-DD key.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(keyLayout, strings.TrimSpace(key), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", key)
	}
	return t, nil
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// MondayOf returns local midnight of the Monday on or before t. Sunday
// belongs to the week that started six days earlier, per ISO 8601.
func MondayOf(t time.Time) time.Time {
	day := StartOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// SundayOf returns the last instant of the Sunday closing t's week.
func SundayOf(t time.Time) time.Time {
	return MondayOf(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// ISOWeek returns the ISO-8601 week number of t's local calendar day.
func ISOWeek(t time.Time) int {
	_, week := StartOfDay(t).ISOWeek()
	return week
}

// ISOWeekYear returns the ISO week-based year and week number. Near year
// boundaries the week year can differ from the calendar year.
func ISOWeekYear(t time.Time) (year, week int) {
	return StartOfDay(t).ISOWeek()
}

// Window is the Monday-through-Sunday span containing a reference date,
// with boundaries at explicit local instants.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowOf returns the week window containing ref.
func WindowOf(ref time.Time) Window {
	return Window{Start: MondayOf(ref), End: SundayOf(ref)}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the seven local-midnight days of the window, Monday first.
func (w Window) Days() [7]time.Time {
	var out [7]time.Time
	for i := 0; i < 7; i++ {
		out[i] = w.Start.AddDate(0, 0, i)
	}
	return out
}

// Label renders the window for human consumption, e.g. "Feb 9 – Feb 15, 2026".
func (w Window) Label() string {
	start := w.Start
	end := w.Start.AddDate(0, 0, 6)
	if start.Year() != end.Year() {
		return fmt.Sprintf("%s – %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s – %s, %d", start.Format("Jan 2"), end.Format("Jan 2"), end.Year())
}

// NormalizeTimeOfDay parses free-form time input into 24-hour "HH:MM".
// Separated digit groups are read as hour then minute ("18:5" -> "18:05");
// a single run of digits splits by length ("9" -> "09:00", "930" -> "09:30",
// "1842" -> "18:42"). An am/pm marker shifts the hour ("8pm" -> "20:00",
// "12am" -> "00:00"). Hours clamp to [0,23], minutes to [0,59]. Empty or
// digit-free input yields "00:00".
func NormalizeTimeOfDay(text string) string {
	groups := make([]string, 0, 2)
	current := strings.Builder{}
	for _, r := range text {
		if unicode.IsDigit(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			groups = append(groups, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		groups = append(groups, current.String())
	}
	if len(groups) == 0 {
		return "00:00"
	}

	var hour, minute int
	if len(groups) >= 2 {
		hour = atoiDigits(clip(groups[0], 2))
		minute = atoiDigits(clip(groups[1], 2))
	} else {
		digits := clip(groups[0], 4)
		switch len(digits) {
		case 1, 2:
			hour = atoiDigits(digits)
		case 3:
			hour = atoiDigits(digits[:1])
			minute = atoiDigits(digits[1:])
		default:
			hour = atoiDigits(digits[:2])
			minute = atoiDigits(digits[2:])
		}
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "pm"):
		if hour < 12 {
			hour += 12
		}
	case strings.Contains(lower, "am"):
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		hour = 23
	}
	if minute > 59 {
		minute = 59
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func atoiDigits(digits string) int {
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n
}
