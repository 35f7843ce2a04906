package activity

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--db", dbPath}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.db")
	for i := 0; i < 2; i++ {
		runCommand(t, path, "init")
	}
}

func TestHabitAddListMark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.db")

	runCommand(t, path, "habit", "add", "Exercise", "--icon", "🏃")
	out := runCommand(t, path, "habit", "list")
	if !strings.Contains(out, "Exercise") {
		t.Fatalf("habit list missing new habit: %q", out)
	}

	runCommand(t, path, "mark", "Exercise", "--date", "2026-02-10")
	out = runCommand(t, path, "week", "--date", "2026-02-10")
	if !strings.Contains(out, "Exercise") {
		t.Fatalf("week grid missing habit: %q", out)
	}
}

func TestMealAddAndTrend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.db")

	runCommand(t, path, "meal", "add", "Chicken salad",
		"--calories", "650", "--protein", "42", "--carbs", "20", "--fats", "30")
	out := runCommand(t, path, "meal", "list")
	if !strings.Contains(out, "Chicken salad") {
		t.Fatalf("meal list missing logged meal: %q", out)
	}

	out = runCommand(t, path, "trend")
	if !strings.Contains(out, "650") {
		t.Fatalf("trend missing today's calories: %q", out)
	}
}

func TestMealEditTimeKeepsOriginalDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.db")

	out := runCommand(t, path, "meal", "add", "Pasta",
		"--calories", "700", "--date", "2026-02-10", "--time", "12:00")
	start := strings.Index(out, "(id ")
	if start < 0 {
		t.Fatalf("meal add output missing id: %q", out)
	}
	id := strings.TrimSuffix(strings.TrimSpace(out[start+len("(id "):]), ")")

	// Only the clock changes; the meal must stay on its logged day.
	runCommand(t, path, "meal", "edit", id, "--time", "19:00")
	out = runCommand(t, path, "meal", "list", "--from", "2026-02-10", "--to", "2026-02-10")
	if !strings.Contains(out, "2026-02-10 19:00") {
		t.Fatalf("expected meal at 2026-02-10 19:00, got %q", out)
	}
}

func TestStatsOnEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.db")
	out := runCommand(t, path, "stats")
	if !strings.Contains(out, "n/a") {
		t.Fatalf("expected n/a week change on empty data: %q", out)
	}
}

func TestSummaryFallsBackWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "activity.db")
	out := runCommand(t, path, "summary")
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected a fallback summary, got empty output")
	}
}
