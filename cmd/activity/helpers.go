package activity

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/app"
	"github.com/Marakke/activity-app/internal/config"
	"github.com/Marakke/activity-app/internal/dates"
	"github.com/Marakke/activity-app/internal/db"
	"github.com/Marakke/activity-app/internal/store"
)

// withStore resolves config, opens the database, applies migrations, and
// hands the command a ready store. Flags override environment values.
func withStore(run func(s *store.Store, cfg config.Config, log *zap.Logger) error) error {
	cfg := config.Load()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if userFlag != "" {
		cfg.UserID = userFlag
	}
	if cfg.DBPath == "" {
		path, err := app.DefaultDBPath()
		if err != nil {
			return err
		}
		cfg.DBPath = path
	}

	log, err := config.NewLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := app.EnsureDBDir(cfg.DBPath); err != nil {
		return err
	}
	sqldb, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(store.New(sqldb, log), cfg, log)
}

// parseDateOrNow reads an optional YYYY-MM-DD flag, defaulting to now.
func parseDateOrNow(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Now(), nil
	}
	return dates.ParseKey(value)
}

// resolveDateRange turns optional YYYY-MM-DD bounds into a [from, to)
// window. Defaults cover the last defaultDays days including today; an
// explicit --to is inclusive of its whole day.
func resolveDateRange(fromStr, toStr string, defaultDays int) (time.Time, time.Time, error) {
	now := time.Now()
	from := dates.StartOfDay(now).AddDate(0, 0, 1-defaultDays)
	to := dates.StartOfDay(now).AddDate(0, 0, 1)
	if fromStr != "" {
		parsed, err := dates.ParseKey(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := dates.ParseKey(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from must be <= --to")
	}
	return from, to, nil
}

// parseDateTimeOrNow combines optional date and free-form time input into
// a local instant. Time alone applies to today; neither means now.
func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}

	day := time.Now()
	if date != "" {
		parsed, err := dates.ParseKey(date)
		if err != nil {
			return time.Time{}, err
		}
		day = parsed
	}
	if timeStr == "" {
		return dates.StartOfDay(day), nil
	}

	clock := dates.NormalizeTimeOfDay(timeStr)
	t, err := time.ParseInLocation("2006-01-02 15:04", dates.Key(day)+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
