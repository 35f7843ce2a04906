// Package app resolves where the tracker keeps its data on this machine.
package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName = "activity-app"
	dbFileName = "activity.db"
)

// DefaultDBPath is used when neither --db nor ACTIVITY_DB names a
// database file.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
