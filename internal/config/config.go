// Package config resolves runtime settings from the environment. A .env
// file in the working directory is loaded best-effort; explicit command
// flags override anything found here.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	DBPath  string
	UserID  string
	AIKey   string
	AIModel string
}

// Load reads the environment, after folding in a local .env file when one
// exists. A missing .env is normal, not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:  os.Getenv("ACTIVITY_DB"),
		UserID:  getEnv("ACTIVITY_USER", "local"),
		AIKey:   os.Getenv("GEMINI_API_KEY"),
		AIModel: os.Getenv("ACTIVITY_AI_MODEL"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// NewLogger builds the app logger: console output on stderr, warn level by
// default so degradations are visible without drowning command output,
// debug when verbose is requested.
func NewLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
