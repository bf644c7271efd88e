package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds session settings resolved from a dotenv file and the environment
type Config struct {
	Identity  string
	LogFile   string
	LogLevel  string
	WeekStart time.Weekday
}

// Load reads path (if it exists) into the environment, then builds a Config.
// A missing file is not an error; every setting has a default.
func Load(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	weekStart, err := parseWeekStart(getEnv("TEAMBOARD_WEEK_START", "monday"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Identity:  getEnv("TEAMBOARD_IDENTITY", "u1"),
		LogFile:   getEnv("TEAMBOARD_LOG_FILE", defaultLogFile()),
		LogLevel:  getEnv("TEAMBOARD_LOG_LEVEL", "info"),
		WeekStart: weekStart,
	}, nil
}

func getEnv(env, fallback string) string {
	if value, exists := os.LookupEnv(env); exists {
		return value
	}
	return fallback
}

func parseWeekStart(v string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "monday", "mon", "":
		return time.Monday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	}
	return time.Monday, fmt.Errorf("invalid TEAMBOARD_WEEK_START %q. Use: monday or sunday", v)
}

// defaultLogFile returns ~/.teamboard/teamboard.log, or "" when there is no home directory
func defaultLogFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".teamboard", "teamboard.log")
}
