// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath          string
	LogPath               string
	LogLevel              string
	MaxDailyMl            int
	ReminderThreshold     time.Duration
	ReminderCheckInterval time.Duration
	ReminderDelay         time.Duration
	RemindersEnabled      bool
	Location              *time.Location
	QuickAmounts          []int
}

// Default values
const (
	defaultMaxDailyMl            = 7000
	defaultReminderThreshold     = time.Hour
	defaultReminderCheckInterval = time.Minute
	defaultReminderDelay         = 3 * time.Second
	defaultLogLevel              = "info"
	appDirName                   = "hydration-tui"
)

var defaultQuickAmounts = []int{250, 330, 500, 750}

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DatabasePath:          getEnvString("DATABASE_PATH", getDefaultPath("hydration.db")),
		LogPath:               getEnvString("LOG_PATH", getDefaultPath("hydration.log")),
		LogLevel:              getEnvString("LOG_LEVEL", defaultLogLevel),
		MaxDailyMl:            getEnvInt("MAX_DAILY_ML", defaultMaxDailyMl),
		ReminderThreshold:     getEnvDuration("REMINDER_THRESHOLD", defaultReminderThreshold),
		ReminderCheckInterval: getEnvDuration("REMINDER_CHECK_INTERVAL", defaultReminderCheckInterval),
		ReminderDelay:         getEnvDuration("REMINDER_DELAY", defaultReminderDelay),
		RemindersEnabled:      getEnvBool("REMINDERS_ENABLED", true),
		QuickAmounts:          getEnvIntList("QUICK_AMOUNTS", defaultQuickAmounts),
	}

	loc, err := loadLocation(os.Getenv("TIMEZONE"))
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	if cfg.MaxDailyMl <= 0 {
		return nil, fmt.Errorf("MAX_DAILY_ML must be positive, got %d", cfg.MaxDailyMl)
	}
	if cfg.ReminderThreshold <= 0 {
		return nil, fmt.Errorf("REMINDER_THRESHOLD must be positive, got %s", cfg.ReminderThreshold)
	}
	if cfg.ReminderCheckInterval <= 0 {
		cfg.ReminderCheckInterval = defaultReminderCheckInterval
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	// Ensure log directory exists
	if err := ensureDir(filepath.Dir(cfg.LogPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MaxDailyLiters returns the ceiling in liters for user-facing messages.
func (c *Config) MaxDailyLiters() float64 {
	return float64(c.MaxDailyMl) / 1000
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, ".hydration", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultPath returns name inside the application config directory.
func getDefaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".config", appDirName, name)
}

// loadLocation resolves an IANA zone name. Empty means the local zone.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the forms understood by strconv.ParseBool plus yes/no and on/off.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvIntList retrieves a comma separated list of positive integers.
// Any malformed or non-positive entry falls back to the default list.
func getEnvIntList(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return append([]int(nil), defaultValue...)
	}

	var out []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return append([]int(nil), defaultValue...)
		}
		out = append(out, n)
	}
	return out
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
