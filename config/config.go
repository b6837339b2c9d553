package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the server configuration. Values come from the environment,
// optionally seeded from a .env file; command-line flags override them.
type Config struct {
	Port           int
	DBPath         string
	LogLevel       logrus.Level
	HolidayRegion  string
	CloseEnabled   bool
	CloseInterval  time.Duration
	AllowedOrigins []string
}

// Load reads the .env file at path (if it exists) and then the environment.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	level, err := logrus.ParseLevel(getEnv("WORKTIME_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           getEnvAsInt("WORKTIME_PORT", 8080),
		DBPath:         getEnv("WORKTIME_DB_PATH", "worktime.db"),
		LogLevel:       level,
		HolidayRegion:  strings.ToUpper(getEnv("WORKTIME_HOLIDAY_REGION", "")),
		CloseEnabled:   getEnvAsBool("WORKTIME_CLOSE_ENABLED", true),
		CloseInterval:  getEnvAsDuration("WORKTIME_CLOSE_INTERVAL", time.Hour),
		AllowedOrigins: getEnvAsList("WORKTIME_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if val, err := time.ParseDuration(valStr); err == nil && val > 0 {
		return val
	}

	return defaultVal
}

func getEnvAsList(name string, defaultVal []string) []string {
	valStr := strings.TrimSpace(getEnv(name, ""))
	if valStr == "" {
		return defaultVal
	}

	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
