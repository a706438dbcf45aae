package config

import (
	"os"
	"strconv"
	"time"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string

	StoreDriver string
	DatabaseURL string

	// RedisURL is optional. When empty the analytics cache and the
	// cross-process reminder lease are disabled.
	RedisURL string

	CORSOrigins string

	Timezone string

	ReminderSchedule         string
	ReminderDedupeWithinPass bool
	ReminderLockTTL          time.Duration

	AnalyticsCacheTTL time.Duration

	SeedOnStart bool
	SeedFile    string

	LogLevel string
	LogFile  string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		StoreDriver: getEnv("STORE_DRIVER", StoreMemory),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		Timezone: getEnv("TIMEZONE", "Local"),

		ReminderSchedule:         getEnv("REMINDER_SCHEDULE", ""),
		ReminderDedupeWithinPass: getBoolEnv("REMINDER_DEDUPE_WITHIN_PASS", true),
		ReminderLockTTL:          getDurationEnv("REMINDER_LOCK_TTL", 2*time.Minute),

		AnalyticsCacheTTL: getDurationEnv("ANALYTICS_CACHE_TTL", 30*time.Second),

		SeedOnStart: getBoolEnv("SEED_ON_START", true),
		SeedFile:    getEnv("SEED_FILE", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// Location resolves Timezone, falling back to the process local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
