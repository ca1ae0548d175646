// Package config reads process configuration from environment variables.
//
// The GetEnv* helpers never fail: an unset or malformed value yields the
// default, and malformed values are logged. The LoadEnv* helpers additionally
// validate the value and report the fallback so callers can count it.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the variable or defaultValue when unset or empty.
func GetEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns the variable parsed as a base-10 integer.
func GetEnvInt(key string, defaultValue int) int {
	return getEnv(key, defaultValue, strconv.Atoi)
}

// GetEnvBool accepts the forms understood by strconv.ParseBool.
func GetEnvBool(key string, defaultValue bool) bool {
	return getEnv(key, defaultValue, strconv.ParseBool)
}

// GetEnvDuration accepts time.ParseDuration syntax such as "30s" or "1h30m".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnv(key, defaultValue, time.ParseDuration)
}

// GetEnvStringList splits a comma separated variable, trimming blanks and
// dropping empty entries.
//
//	// CORS_ALLOWED_ORIGINS="https://a.example.com, https://b.example.com"
//	origins := GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

func getEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := parse(valueStr)
	if err != nil {
		slog.Warn("invalid value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Any("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}
