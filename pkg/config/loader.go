package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadResult is a validated configuration value. When the environment held
// an unusable value, Value is the default and Warning explains why.
type LoadResult[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// LoadEnv parses and validates key. Unset means the default without a warning.
// A parse or validation failure means the default with a warning; it never errors.
func LoadEnv[T any](key string, defaultValue T, parse func(string) (T, error), validate func(T) error) LoadResult[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	value, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(value)
	}
	if err != nil {
		return LoadResult[T]{
			Value:           defaultValue,
			Warning:         fmt.Sprintf("invalid %s=%q: %v, falling back to default '%v'", key, raw, err, defaultValue),
			FallbackApplied: true,
		}
	}
	return LoadResult[T]{Value: value}
}

// LoadEnvString validates a string variable.
func LoadEnvString(key, defaultValue string, validate func(string) error) LoadResult[string] {
	return LoadEnv(key, defaultValue, func(s string) (string, error) { return s, nil }, validate)
}

// LoadEnvInt validates a base-10 integer variable.
func LoadEnvInt(key string, defaultValue int, validate func(int) error) LoadResult[int] {
	return LoadEnv(key, defaultValue, strconv.Atoi, validate)
}

// LoadEnvDuration validates a time.ParseDuration variable.
func LoadEnvDuration(key string, defaultValue time.Duration, validate func(time.Duration) error) LoadResult[time.Duration] {
	return LoadEnv(key, defaultValue, time.ParseDuration, validate)
}
