package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateCronSchedule accepts five-field expressions and descriptors such as "@every 1m".
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("cron schedule cannot be empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// ValidateTimezone requires an IANA zone name known to the runtime.
func ValidateTimezone(tz string) error {
	if tz == "" {
		return fmt.Errorf("timezone cannot be empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return nil
}

// ValidateIntRange checks min <= value <= max.
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}
	if value < min || value > max {
		return fmt.Errorf("value %d out of range [%d, %d]", value, min, max)
	}
	return nil
}

// ValidatePositiveDuration rejects zero and negative durations.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateDurationRange checks min <= d <= max.
func ValidateDurationRange(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if d < min || d > max {
		return fmt.Errorf("duration %v out of range [%v, %v]", d, min, max)
	}
	return nil
}
