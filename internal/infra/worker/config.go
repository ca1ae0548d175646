package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"announce-feed/pkg/config"
)

// WorkerConfig configures the scheduled-publish worker.
type WorkerConfig struct {
	// CronSchedule accepts five-field cron syntax or descriptors like "@every 1m".
	CronSchedule string

	// Timezone the cron schedule is evaluated in.
	Timezone string

	// PublishTimeout bounds a single PublishDue run.
	PublishTimeout time.Duration

	HealthPort int
}

func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:   "* * * * *",
		Timezone:       "UTC",
		PublishTimeout: 30 * time.Second,
		HealthPort:     9091,
	}
}

func validatePublishTimeout(d time.Duration) error {
	return config.ValidateDurationRange(d, time.Second, 10*time.Minute)
}

func validateHealthPort(p int) error {
	return config.ValidateIntRange(p, 1024, 65535)
}

// Validate reports every invalid field at once.
func (c *WorkerConfig) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validatePublishTimeout(c.PublishTimeout); err != nil {
		errs = append(errs, fmt.Errorf("publish timeout: %w", err))
	}
	if err := validateHealthPort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone, falling back to UTC.
func (c *WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv never fails: each invalid variable falls back to its
// default, is logged as a warning and counted in metrics.
//
// Environment variables:
//   - PUBLISH_CRON_SCHEDULE (default "* * * * *")
//   - WORKER_TIMEZONE (default "UTC")
//   - PUBLISH_TIMEOUT, 1s..10m (default 30s)
//   - WORKER_HEALTH_PORT, 1024..65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) WorkerConfig {
	cfg := DefaultConfig()
	fallback := false

	note := func(field, warning string, applied bool) {
		if !applied {
			return
		}
		fallback = true
		metrics.RecordConfigFallback(field)
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	cron := config.LoadEnvString("PUBLISH_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = cron.Value
	note("cron_schedule", cron.Warning, cron.FallbackApplied)

	tz := config.LoadEnvString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = tz.Value
	note("timezone", tz.Warning, tz.FallbackApplied)

	timeout := config.LoadEnvDuration("PUBLISH_TIMEOUT", cfg.PublishTimeout, validatePublishTimeout)
	cfg.PublishTimeout = timeout.Value
	note("publish_timeout", timeout.Warning, timeout.FallbackApplied)

	port := config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, validateHealthPort)
	cfg.HealthPort = port.Value
	note("health_port", port.Warning, port.FallbackApplied)

	metrics.SetFallbackActive(fallback)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("publish_timeout", cfg.PublishTimeout),
		slog.Int("health_port", cfg.HealthPort),
		slog.Bool("fallback_applied", fallback))
	return cfg
}
