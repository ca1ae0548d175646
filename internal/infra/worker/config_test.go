package worker

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CronSchedule != "* * * * *" {
		t.Errorf("CronSchedule = %q, want every minute", cfg.CronSchedule)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.PublishTimeout != 30*time.Second {
		t.Errorf("PublishTimeout = %v, want 30s", cfg.PublishTimeout)
	}
	if cfg.HealthPort != 9091 {
		t.Errorf("HealthPort = %d, want 9091", cfg.HealthPort)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestWorkerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WorkerConfig)
		wantErr string
	}{
		{name: "descriptor schedule", mutate: func(c *WorkerConfig) { c.CronSchedule = "@every 30s" }},
		{name: "bad schedule", mutate: func(c *WorkerConfig) { c.CronSchedule = "often" }, wantErr: "cron schedule"},
		{name: "bad timezone", mutate: func(c *WorkerConfig) { c.Timezone = "Nowhere/City" }, wantErr: "timezone"},
		{name: "timeout too short", mutate: func(c *WorkerConfig) { c.PublishTimeout = 10 * time.Millisecond }, wantErr: "publish timeout"},
		{name: "port below range", mutate: func(c *WorkerConfig) { c.HealthPort = 80 }, wantErr: "health port"},
		{name: "port upper bound", mutate: func(c *WorkerConfig) { c.HealthPort = 65535 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestWorkerConfig_Validate_ReportsAllFields(t *testing.T) {
	cfg := WorkerConfig{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("zero config must not validate")
	}
	for _, field := range []string{"cron schedule", "timezone", "publish timeout", "health port"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestWorkerConfig_Location(t *testing.T) {
	cfg := WorkerConfig{Timezone: "Asia/Tokyo"}
	if got := cfg.Location().String(); got != "Asia/Tokyo" {
		t.Errorf("Location = %s", got)
	}
	cfg.Timezone = "garbage"
	if cfg.Location() != time.UTC {
		t.Error("invalid zone should resolve to UTC")
	}
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func TestLoadConfigFromEnv_Valid(t *testing.T) {
	t.Setenv("PUBLISH_CRON_SCHEDULE", "*/5 * * * *")
	t.Setenv("WORKER_TIMEZONE", "Europe/Berlin")
	t.Setenv("PUBLISH_TIMEOUT", "1m")
	t.Setenv("WORKER_HEALTH_PORT", "9100")

	logger, buf := newTestLogger()
	metrics := NewWorkerMetrics(prometheus.NewRegistry())
	cfg := LoadConfigFromEnv(logger, metrics)

	want := WorkerConfig{CronSchedule: "*/5 * * * *", Timezone: "Europe/Berlin", PublishTimeout: time.Minute, HealthPort: 9100}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}
	if strings.Contains(buf.String(), "fallback applied") {
		t.Errorf("unexpected fallback warning: %s", buf.String())
	}
	if got := testutil.ToFloat64(metrics.ConfigFallbackActive); got != 0 {
		t.Errorf("fallback gauge = %v, want 0", got)
	}
}

func TestLoadConfigFromEnv_Unset(t *testing.T) {
	for _, key := range []string{"PUBLISH_CRON_SCHEDULE", "WORKER_TIMEZONE", "PUBLISH_TIMEOUT", "WORKER_HEALTH_PORT"} {
		t.Setenv(key, "")
	}
	logger, _ := newTestLogger()
	cfg := LoadConfigFromEnv(logger, NewWorkerMetrics(prometheus.NewRegistry()))
	if cfg != DefaultConfig() {
		t.Fatalf("config = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PUBLISH_CRON_SCHEDULE", "not a cron")
	t.Setenv("WORKER_TIMEZONE", "Mars/Base")
	t.Setenv("PUBLISH_TIMEOUT", "1h")
	t.Setenv("WORKER_HEALTH_PORT", "22")

	logger, buf := newTestLogger()
	metrics := NewWorkerMetrics(prometheus.NewRegistry())
	cfg := LoadConfigFromEnv(logger, metrics)

	if cfg != DefaultConfig() {
		t.Fatalf("config = %+v, want defaults", cfg)
	}
	for _, field := range []string{"cron_schedule", "timezone", "publish_timeout", "health_port"} {
		if got := testutil.ToFloat64(metrics.ConfigFallbacksTotal.WithLabelValues(field)); got != 1 {
			t.Errorf("fallbacks{%s} = %v, want 1", field, got)
		}
		if !strings.Contains(buf.String(), `"field":"`+field+`"`) {
			t.Errorf("no warning logged for %s", field)
		}
	}
	if got := testutil.ToFloat64(metrics.ConfigFallbackActive); got != 1 {
		t.Errorf("fallback gauge = %v, want 1", got)
	}
}

func TestLoadConfigFromEnv_PartiallyValid(t *testing.T) {
	t.Setenv("PUBLISH_CRON_SCHEDULE", "@hourly")
	t.Setenv("WORKER_TIMEZONE", "")
	t.Setenv("PUBLISH_TIMEOUT", "fast")
	t.Setenv("WORKER_HEALTH_PORT", "")

	logger, _ := newTestLogger()
	metrics := NewWorkerMetrics(prometheus.NewRegistry())
	cfg := LoadConfigFromEnv(logger, metrics)

	if cfg.CronSchedule != "@hourly" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.PublishTimeout != 30*time.Second {
		t.Errorf("PublishTimeout = %v, want default", cfg.PublishTimeout)
	}
	if got := testutil.CollectAndCount(metrics.ConfigFallbacksTotal); got != 1 {
		t.Errorf("fallback series = %d, want 1", got)
	}
}
