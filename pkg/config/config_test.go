package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("AF_STRING", "value")
	t.Setenv("AF_INT", "42")
	t.Setenv("AF_BAD_INT", "4.2")
	t.Setenv("AF_BOOL", "true")
	t.Setenv("AF_BAD_BOOL", "yes")
	t.Setenv("AF_DURATION", "1m30s")
	t.Setenv("AF_LIST", " a, ,b ,")
	t.Setenv("AF_EMPTY_LIST", " , ")

	assert.Equal(t, "value", GetEnvString("AF_STRING", "d"))
	assert.Equal(t, "d", GetEnvString("AF_UNSET", "d"))
	assert.Equal(t, 42, GetEnvInt("AF_INT", 1))
	assert.Equal(t, 1, GetEnvInt("AF_BAD_INT", 1))
	assert.True(t, GetEnvBool("AF_BOOL", false))
	assert.True(t, GetEnvBool("AF_BAD_BOOL", true))
	assert.Equal(t, 90*time.Second, GetEnvDuration("AF_DURATION", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("AF_UNSET", time.Second))
	assert.Equal(t, []string{"a", "b"}, GetEnvStringList("AF_LIST", nil))
	assert.Equal(t, []string{"x"}, GetEnvStringList("AF_EMPTY_LIST", []string{"x"}))
}

func TestLoadEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		want         time.Duration
		wantFallback bool
	}{
		{name: "unset", value: "", want: time.Minute},
		{name: "valid", value: "30s", want: 30 * time.Second},
		{name: "unparseable", value: "soon", want: time.Minute, wantFallback: true},
		{name: "fails validation", value: "-5s", want: time.Minute, wantFallback: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AF_TIMEOUT", tt.value)
			got := LoadEnvDuration("AF_TIMEOUT", time.Minute, ValidatePositiveDuration)

			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
			if tt.wantFallback {
				assert.Contains(t, got.Warning, "AF_TIMEOUT")
			} else {
				assert.Empty(t, got.Warning)
			}
		})
	}
}

func TestLoadEnvIntAndString(t *testing.T) {
	t.Setenv("AF_PORT", "80")
	port := LoadEnvInt("AF_PORT", 9091, func(v int) error { return ValidateIntRange(v, 1024, 65535) })
	assert.Equal(t, 9091, port.Value)
	assert.True(t, port.FallbackApplied)

	t.Setenv("AF_CRON", "@every 1m")
	cron := LoadEnvString("AF_CRON", "* * * * *", ValidateCronSchedule)
	assert.Equal(t, "@every 1m", cron.Value)
	assert.False(t, cron.FallbackApplied)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("*/5 * * * *"))
	assert.Error(t, ValidateCronSchedule(""))
	assert.Error(t, ValidateCronSchedule("every minute"))

	assert.NoError(t, ValidateTimezone("Europe/Berlin"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Mars/Olympus"))

	assert.NoError(t, ValidateIntRange(5, 1, 5))
	assert.Error(t, ValidateIntRange(6, 1, 5))
	assert.Error(t, ValidateIntRange(1, 5, 1))

	assert.NoError(t, ValidateDurationRange(time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, ValidatePositiveDuration(0))
}
