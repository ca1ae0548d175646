package announcement

import (
	"errors"
	"testing"
	"time"

	"announce-feed/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in      string
		want    Intent
		wantErr bool
	}{
		{in: "", want: IntentSaveDraft},
		{in: "save-draft", want: IntentSaveDraft},
		{in: "publish-now", want: IntentPublishNow},
		{in: " schedule ", want: IntentSchedule},
		{in: "publish", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIntent(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduleRequest_Resolve(t *testing.T) {
	at, err := ScheduleRequest{Date: "2026-07-01", Time: "09:30", Timezone: "Asia/Tokyo"}.Resolve("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 30, 0, 0, time.UTC), at)
	assert.Equal(t, time.UTC, at.Location())
}

func TestScheduleRequest_Resolve_FallbackZone(t *testing.T) {
	at, err := ScheduleRequest{Date: "2026-07-01", Time: "09:30"}.Resolve("Europe/Paris")
	require.NoError(t, err)
	// CEST is UTC+2 in July
	assert.Equal(t, time.Date(2026, 7, 1, 7, 30, 0, 0, time.UTC), at)
}

func TestScheduleRequest_Resolve_CollectsErrors(t *testing.T) {
	_, err := ScheduleRequest{Date: "07/01/2026", Time: "9.30pm", Timezone: "Moon/Base"}.Resolve("UTC")

	var ve entity.ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "scheduledDate")
	assert.Contains(t, ve, "scheduledTime")
	assert.Contains(t, ve, "timezone")
}

func TestScheduleRequest_Resolve_Missing(t *testing.T) {
	_, err := ScheduleRequest{}.Resolve("UTC")

	var ve entity.ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "scheduled date is required", ve["scheduledDate"])
	assert.Equal(t, "scheduled time is required", ve["scheduledTime"])
}

func TestCheckLead(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Error(t, checkLead(now.Add(4*time.Minute), now))
	assert.Error(t, checkLead(now.Add(-time.Hour), now))
	assert.NoError(t, checkLead(now.Add(MinScheduleLead), now))
	assert.NoError(t, checkLead(now.Add(24*time.Hour), now))
}
