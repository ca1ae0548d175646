package announcement

import (
	"fmt"
	"strings"
	"time"

	"announce-feed/internal/domain/entity"
)

// MinScheduleLead is the minimum distance between the scheduling instant and scheduledAt.
const MinScheduleLead = 5 * time.Minute

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Intent is what the author asked for when submitting the form.
type Intent string

const (
	IntentSaveDraft  Intent = "save-draft"
	IntentPublishNow Intent = "publish-now"
	IntentSchedule   Intent = "schedule"
)

// ParseIntent maps a raw intent to an Intent. Empty means save-draft.
func ParseIntent(s string) (Intent, error) {
	switch Intent(strings.TrimSpace(s)) {
	case "", IntentSaveDraft:
		return IntentSaveDraft, nil
	case IntentPublishNow:
		return IntentPublishNow, nil
	case IntentSchedule:
		return IntentSchedule, nil
	}
	return "", &entity.ValidationError{Field: "intent", Message: "must be one of save-draft, publish-now, schedule"}
}

// ScheduleRequest is a wall-clock publication time in an IANA zone.
type ScheduleRequest struct {
	Date     string // YYYY-MM-DD
	Time     string // HH:MM, 24h
	Timezone string // optional; falls back to the announcement's zone
}

// Resolve converts the wall-clock request into an instant in UTC.
// Every malformed part is reported, keyed by scheduledDate, scheduledTime or timezone.
func (r ScheduleRequest) Resolve(fallbackTZ string) (time.Time, error) {
	errs := entity.ValidationErrors{}

	date := strings.TrimSpace(r.Date)
	clock := strings.TrimSpace(r.Time)
	if date == "" {
		errs.Add("scheduledDate", "scheduled date is required")
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		errs.Add("scheduledDate", "must be formatted as YYYY-MM-DD")
	}
	if clock == "" {
		errs.Add("scheduledTime", "scheduled time is required")
	} else if _, err := time.Parse(timeLayout, clock); err != nil {
		errs.Add("scheduledTime", "must be formatted as HH:MM")
	}

	tz := strings.TrimSpace(r.Timezone)
	if tz == "" {
		tz = fallbackTZ
	}
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		errs.Add("timezone", fmt.Sprintf("invalid timezone %q", tz))
	}

	if err := errs.Err(); err != nil {
		return time.Time{}, err
	}

	at, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, &entity.ValidationError{Field: "scheduledAt", Message: "invalid date and time"}
	}
	return at.UTC(), nil
}

// checkLead enforces scheduledAt >= now + MinScheduleLead. Equality is accepted.
func checkLead(at, now time.Time) error {
	if at.Before(now.Add(MinScheduleLead)) {
		return &entity.ValidationError{
			Field:   "scheduledAt",
			Message: "scheduled time must be at least 5 minutes in the future",
		}
	}
	return nil
}
