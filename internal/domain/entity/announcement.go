// Package entity defines the core domain entities and validation logic for the application.
// It contains the Announcement entity, its closed enumerations (type, priority, status),
// the status transition table, and the domain-specific errors.
package entity

import "time"

// Type classifies an announcement for display.
type Type string

const (
	TypeFeature Type = "feature"
	TypeUpdate  Type = "update"
	TypeNews    Type = "news"
	TypeBugfix  Type = "bugfix"
)

// Valid reports whether t is one of the known announcement types.
func (t Type) Valid() bool {
	switch t {
	case TypeFeature, TypeUpdate, TypeNews, TypeBugfix:
		return true
	}
	return false
}

// Priority orders announcements by importance.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Announcement represents a single authored update with a publication lifecycle.
// ScheduledAt and PublishedAt are always stored in UTC.
type Announcement struct {
	ID          string
	OwnerID     string
	Title       string
	Content     string
	Type        Type
	Priority    Priority
	Status      Status
	Timezone    string
	ImageURL    string
	LinkURL     string
	LinkText    string
	ScheduledAt *time.Time
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a deep copy of the announcement, including the timestamp pointers.
func (a *Announcement) Clone() *Announcement {
	if a == nil {
		return nil
	}
	out := *a
	out.ScheduledAt = cloneTime(a.ScheduledAt)
	out.PublishedAt = cloneTime(a.PublishedAt)
	return &out
}

// TransitionTo moves the announcement to the next status using the transition table.
// Entering StatusPublished stamps PublishedAt with now unless it is already set;
// an existing PublishedAt is never overwritten.
// A same-status call is a no-op.
func (a *Announcement) TransitionTo(next Status, now time.Time) error {
	if a.Status == next {
		return nil
	}
	if !a.Status.CanTransitionTo(next) {
		return &TransitionError{From: a.Status, To: next}
	}
	a.Status = next
	if next == StatusPublished && a.PublishedAt == nil {
		t := now.UTC()
		a.PublishedAt = &t
	}
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
