package entity

import "fmt"

// Status is the lifecycle stage of an announcement.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// transitions lists every status change an owner may request.
// Nothing transitions back into draft, and archived is terminal.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPublished, StatusScheduled},
	StatusScheduled: {StatusPublished},
	StatusPublished: {StatusArchived},
	StatusArchived:  nil,
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return st, nil
}

// Valid reports whether s is one of the four lifecycle states.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the transition table allows s -> next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
