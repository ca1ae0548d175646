package announcement

import (
	"context"
	"fmt"
	"time"

	"announce-feed/internal/domain/entity"
)

// Stats summarizes an owner's announcements.
// ThisMonth counts announcements created in the current calendar month
// of the service's default zone.
type Stats struct {
	Total     int
	Published int
	Scheduled int
	Drafts    int
	Archived  int
	ThisMonth int
	ByType    map[entity.Type]int
}

// Stats computes the owner's analytics from the stored announcements.
func (s *Service) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	list, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	loc, err := time.LoadLocation(s.defaultTimezone())
	if err != nil {
		loc = time.UTC
	}
	return computeStats(list, s.now().In(loc)), nil
}

func computeStats(list []*entity.Announcement, now time.Time) *Stats {
	st := &Stats{
		Total:  len(list),
		ByType: map[entity.Type]int{},
	}
	year, month, _ := now.Date()

	for _, a := range list {
		switch a.Status {
		case entity.StatusPublished:
			st.Published++
		case entity.StatusScheduled:
			st.Scheduled++
		case entity.StatusDraft:
			st.Drafts++
		case entity.StatusArchived:
			st.Archived++
		}
		st.ByType[a.Type]++

		cy, cm, _ := a.CreatedAt.In(now.Location()).Date()
		if cy == year && cm == month {
			st.ThisMonth++
		}
	}
	return st
}
