package announcement

import (
	"testing"
	"time"

	"announce-feed/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	list := []*entity.Announcement{
		{Status: entity.StatusPublished, Type: entity.TypeFeature, CreatedAt: now.Add(-24 * time.Hour)},
		{Status: entity.StatusPublished, Type: entity.TypeBugfix, CreatedAt: now.AddDate(0, -1, 0)},
		{Status: entity.StatusScheduled, Type: entity.TypeFeature, CreatedAt: now},
		{Status: entity.StatusDraft, Type: entity.TypeNews, CreatedAt: now.AddDate(-1, 0, 0)},
		{Status: entity.StatusArchived, Type: entity.TypeUpdate, CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	got := computeStats(list, now)
	want := &Stats{
		Total:     5,
		Published: 2,
		Scheduled: 1,
		Drafts:    1,
		Archived:  1,
		ThisMonth: 3,
		ByType: map[entity.Type]int{
			entity.TypeFeature: 2,
			entity.TypeBugfix:  1,
			entity.TypeNews:    1,
			entity.TypeUpdate:  1,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeStats_MonthInZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}
	// 2026-03-31 20:00 UTC is already April 1st in Tokyo
	created := time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, tokyo)

	got := computeStats([]*entity.Announcement{{Status: entity.StatusDraft, Type: entity.TypeNews, CreatedAt: created}}, now)
	if got.ThisMonth != 1 {
		t.Fatalf("ThisMonth = %d, want 1", got.ThisMonth)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	got := computeStats(nil, time.Now())
	if got.Total != 0 || len(got.ByType) != 0 {
		t.Fatalf("unexpected %+v", got)
	}
}
