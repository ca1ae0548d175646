package repository

import (
	"context"
	"time"

	"announce-feed/internal/domain/entity"
)

// AnnouncementRepository persists announcements.
// Get returns (nil, nil) when no record matches.
type AnnouncementRepository interface {
	Get(ctx context.Context, id string) (*entity.Announcement, error)
	// ListByOwner returns every announcement of the owner, newest created first.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Announcement, error)
	// ListPublishedByOwner returns the owner's published announcements ordered by published_at DESC.
	ListPublishedByOwner(ctx context.Context, ownerID string) ([]*entity.Announcement, error)
	// ListDueScheduled returns scheduled announcements of all owners whose scheduled_at <= now.
	ListDueScheduled(ctx context.Context, now time.Time) ([]*entity.Announcement, error)
	Create(ctx context.Context, a *entity.Announcement) error
	// Update writes a only while the stored status still equals from.
	// A record that moved on yields entity.ErrConflict, a missing one
	// entity.ErrNotFound. A stored published_at is never overwritten.
	Update(ctx context.Context, a *entity.Announcement, from entity.Status) error
	Delete(ctx context.Context, id string) error
}
