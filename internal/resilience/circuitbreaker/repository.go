package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"announce-feed/internal/domain/entity"
	"announce-feed/internal/repository"

	"github.com/sony/gobreaker"
)

// Repository decorates an AnnouncementRepository with a circuit breaker.
// Not-found results and caller cancellations do not count as failures.
type Repository struct {
	cb   *Breaker
	next repository.AnnouncementRepository
}

// NewRepository wraps next with a breaker built from StoreConfig.
func NewRepository(next repository.AnnouncementRepository) *Repository {
	return NewRepositoryWithConfig(next, StoreConfig())
}

// NewRepositoryWithConfig wraps next with a breaker built from cfg.
// cfg.IsSuccessful is replaced by the record-store classification.
func NewRepositoryWithConfig(next repository.AnnouncementRepository, cfg Config) *Repository {
	cfg.IsSuccessful = isStoreSuccess
	return &Repository{cb: New(cfg), next: next}
}

func isStoreSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, entity.ErrNotFound) ||
		errors.Is(err, entity.ErrConflict) ||
		errors.Is(err, context.Canceled)
}

var _ repository.AnnouncementRepository = (*Repository)(nil)

// State returns the current state of the breaker.
func (r *Repository) State() gobreaker.State {
	return r.cb.State()
}

type list = []*entity.Announcement

func (r *Repository) Get(ctx context.Context, id string) (*entity.Announcement, error) {
	return Run(r.cb, func() (*entity.Announcement, error) { return r.next.Get(ctx, id) })
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Announcement, error) {
	return Run(r.cb, func() (list, error) { return r.next.ListByOwner(ctx, ownerID) })
}

func (r *Repository) ListPublishedByOwner(ctx context.Context, ownerID string) ([]*entity.Announcement, error) {
	return Run(r.cb, func() (list, error) { return r.next.ListPublishedByOwner(ctx, ownerID) })
}

func (r *Repository) ListDueScheduled(ctx context.Context, now time.Time) ([]*entity.Announcement, error) {
	return Run(r.cb, func() (list, error) { return r.next.ListDueScheduled(ctx, now) })
}

func (r *Repository) Create(ctx context.Context, a *entity.Announcement) error {
	return r.exec(func() error { return r.next.Create(ctx, a) })
}

func (r *Repository) Update(ctx context.Context, a *entity.Announcement, from entity.Status) error {
	return r.exec(func() error { return r.next.Update(ctx, a, from) })
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.exec(func() error { return r.next.Delete(ctx, id) })
}

func (r *Repository) exec(fn func() error) error {
	_, err := Run(r.cb, func() (struct{}, error) { return struct{}{}, fn() })
	return err
}
