package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"announce-feed/internal/domain/entity"
	"announce-feed/internal/observability/metrics"
	"announce-feed/internal/repository"
)

const announcementColumns = `id, owner_id, title, content, type, priority, status, timezone,
       image_url, link_url, link_text, scheduled_at, published_at, created_at, updated_at`

type AnnouncementRepo struct{ db *sql.DB }

func NewAnnouncementRepo(db *sql.DB) repository.AnnouncementRepository {
	return &AnnouncementRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnouncement(s rowScanner) (*entity.Announcement, error) {
	var a entity.Announcement
	var scheduledAt, publishedAt sql.NullTime
	if err := s.Scan(
		&a.ID, &a.OwnerID, &a.Title, &a.Content, &a.Type, &a.Priority, &a.Status, &a.Timezone,
		&a.ImageURL, &a.LinkURL, &a.LinkText, &scheduledAt, &publishedAt, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.ScheduledAt = nullTimePtr(scheduledAt)
	a.PublishedAt = nullTimePtr(publishedAt)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func (repo *AnnouncementRepo) Get(ctx context.Context, id string) (*entity.Announcement, error) {
	defer observe("get_announcement", time.Now())
	const query = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE id = $1
LIMIT 1`
	a, err := scanAnnouncement(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return a, nil
}

func (repo *AnnouncementRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Announcement, error) {
	defer observe("list_announcements", time.Now())
	const query = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE owner_id = $1
ORDER BY created_at DESC`
	return repo.list(ctx, "ListByOwner", query, ownerID)
}

func (repo *AnnouncementRepo) ListPublishedByOwner(ctx context.Context, ownerID string) ([]*entity.Announcement, error) {
	defer observe("list_published", time.Now())
	const query = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE owner_id = $1
AND status = 'published'
ORDER BY published_at DESC`
	return repo.list(ctx, "ListPublishedByOwner", query, ownerID)
}

func (repo *AnnouncementRepo) ListDueScheduled(ctx context.Context, now time.Time) ([]*entity.Announcement, error) {
	defer observe("list_due_scheduled", time.Now())
	const query = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE status = 'scheduled'
AND scheduled_at <= $1
ORDER BY scheduled_at ASC`
	return repo.list(ctx, "ListDueScheduled", query, now.UTC())
}

func (repo *AnnouncementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Announcement, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*entity.Announcement, 0, 20)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return out, nil
}

func (repo *AnnouncementRepo) Create(ctx context.Context, a *entity.Announcement) error {
	defer observe("insert_announcement", time.Now())
	const query = `
INSERT INTO announcements (` + announcementColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := repo.db.ExecContext(ctx, query,
		a.ID, a.OwnerID, a.Title, a.Content,
		string(a.Type), string(a.Priority), string(a.Status), a.Timezone,
		a.ImageURL, a.LinkURL, a.LinkText,
		a.ScheduledAt, a.PublishedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *AnnouncementRepo) Update(ctx context.Context, a *entity.Announcement, from entity.Status) error {
	defer observe("update_announcement", time.Now())
	const query = `
UPDATE announcements SET
       title        = $1,
       content      = $2,
       type         = $3,
       priority     = $4,
       status       = $5,
       timezone     = $6,
       image_url    = $7,
       link_url     = $8,
       link_text    = $9,
       scheduled_at = $10,
       published_at = COALESCE(published_at, $11),
       updated_at   = $12
WHERE id = $13
AND status = $14`
	res, err := repo.db.ExecContext(ctx, query,
		a.Title, a.Content, string(a.Type), string(a.Priority), string(a.Status), a.Timezone,
		a.ImageURL, a.LinkURL, a.LinkText,
		a.ScheduledAt, a.PublishedAt, a.UpdatedAt, a.ID, string(from),
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", repo.missingOrStale(ctx, a.ID))
	}
	return nil
}

// missingOrStale explains an update that matched no row.
func (repo *AnnouncementRepo) missingOrStale(ctx context.Context, id string) error {
	var one int
	err := repo.db.QueryRowContext(ctx, `SELECT 1 FROM announcements WHERE id = $1`, id).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return entity.ErrNotFound
	case err != nil:
		return err
	}
	return entity.ErrConflict
}

func (repo *AnnouncementRepo) Delete(ctx context.Context, id string) error {
	defer observe("delete_announcement", time.Now())
	const query = `DELETE FROM announcements WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
