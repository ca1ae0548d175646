package sqlite

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

// AnnouncementRepo stores announcements in SQLite with times as unix milliseconds.
type AnnouncementRepo struct{ db *sql.DB }

func NewAnnouncementRepo(db *sql.DB) repository.AnnouncementRepository {
	return &AnnouncementRepo{db: db}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*t), Valid: true}
}

func timePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromMillis(v.Int64)
	return &t
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnouncement(s rowScanner) (*entity.Announcement, error) {
	var a entity.Announcement
	var scheduledAt, publishedAt sql.NullInt64
	var createdAt, updatedAt int64
	if err := s.Scan(
		&a.ID, &a.OwnerID, &a.Title, &a.Content, &a.Type, &a.Priority, &a.Status, &a.Timezone,
		&a.ImageURL, &a.LinkURL, &a.LinkText, &scheduledAt, &publishedAt, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	a.ScheduledAt = timePtr(scheduledAt)
	a.PublishedAt = timePtr(publishedAt)
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return &a, nil
}

func (repo *AnnouncementRepo) Get(ctx context.Context, id string) (*entity.Announcement, error) {
	defer observe("get_announcement", time.Now())
	const query = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE id = ?
LIMIT 1`
	a, err := scanAnnouncement(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return a, nil
}

func (repo *AnnouncementRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Announcement, error) {
	defer observe("list_announcements", time.Now())
	const query = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE owner_id = ?
ORDER BY created_at DESC, id ASC`
	return repo.list(ctx, "ListByOwner", query, ownerID)
}

func (repo *AnnouncementRepo) ListPublishedByOwner(ctx context.Context, ownerID string) ([]*entity.Announcement, error) {
	defer observe("list_published", time.Now())
	const query = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE owner_id = ?
AND status = 'published'
ORDER BY published_at DESC, id ASC`
	return repo.list(ctx, "ListPublishedByOwner", query, ownerID)
}

func (repo *AnnouncementRepo) ListDueScheduled(ctx context.Context, now time.Time) ([]*entity.Announcement, error) {
	defer observe("list_due_scheduled", time.Now())
	const query = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE status = 'scheduled'
AND scheduled_at <= ?
ORDER BY scheduled_at ASC`
	return repo.list(ctx, "ListDueScheduled", query, toMillis(now))
}

func (repo *AnnouncementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Announcement, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
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
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := repo.db.ExecContext(ctx, query,
		a.ID, a.OwnerID, a.Title, a.Content,
		string(a.Type), string(a.Priority), string(a.Status), a.Timezone,
		a.ImageURL, a.LinkURL, a.LinkText,
		nullMillis(a.ScheduledAt), nullMillis(a.PublishedAt), toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	return nil
}

func (repo *AnnouncementRepo) Update(ctx context.Context, a *entity.Announcement, from entity.Status) error {
	defer observe("update_announcement", time.Now())
	const query = `
UPDATE announcements SET
       title        = ?,
       content      = ?,
       type         = ?,
       priority     = ?,
       status       = ?,
       timezone     = ?,
       image_url    = ?,
       link_url     = ?,
       link_text    = ?,
       scheduled_at = ?,
       published_at = COALESCE(published_at, ?),
       updated_at   = ?
WHERE id = ?
AND status = ?`
	res, err := repo.db.ExecContext(ctx, query,
		a.Title, a.Content, string(a.Type), string(a.Priority), string(a.Status), a.Timezone,
		a.ImageURL, a.LinkURL, a.LinkText,
		nullMillis(a.ScheduledAt), nullMillis(a.PublishedAt), toMillis(a.UpdatedAt), a.ID, string(from),
	)
	if err != nil {
		return fmt.Errorf("Update: ExecContext: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", repo.missingOrStale(ctx, a.ID))
	}
	return nil
}

// missingOrStale explains an update that matched no row.
func (repo *AnnouncementRepo) missingOrStale(ctx context.Context, id string) error {
	var one int
	err := repo.db.QueryRowContext(ctx, `SELECT 1 FROM announcements WHERE id = ?`, id).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return entity.ErrNotFound
	case err != nil:
		return fmt.Errorf("QueryRowContext: %w", err)
	}
	return entity.ErrConflict
}

func (repo *AnnouncementRepo) Delete(ctx context.Context, id string) error {
	defer observe("delete_announcement", time.Now())
	const query = `DELETE FROM announcements WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: ExecContext: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
