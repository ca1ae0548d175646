package announcement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"announce-feed/internal/domain/entity"
	"announce-feed/internal/observability/metrics"
	"announce-feed/internal/observability/tracing"
	"announce-feed/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// CreateInput represents the form submitted by the author.
// Schedule is only read when Intent is IntentSchedule; its zone defaults to Timezone.
type CreateInput struct {
	Title    string
	Content  string
	Type     entity.Type
	Priority entity.Priority
	Timezone string
	ImageURL string
	LinkURL  string
	LinkText string
	Intent   Intent
	Schedule ScheduleRequest
}

// UpdateInput represents a partial update. Nil fields are left unchanged.
// Status, when set, goes through the transition table; a move to scheduled
// requires Schedule.
type UpdateInput struct {
	Title    *string
	Content  *string
	Type     *entity.Type
	Priority *entity.Priority
	Timezone *string
	ImageURL *string
	LinkURL  *string
	LinkText *string
	Status   *entity.Status
	Schedule *ScheduleRequest
}

// Service provides announcement lifecycle use cases.
// It holds no state between calls other than its collaborators.
type Service struct {
	Repo repository.AnnouncementRepository
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// DefaultTimezone is used when the author leaves the zone empty. Defaults to UTC.
	DefaultTimezone string
	Logger          *slog.Logger
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Service) defaultTimezone() string {
	if s.DefaultTimezone != "" {
		return s.DefaultTimezone
	}
	return "UTC"
}

// Create validates the input and persists a new announcement.
// The intent decides the resulting status: draft, published (publishedAt = now)
// or scheduled (scheduledAt >= now + MinScheduleLead). Nothing is persisted when
// any field is invalid.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (a *entity.Announcement, err error) {
	ctx, span := tracing.StartSpan(ctx, "announcement.Create", attribute.String("announcement.intent", string(in.Intent)))
	defer func() { tracing.EndSpan(span, err) }()

	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrOwnerRequired
	}

	intent, intentErr := ParseIntent(string(in.Intent))
	now := s.now().UTC()

	a = &entity.Announcement{
		OwnerID:  ownerID,
		Title:    strings.TrimSpace(in.Title),
		Content:  sanitizeContent(in.Content),
		Type:     in.Type,
		Priority: in.Priority,
		Status:   entity.StatusDraft,
		Timezone: strings.TrimSpace(in.Timezone),
		ImageURL: strings.TrimSpace(in.ImageURL),
		LinkURL:  strings.TrimSpace(in.LinkURL),
		LinkText: strings.TrimSpace(in.LinkText),
	}
	if a.Timezone == "" {
		a.Timezone = s.defaultTimezone()
	}

	errs := entity.ValidationErrors{}
	errs.Merge(a.Validate())
	errs.Merge(intentErr)

	var scheduledAt time.Time
	if intent == IntentSchedule {
		at, schedErr := in.Schedule.Resolve(a.Timezone)
		errs.Merge(schedErr)
		if schedErr == nil {
			errs.Merge(checkLead(at, now))
			scheduledAt = at
		}
	}
	if err := errs.Err(); err != nil {
		metrics.RecordValidationRejected()
		return nil, err
	}

	switch intent {
	case IntentPublishNow:
		err = a.TransitionTo(entity.StatusPublished, now)
	case IntentSchedule:
		a.ScheduledAt = &scheduledAt
		if tz := strings.TrimSpace(in.Schedule.Timezone); tz != "" {
			a.Timezone = tz
		}
		err = a.TransitionTo(entity.StatusScheduled, now)
	}
	if err != nil {
		return nil, err
	}

	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	if a.Status != entity.StatusDraft {
		metrics.RecordTransition(entity.StatusDraft, a.Status)
	}
	s.logger().Info("announcement created",
		slog.String("id", a.ID),
		slog.String("status", a.Status.String()))
	return a, nil
}

// Update applies a partial update. Field edits never touch publishedAt;
// a status change follows the transition table and entering published
// assigns publishedAt only when it was never set.
func (s *Service) Update(ctx context.Context, ownerID, id string, in UpdateInput) (a *entity.Announcement, err error) {
	ctx, span := tracing.StartSpan(ctx, "announcement.Update", attribute.String("announcement.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	a, err = s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	from := a.Status
	now := s.now().UTC()

	if in.Status != nil && *in.Status != a.Status && !a.Status.CanTransitionTo(*in.Status) {
		metrics.RecordTransitionRejected()
		return nil, &entity.TransitionError{From: a.Status, To: *in.Status}
	}

	applyUpdate(a, in)

	errs := entity.ValidationErrors{}
	errs.Merge(a.Validate())

	var scheduledAt time.Time
	if in.Status != nil && *in.Status == entity.StatusScheduled && from != entity.StatusScheduled {
		if in.Schedule == nil {
			errs.Add("scheduledAt", "scheduled date and time are required")
		} else {
			at, schedErr := in.Schedule.Resolve(a.Timezone)
			errs.Merge(schedErr)
			if schedErr == nil {
				errs.Merge(checkLead(at, now))
				scheduledAt = at
			}
		}
	}
	if err := errs.Err(); err != nil {
		metrics.RecordValidationRejected()
		return nil, err
	}

	if in.Status != nil && *in.Status != from {
		if *in.Status == entity.StatusScheduled {
			a.ScheduledAt = &scheduledAt
			if tz := strings.TrimSpace(in.Schedule.Timezone); tz != "" {
				a.Timezone = tz
			}
		}
		if err := a.TransitionTo(*in.Status, now); err != nil {
			return nil, err
		}
	}
	a.UpdatedAt = now

	if err := s.Repo.Update(ctx, a, from); err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	if a.Status != from {
		metrics.RecordTransition(from, a.Status)
	}
	return a, nil
}

func applyUpdate(a *entity.Announcement, in UpdateInput) {
	if in.Title != nil {
		a.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		a.Content = sanitizeContent(*in.Content)
	}
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.Priority != nil {
		a.Priority = *in.Priority
	}
	if in.Timezone != nil {
		a.Timezone = strings.TrimSpace(*in.Timezone)
	}
	if in.ImageURL != nil {
		a.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.LinkURL != nil {
		a.LinkURL = strings.TrimSpace(*in.LinkURL)
	}
	if in.LinkText != nil {
		a.LinkText = strings.TrimSpace(*in.LinkText)
	}
}

// Schedule moves a draft to scheduled. The resolved instant must be at least
// MinScheduleLead after now. Rescheduling an already scheduled announcement is rejected.
func (s *Service) Schedule(ctx context.Context, ownerID, id string, req ScheduleRequest) (a *entity.Announcement, err error) {
	ctx, span := tracing.StartSpan(ctx, "announcement.Schedule", attribute.String("announcement.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	a, err = s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.CanTransitionTo(entity.StatusScheduled) {
		metrics.RecordTransitionRejected()
		return nil, &entity.TransitionError{From: a.Status, To: entity.StatusScheduled}
	}

	now := s.now().UTC()
	at, err := req.Resolve(a.Timezone)
	if err != nil {
		metrics.RecordValidationRejected()
		return nil, err
	}
	errs := entity.ValidationErrors{}
	errs.Merge(checkLead(at, now))
	if err := errs.Err(); err != nil {
		metrics.RecordValidationRejected()
		return nil, err
	}

	from := a.Status
	a.ScheduledAt = &at
	if tz := strings.TrimSpace(req.Timezone); tz != "" {
		a.Timezone = tz
	}
	if err := a.TransitionTo(entity.StatusScheduled, now); err != nil {
		return nil, err
	}
	a.UpdatedAt = now

	if err := s.Repo.Update(ctx, a, from); err != nil {
		return nil, fmt.Errorf("schedule announcement: %w", err)
	}
	metrics.RecordTransition(from, a.Status)
	s.logger().Info("announcement scheduled",
		slog.String("id", a.ID),
		slog.Time("scheduled_at", at))
	return a, nil
}

// Publish moves a draft or scheduled announcement to published.
// A scheduled announcement may be published early; the scheduling rule is not re-checked.
func (s *Service) Publish(ctx context.Context, ownerID, id string) (*entity.Announcement, error) {
	return s.transition(ctx, ownerID, id, entity.StatusPublished)
}

// Archive moves a published announcement to archived.
func (s *Service) Archive(ctx context.Context, ownerID, id string) (*entity.Announcement, error) {
	return s.transition(ctx, ownerID, id, entity.StatusArchived)
}

func (s *Service) transition(ctx context.Context, ownerID, id string, next entity.Status) (a *entity.Announcement, err error) {
	ctx, span := tracing.StartSpan(ctx, "announcement.Transition",
		attribute.String("announcement.id", id),
		attribute.String("announcement.to", next.String()))
	defer func() { tracing.EndSpan(span, err) }()

	a, err = s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if a.Status == next {
		return a, nil
	}

	from := a.Status
	now := s.now().UTC()
	if err := a.TransitionTo(next, now); err != nil {
		metrics.RecordTransitionRejected()
		return nil, err
	}
	a.UpdatedAt = now

	if err := s.Repo.Update(ctx, a, from); err != nil {
		return nil, fmt.Errorf("%s announcement: %w", next, err)
	}
	metrics.RecordTransition(from, next)
	s.logger().Info("announcement status changed",
		slog.String("id", a.ID),
		slog.String("from", from.String()),
		slog.String("to", next.String()))
	return a, nil
}

// Delete removes the announcement permanently.
func (s *Service) Delete(ctx context.Context, ownerID, id string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "announcement.Delete", attribute.String("announcement.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}

// Get returns one announcement of the owner.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*entity.Announcement, error) {
	return s.getOwned(ctx, ownerID, id)
}

// List returns all announcements of the owner, newest created first.
func (s *Service) List(ctx context.Context, ownerID string) ([]*entity.Announcement, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrOwnerRequired
	}
	list, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return list, nil
}

// ListPublished returns the owner's published announcements, newest published first.
func (s *Service) ListPublished(ctx context.Context, ownerID string) ([]*entity.Announcement, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrOwnerRequired
	}
	list, err := s.Repo.ListPublishedByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list published announcements: %w", err)
	}
	return list, nil
}

// PublishDue publishes every scheduled announcement whose scheduledAt has passed.
// A failing record does not stop the others; failures are joined into the returned error.
func (s *Service) PublishDue(ctx context.Context) (published int, err error) {
	ctx, span := tracing.StartSpan(ctx, "announcement.PublishDue")
	defer func() { tracing.EndSpan(span, err) }()

	now := s.now().UTC()
	due, err := s.Repo.ListDueScheduled(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list due announcements: %w", err)
	}

	var errs []error
	for _, a := range due {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := a.TransitionTo(entity.StatusPublished, now); err != nil {
			metrics.RecordScheduledPublished(false)
			errs = append(errs, fmt.Errorf("publish %s: %w", a.ID, err))
			continue
		}
		a.UpdatedAt = now
		err := s.Repo.Update(ctx, a, entity.StatusScheduled)
		if errors.Is(err, entity.ErrConflict) {
			// published early or edited by its owner since the listing
			s.logger().Debug("skipping announcement changed since listing", slog.String("id", a.ID))
			continue
		}
		if err != nil {
			metrics.RecordScheduledPublished(false)
			s.logger().Warn("failed to publish scheduled announcement",
				slog.String("id", a.ID),
				slog.Any("error", err))
			errs = append(errs, fmt.Errorf("publish %s: %w", a.ID, err))
			continue
		}
		metrics.RecordScheduledPublished(true)
		metrics.RecordTransition(entity.StatusScheduled, entity.StatusPublished)
		published++
	}

	span.SetAttributes(attribute.Int("announcement.published", published))
	return published, errors.Join(errs...)
}

func (s *Service) getOwned(ctx context.Context, ownerID, id string) (*entity.Announcement, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrOwnerRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidAnnouncementID
	}
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	if a == nil || a.OwnerID != ownerID {
		return nil, ErrAnnouncementNotFound
	}
	return a, nil
}
