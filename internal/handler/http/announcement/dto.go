package announcement

import (
	"time"

	"announce-feed/internal/domain/entity"
	annUC "announce-feed/internal/usecase/announcement"
)

// DTO is the admin representation of an announcement.
type DTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Type        string     `json:"type"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Timezone    string     `json:"timezone"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	LinkURL     string     `json:"linkUrl,omitempty"`
	LinkText    string     `json:"linkText,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toDTO(a *entity.Announcement) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Type:        string(a.Type),
		Priority:    string(a.Priority),
		Status:      string(a.Status),
		Timezone:    a.Timezone,
		ImageURL:    a.ImageURL,
		LinkURL:     a.LinkURL,
		LinkText:    a.LinkText,
		ScheduledAt: a.ScheduledAt,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toDTOs(list []*entity.Announcement) []DTO {
	out := make([]DTO, 0, len(list))
	for _, a := range list {
		out = append(out, toDTO(a))
	}
	return out
}

// scheduleBody carries a wall-clock publication time.
type scheduleBody struct {
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
	Timezone      string `json:"timezone"`
}

func (b scheduleBody) request() annUC.ScheduleRequest {
	return annUC.ScheduleRequest{Date: b.ScheduledDate, Time: b.ScheduledTime, Timezone: b.Timezone}
}

type createRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Type          string `json:"type"`
	Priority      string `json:"priority"`
	Timezone      string `json:"timezone"`
	ImageURL      string `json:"imageUrl"`
	LinkURL       string `json:"linkUrl"`
	LinkText      string `json:"linkText"`
	Intent        string `json:"intent"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
}

type updateRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Type          *string `json:"type"`
	Priority      *string `json:"priority"`
	Timezone      *string `json:"timezone"`
	ImageURL      *string `json:"imageUrl"`
	LinkURL       *string `json:"linkUrl"`
	LinkText      *string `json:"linkText"`
	Status        *string `json:"status"`
	ScheduledDate *string `json:"scheduledDate"`
	ScheduledTime *string `json:"scheduledTime"`
}

// input converts the body into an UpdateInput. An unknown status is reported
// as a field error rather than a transition error.
func (r updateRequest) input() (annUC.UpdateInput, error) {
	in := annUC.UpdateInput{
		Title:    r.Title,
		Content:  r.Content,
		Timezone: r.Timezone,
		ImageURL: r.ImageURL,
		LinkURL:  r.LinkURL,
		LinkText: r.LinkText,
	}
	if r.Type != nil {
		t := entity.Type(*r.Type)
		in.Type = &t
	}
	if r.Priority != nil {
		p := entity.Priority(*r.Priority)
		in.Priority = &p
	}
	if r.Status != nil {
		st, err := entity.ParseStatus(*r.Status)
		if err != nil {
			return annUC.UpdateInput{}, &entity.ValidationError{Field: "status", Message: "must be one of draft, scheduled, published, archived"}
		}
		in.Status = &st
	}
	if r.ScheduledDate != nil || r.ScheduledTime != nil {
		req := annUC.ScheduleRequest{}
		if r.ScheduledDate != nil {
			req.Date = *r.ScheduledDate
		}
		if r.ScheduledTime != nil {
			req.Time = *r.ScheduledTime
		}
		if r.Timezone != nil {
			req.Timezone = *r.Timezone
		}
		in.Schedule = &req
	}
	return in, nil
}

// StatsDTO mirrors annUC.Stats.
type StatsDTO struct {
	Total     int            `json:"total"`
	Published int            `json:"published"`
	Scheduled int            `json:"scheduled"`
	Drafts    int            `json:"drafts"`
	Archived  int            `json:"archived"`
	ThisMonth int            `json:"thisMonth"`
	ByType    map[string]int `json:"byType"`
}
