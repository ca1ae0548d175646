package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// UserIDHeader identifies the account whose announcements are requested.
const UserIDHeader = "X-User-Id"

// AnnouncementsPath is the public endpoint listing published announcements.
const AnnouncementsPath = "/v1/widget/announcements"

// Item is one published announcement as served by the public endpoint.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Type        string     `json:"type"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	LinkURL     string     `json:"linkUrl,omitempty"`
	LinkText    string     `json:"linkText,omitempty"`
}

// DisplayDate returns the publication time, or the creation time for items
// that were never published.
func (i Item) DisplayDate() time.Time {
	if i.PublishedAt != nil {
		return *i.PublishedAt
	}
	return i.CreatedAt
}

// Fetcher loads the announcements shown in a panel.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Item, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]Item, error)

func (f FetcherFunc) Fetch(ctx context.Context) ([]Item, error) { return f(ctx) }

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("widget: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("widget: status %d: %s", e.Code, e.Message)
}

// Client fetches published announcements from the public endpoint.
// Failed requests are returned to the caller as is.
type Client struct {
	baseURL string
	userID  string
	http    *http.Client
}

// NewClient returns a Client. A nil httpClient gets a 10 second timeout.
func NewClient(baseURL, userID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		http:    httpClient,
	}
}

func (c *Client) Fetch(ctx context.Context) ([]Item, error) {
	if c.userID == "" {
		return nil, ErrUserIDRequired
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+AnnouncementsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("Fetch: %w", err)
	}
	req.Header.Set(UserIDHeader, c.userID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, DecodeStatusError(resp)
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("Fetch: decode: %w", err)
	}
	return items, nil
}

// DecodeStatusError turns a non-2xx response into a *StatusError, keeping the
// server's {"error": ...} message when there is one.
func DecodeStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &StatusError{Code: resp.StatusCode, Message: payload.Error}
	}
	return &StatusError{Code: resp.StatusCode}
}
