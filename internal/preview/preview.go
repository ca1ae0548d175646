// Package preview is the in-product announcements widget shown inside the
// admin console. Unlike the embeddable widget it reads the signed-in owner's
// announcements through the authenticated admin API, keeps only the published
// ones and never polls.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"announce-feed/pkg/readstate"
	"announce-feed/pkg/widget"
)

// Grace is how long the preview panel stays open before its items are marked read.
const Grace = time.Second

const listPath = "/v1/announcements"

// ErrTokenRequired is returned when no bearer token was supplied.
var ErrTokenRequired = errors.New("preview: token is required")

// Fetcher lists the owner's published announcements from the admin API.
type Fetcher struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewFetcher(baseURL, token string, httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		http:    httpClient,
	}
}

// Fetch returns published items ordered by publication date, newest first.
func (f *Fetcher) Fetch(ctx context.Context) ([]widget.Item, error) {
	if f.token == "" {
		return nil, ErrTokenRequired
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+listPath, nil)
	if err != nil {
		return nil, fmt.Errorf("Fetch: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Accept", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, widget.DecodeStatusError(resp)
	}

	var all []widget.Item
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, fmt.Errorf("Fetch: decode: %w", err)
	}
	return publishedOnly(all), nil
}

func publishedOnly(all []widget.Item) []widget.Item {
	out := make([]widget.Item, 0, len(all))
	for _, it := range all {
		if it.Status == "published" {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b widget.Item) int {
		return b.DisplayDate().Compare(a.DisplayDate())
	})
	return out
}

// NewPanel builds the preview panel over fetcher. It shares the read set with
// the embeddable widget through tracker.
func NewPanel(fetcher widget.Fetcher, tracker *readstate.Tracker, logger *slog.Logger) (*widget.Panel, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return widget.NewPanel(widget.PanelOptions{
		Fetcher:   fetcher,
		Tracker:   tracker,
		ShowBadge: true,
		Grace:     Grace,
		Logger:    logger.With(slog.String("widget", "preview")),
	})
}
