package widget

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"announce-feed/internal/handler/http/respond"
	"announce-feed/internal/observability/logging"
	"announce-feed/internal/observability/metrics"
	feedwidget "announce-feed/pkg/widget"
)

// FeedPath serves the published announcements as RSS 2.0.
const FeedPath = "/v1/widget/feed.xml"

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link,omitempty"`
	Description string  `xml:"description"`
	GUID        rssGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate"`
	Category    string  `xml:"category,omitempty"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type FeedHandler struct {
	Src    Source
	Logger *slog.Logger
	// Title names the channel. Defaults to "Announcements".
	Title string
}

// ServeHTTP renders the account named by ?userId= as an RSS channel.
// Feed readers cannot send custom headers, hence the query parameter.
func (h FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		metrics.RecordWidgetFetch("feed", false, 0)
		respond.SafeError(w, http.StatusBadRequest, errUserIDRequired)
		return
	}

	list, err := h.Src.ListPublished(r.Context(), userID)
	if err != nil {
		metrics.RecordWidgetFetch("feed", false, 0)
		logging.WithRequestID(r.Context(), h.Logger).Error("feed fetch failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := toItems(list)
	doc := buildFeed(h.title(), selfLink(r), items)

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Error("failed to encode feed", slog.Any("error", err))
		return
	}
	metrics.RecordWidgetFetch("feed", true, len(items))
}

func (h FeedHandler) title() string {
	if h.Title != "" {
		return h.Title
	}
	return "Announcements"
}

func selfLink(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func buildFeed(title, link string, items []feedwidget.Item) rss {
	ch := rssChannel{
		Title:       title,
		Link:        link,
		Description: "Product announcements",
		Items:       make([]rssItem, 0, len(items)),
	}
	if len(items) > 0 {
		ch.LastBuildDate = items[0].DisplayDate().UTC().Format(time.RFC1123Z)
	}
	for _, it := range items {
		ch.Items = append(ch.Items, rssItem{
			Title:       it.Title,
			Link:        it.LinkURL,
			Description: it.Content,
			GUID:        rssGUID{Value: it.ID},
			PubDate:     it.DisplayDate().UTC().Format(time.RFC1123Z),
			Category:    it.Type,
		})
	}
	return rss{Version: "2.0", Channel: ch}
}
