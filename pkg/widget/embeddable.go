package widget

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"announce-feed/pkg/readstate"
)

const (
	// EmbedPollInterval is how often the embeddable widget refreshes its badge.
	EmbedPollInterval = 30 * time.Second
	// EmbedGrace is how long the embeddable panel stays open before its items
	// are marked read.
	EmbedGrace = 2 * time.Second
)

// Embeddable is the widget dropped into third-party pages. It reads from the
// public endpoint identified by Config.UserID.
type Embeddable struct {
	*Panel
	cfg Config
}

type embedSettings struct {
	fetcher      Fetcher
	httpClient   *http.Client
	logger       *slog.Logger
	pollInterval time.Duration
	grace        time.Duration
}

// EmbedOption customizes NewEmbeddable.
type EmbedOption func(*embedSettings)

// WithFetcher replaces the HTTP client fetcher.
func WithFetcher(f Fetcher) EmbedOption { return func(s *embedSettings) { s.fetcher = f } }

// WithHTTPClient sets the client used for the public endpoint.
func WithHTTPClient(c *http.Client) EmbedOption { return func(s *embedSettings) { s.httpClient = c } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) EmbedOption { return func(s *embedSettings) { s.logger = l } }

// WithPollInterval overrides EmbedPollInterval.
func WithPollInterval(d time.Duration) EmbedOption {
	return func(s *embedSettings) { s.pollInterval = d }
}

// WithGrace overrides EmbedGrace.
func WithGrace(d time.Duration) EmbedOption { return func(s *embedSettings) { s.grace = d } }

// NewEmbeddable builds the embeddable widget. A config without a user id is
// logged and rejected with ErrUserIDRequired, and nothing is rendered.
func NewEmbeddable(cfg Config, tracker *readstate.Tracker, opts ...EmbedOption) (*Embeddable, error) {
	s := embedSettings{
		logger:       slog.Default(),
		pollInterval: EmbedPollInterval,
		grace:        EmbedGrace,
	}
	for _, o := range opts {
		o(&s)
	}
	cfg.Normalize()
	if cfg.UserID == "" {
		s.logger.Error("user ID is required for announcements widget")
		return nil, ErrUserIDRequired
	}
	if s.fetcher == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		s.fetcher = NewClient(cfg.APIURL, cfg.UserID, s.httpClient)
	}

	p, err := NewPanel(PanelOptions{
		Fetcher:      s.fetcher,
		Tracker:      tracker,
		ShowBadge:    cfg.ShowBadge,
		Grace:        s.grace,
		PollInterval: s.pollInterval,
		Logger:       s.logger.With(slog.String("widget", "embeddable")),
	})
	if err != nil {
		return nil, err
	}
	return &Embeddable{Panel: p, cfg: cfg}, nil
}

// Config returns the normalized configuration.
func (e *Embeddable) Config() Config { return e.cfg }

// Start opens the panel when AutoOpen is set, otherwise loads the badge, and
// then begins polling. The initial load error is returned; polling continues.
func (e *Embeddable) Start(ctx context.Context) error {
	var err error
	if e.cfg.AutoOpen {
		err = e.Open(ctx)
	} else {
		err = e.Refresh(ctx)
	}
	e.StartPolling(ctx)
	return err
}

// Stop ends polling and closes the panel.
func (e *Embeddable) Stop() {
	e.StopPolling()
	e.Close()
}
