package widget

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"announce-feed/pkg/readstate"
)

// PanelOptions configures a Panel.
type PanelOptions struct {
	Fetcher Fetcher
	Tracker *readstate.Tracker
	// ShowBadge controls badge visibility.
	ShowBadge bool
	// Grace is how long items must stay visible in an open panel before
	// they are marked read.
	Grace time.Duration
	// PollInterval refreshes the list while the panel runs. Zero disables polling.
	PollInterval time.Duration
	Logger       *slog.Logger
}

// ItemView is an item together with its read state.
type ItemView struct {
	Item
	Unread bool
}

// View is a snapshot of what the widget displays.
type View struct {
	Open  bool
	Items []ItemView
	Badge Badge
}

// Panel is the widget state machine: a closed button with a badge, or an
// open list. A single mutex serializes user actions with timer and poll
// callbacks. A fetch started by Open is not cancelled by Close; its result is
// discarded when the panel generation has moved on.
type Panel struct {
	opts PanelOptions
	log  *slog.Logger

	mu    sync.Mutex
	open  bool
	gen   uint64
	items []Item
	grace *time.Timer

	pollMu sync.Mutex
	stop   context.CancelFunc
	done   chan struct{}
}

// NewPanel validates opts and returns a closed panel.
func NewPanel(opts PanelOptions) (*Panel, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("widget: fetcher is required")
	}
	if opts.Tracker == nil {
		return nil, errors.New("widget: tracker is required")
	}
	if opts.Grace < 0 || opts.PollInterval < 0 {
		return nil, errors.New("widget: durations must not be negative")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Panel{opts: opts, log: logger}, nil
}

// Refresh fetches the list and updates the badge without touching the open state.
func (p *Panel) Refresh(ctx context.Context) error {
	items, err := p.opts.Fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.items = items
	p.mu.Unlock()
	return nil
}

// Open shows the list, refetches it and arms the grace timer. Items that are
// unread when the fetch lands are marked read once the grace period passes,
// unless the panel is closed first.
func (p *Panel) Open(ctx context.Context) error {
	p.mu.Lock()
	p.open = true
	p.gen++
	gen := p.gen
	p.stopGraceLocked()
	p.mu.Unlock()

	items, err := p.opts.Fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open || p.gen != gen {
		p.log.Debug("discarding stale fetch", slog.Uint64("generation", gen))
		return nil
	}
	p.items = items

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	unread := p.opts.Tracker.Unread(ids)
	if len(unread) == 0 {
		return nil
	}
	p.grace = time.AfterFunc(p.opts.Grace, func() { p.markSeen(gen, unread) })
	return nil
}

func (p *Panel) markSeen(gen uint64, ids []string) {
	p.mu.Lock()
	if !p.open || p.gen != gen {
		p.mu.Unlock()
		return
	}
	p.grace = nil
	p.mu.Unlock()

	if err := p.opts.Tracker.MarkAllRead(ids); err != nil {
		p.log.Error("failed to persist read state", slog.Any("error", err))
		return
	}
	p.log.Debug("marked announcements as seen", slog.Int("count", len(ids)))
}

// Close hides the list and cancels a pending auto-mark.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.gen++
	p.stopGraceLocked()
}

func (p *Panel) stopGraceLocked() {
	if p.grace != nil {
		p.grace.Stop()
		p.grace = nil
	}
}

// Toggle opens a closed panel and closes an open one.
func (p *Panel) Toggle(ctx context.Context) error {
	if p.IsOpen() {
		p.Close()
		return nil
	}
	return p.Open(ctx)
}

// Click marks a single item read immediately.
func (p *Panel) Click(id string) error {
	return p.opts.Tracker.MarkRead(id)
}

// IsOpen reports whether the list is shown.
func (p *Panel) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// UnreadCount counts unread items in the last fetched list.
func (p *Panel) UnreadCount() int {
	p.mu.Lock()
	items := p.items
	p.mu.Unlock()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return p.opts.Tracker.UnreadCount(ids)
}

// Badge returns the badge for the last fetched list.
func (p *Panel) Badge() Badge {
	return NewBadge(p.opts.ShowBadge, p.UnreadCount())
}

// View returns a snapshot for rendering.
func (p *Panel) View() View {
	p.mu.Lock()
	open := p.open
	items := make([]Item, len(p.items))
	copy(items, p.items)
	p.mu.Unlock()

	v := View{Open: open, Items: make([]ItemView, 0, len(items))}
	unread := 0
	for _, it := range items {
		u := !p.opts.Tracker.IsRead(it.ID)
		if u {
			unread++
		}
		v.Items = append(v.Items, ItemView{Item: it, Unread: u})
	}
	v.Badge = NewBadge(p.opts.ShowBadge, unread)
	return v
}

// StartPolling refreshes every PollInterval until StopPolling or ctx is done.
// It is a no-op when polling is disabled or already running.
func (p *Panel) StartPolling(ctx context.Context) {
	if p.opts.PollInterval <= 0 {
		return
	}
	p.pollMu.Lock()
	defer p.pollMu.Unlock()
	if p.stop != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.stop = cancel
	p.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(p.opts.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
					p.log.Warn("failed to refresh announcements", slog.Any("error", err))
				}
			}
		}
	}(p.done)
}

// StopPolling stops the poll loop and waits for it to exit.
func (p *Panel) StopPolling() {
	p.pollMu.Lock()
	cancel, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.pollMu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
