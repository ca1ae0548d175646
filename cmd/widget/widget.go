package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"announce-feed/pkg/widget"
)

// settle bounds how long we wait for the grace timer to persist after it fires.
const settle = time.Second

var errInvalidGrace = errors.New("--grace must be positive")

func newBadgeCmd(opts *options) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Fetch once and print the unread badge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := loadEmbeddable(cmd, configPath, opts, 0)
			if err != nil {
				return err
			}
			if err := w.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("fetching announcements: %w", err)
			}
			b := w.Badge()
			if !b.Visible {
				fmt.Fprintln(cmd.OutOrStdout(), "no unread announcements")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.Label)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "widget.yaml", "widget configuration file")
	return cmd
}

func newOpenCmd(opts *options) *cobra.Command {
	var (
		configPath string
		grace      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open the panel, list announcements and mark them seen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if grace <= 0 {
				return fmt.Errorf("%w, got %s", errInvalidGrace, grace)
			}
			w, err := loadEmbeddable(cmd, configPath, opts, grace)
			if err != nil {
				return err
			}
			return runPanel(cmd.Context(), cmd.OutOrStdout(), w.Panel, grace)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "widget.yaml", "widget configuration file")
	cmd.Flags().DurationVar(&grace, "grace", widget.EmbedGrace, "how long the panel stays open before items count as seen")
	return cmd
}

func newReadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one announcement as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.tracker(opts.logger(cmd))
			if err != nil {
				return err
			}
			if err := t.MarkRead(args[0]); err != nil {
				return fmt.Errorf("saving read state: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked %s as read\n", args[0])
			return nil
		},
	}
}

// loadEmbeddable builds a non-polling widget. A zero grace keeps EmbedGrace.
func loadEmbeddable(cmd *cobra.Command, path string, opts *options, grace time.Duration) (*widget.Embeddable, error) {
	cfg, err := widget.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := opts.logger(cmd)
	t, err := opts.tracker(logger)
	if err != nil {
		return nil, err
	}
	embedOpts := []widget.EmbedOption{
		widget.WithLogger(logger),
		widget.WithPollInterval(0),
	}
	if grace > 0 {
		embedOpts = append(embedOpts, widget.WithGrace(grace))
	}
	return widget.NewEmbeddable(cfg, t, embedOpts...)
}

// runPanel opens p, prints the list and keeps it open for the grace period so
// the unread items are persisted as seen.
func runPanel(ctx context.Context, out io.Writer, p *widget.Panel, grace time.Duration) error {
	if err := p.Open(ctx); err != nil {
		return fmt.Errorf("fetching announcements: %w", err)
	}
	defer p.Close()

	view := p.View()
	if len(view.Items) == 0 {
		fmt.Fprintln(out, "No announcements yet")
		return nil
	}
	for _, it := range view.Items {
		mark := " "
		if it.Unread {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s  %-11s %s\n", mark, it.DisplayDate().Format("2006-01-02"), "["+it.Type+"]", it.Title)
		if it.LinkURL != "" {
			text := it.LinkText
			if text == "" {
				text = "Learn more"
			}
			fmt.Fprintf(out, "    %s: %s\n", text, it.LinkURL)
		}
	}
	if p.UnreadCount() == 0 {
		return nil
	}
	return waitSeen(ctx, p, grace)
}

// waitSeen returns once the grace timer has persisted the unread items.
func waitSeen(ctx context.Context, p *widget.Panel, grace time.Duration) error {
	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	deadline := time.Now().Add(settle)
	for p.UnreadCount() > 0 {
		if time.Now().After(deadline) {
			return fmt.Errorf("read state was not persisted within %s", settle)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return nil
}
