package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"announce-feed/internal/preview"
)

func newPreviewCmd(opts *options) *cobra.Command {
	var apiURL, token string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run the in-product widget against the admin API once",
		Long: `Fetch the account's announcements with an admin token, keep the published
ones and show them the way the in-product widget does. Items stay visible for
one second before they are marked seen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				token = os.Getenv("ANNOUNCE_TOKEN")
			}
			logger := opts.logger(cmd)
			t, err := opts.tracker(logger)
			if err != nil {
				return err
			}
			p, err := preview.NewPanel(preview.NewFetcher(apiURL, token, nil), t, logger)
			if err != nil {
				return fmt.Errorf("building preview: %w", err)
			}
			return runPanel(cmd.Context(), cmd.OutOrStdout(), p, preview.Grace)
		},
	}
	cmd.Flags().StringVar(&apiURL, "api", "http://localhost:8080", "admin API origin")
	cmd.Flags().StringVar(&token, "token", "", "bearer token from /auth/token (default $ANNOUNCE_TOKEN)")
	return cmd
}
