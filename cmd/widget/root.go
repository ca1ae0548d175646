package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"announce-feed/internal/observability/logging"
	"announce-feed/pkg/readstate"
)

var version = "dev"

// options are the persistent flags shared by every subcommand.
type options struct {
	stateDir string
	verbose  bool
}

func defaultStateDir() string {
	return filepath.Join(xdg.DataHome, "announce-feed")
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "announce-widget",
		Short:         "Terminal front end for the announcements widget",
		Long:          "announce-widget reads an account's published announcements and tracks which ones this machine has seen.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.stateDir, "state-dir", defaultStateDir(), "directory holding the read state")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(
		newBadgeCmd(opts),
		newOpenCmd(opts),
		newReadCmd(opts),
		newPreviewCmd(opts),
	)
	return root
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	return logging.NewCLILogger(cmd.ErrOrStderr(), o.verbose)
}

// tracker opens the read set under the state directory. A corrupt stored set
// is reported and replaced by an empty one.
func (o *options) tracker(logger *slog.Logger) (*readstate.Tracker, error) {
	storage, err := readstate.NewFileStorage(o.stateDir)
	if err != nil {
		return nil, err
	}
	t, err := readstate.New(storage)
	if errors.Is(err, readstate.ErrCorruptState) {
		logger.Warn("read state is corrupt, starting empty", slog.String("dir", o.stateDir))
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading read state: %w", err)
	}
	return t, nil
}
