package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Publisher moves due scheduled announcements to published.
type Publisher interface {
	PublishDue(ctx context.Context) (int, error)
}

// PublishJob is one cron tick of the scheduled-publish worker.
type PublishJob struct {
	Publisher Publisher
	Metrics   *WorkerMetrics
	Logger    *slog.Logger
	Timeout   time.Duration
}

// Run publishes everything due. Partial failures are logged; the count still
// reflects what was published.
func (j PublishJob) Run(ctx context.Context) {
	start := time.Now()
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	n, err := j.Publisher.PublishDue(ctx)
	j.Metrics.RecordJobDuration(time.Since(start).Seconds())
	j.Metrics.RecordPublished(n)

	if err != nil {
		j.Metrics.RecordJobRun("failure")
		j.Logger.Error("publish job failed",
			slog.Int("published", n),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return
	}
	j.Metrics.RecordJobRun("success")
	j.Metrics.RecordLastSuccess()
	if n > 0 {
		j.Logger.Info("publish job completed",
			slog.Int("published", n),
			slog.Duration("duration", time.Since(start)))
	}
}

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// NewScheduler registers job on cfg.CronSchedule. Overlapping ticks are
// skipped while a previous run is still in flight.
func NewScheduler(ctx context.Context, cfg WorkerConfig, job PublishJob) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithParser(scheduleParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(cfg.CronSchedule, func() { job.Run(ctx) }); err != nil {
		return nil, fmt.Errorf("NewScheduler: AddFunc: %w", err)
	}
	return c, nil
}
