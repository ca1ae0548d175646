package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	pgRepo "announce-feed/internal/infra/adapter/persistence/postgres"
	sqliteRepo "announce-feed/internal/infra/adapter/persistence/sqlite"
	"announce-feed/internal/infra/db"
	workerPkg "announce-feed/internal/infra/worker"
	"announce-feed/internal/observability/logging"
	"announce-feed/internal/repository"
	"announce-feed/internal/resilience/circuitbreaker"
	annUC "announce-feed/internal/usecase/announcement"
	"announce-feed/pkg/config"
)

// waitForMigrations blocks until the API has created the schema.
func waitForMigrations(ctx context.Context, logger *slog.Logger, database *sql.DB) error {
	const probe = "SELECT 1 FROM announcements LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.ExecContext(ctx, probe); err == nil {
			return nil
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
	return fmt.Errorf("migrations did not complete in time")
}

func main() {
	logger := initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, dialect := initDatabase(ctx, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	workerMetrics := workerPkg.NewWorkerMetrics(prometheus.DefaultRegisterer)
	workerConfig := workerPkg.LoadConfigFromEnv(logger, workerMetrics)

	repo := circuitbreaker.NewRepository(newRepository(database, dialect))
	svc := &annUC.Service{
		Repo:            repo,
		DefaultTimezone: workerConfig.Timezone,
		Logger:          logging.Component(logger, "announcement"),
	}

	job := workerPkg.PublishJob{
		Publisher: svc,
		Metrics:   workerMetrics,
		Logger:    logging.Component(logger, "publish-job"),
		Timeout:   workerConfig.PublishTimeout,
	}

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", workerConfig.HealthPort), logger)
	metricsServer := newMetricsServer(config.GetEnvInt("METRICS_PORT", 9090), repo)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return healthServer.Start(gctx) })
	g.Go(func() error { return serveMetrics(gctx, logger, metricsServer) })
	g.Go(func() error {
		return runScheduler(gctx, logger, workerConfig, job, healthServer)
	})

	if err := g.Wait(); err != nil {
		logger.Error("worker stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

func initDatabase(ctx context.Context, logger *slog.Logger) (*sql.DB, db.Dialect) {
	database, dialect, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	// An embedded SQLite file has no API process to migrate it first.
	if dialect == db.DialectSQLite {
		if err := db.MigrateUp(database, dialect); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		return database, dialect
	}
	if err := waitForMigrations(ctx, logger, database); err != nil {
		logger.Error("database not ready", slog.Any("error", err))
		os.Exit(1)
	}
	return database, dialect
}

func newRepository(database *sql.DB, dialect db.Dialect) repository.AnnouncementRepository {
	if dialect == db.DialectSQLite {
		return sqliteRepo.NewAnnouncementRepo(database)
	}
	return pgRepo.NewAnnouncementRepo(database)
}

// runScheduler starts cron, marks the worker ready and waits for shutdown.
// In-flight jobs are allowed to finish before it returns.
func runScheduler(ctx context.Context, logger *slog.Logger, cfg workerPkg.WorkerConfig, job workerPkg.PublishJob, health *workerPkg.HealthServer) error {
	c, err := workerPkg.NewScheduler(ctx, cfg, job)
	if err != nil {
		return err
	}
	c.Start()
	health.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	health.SetReady(false)
	<-c.Stop().Done()
	return nil
}
