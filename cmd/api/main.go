package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	_ "announce-feed/docs"
	hhttp "announce-feed/internal/handler/http"
	hann "announce-feed/internal/handler/http/announcement"
	hauth "announce-feed/internal/handler/http/auth"
	"announce-feed/internal/handler/http/middleware"
	"announce-feed/internal/handler/http/requestid"
	hwidget "announce-feed/internal/handler/http/widget"
	pgRepo "announce-feed/internal/infra/adapter/persistence/postgres"
	sqliteRepo "announce-feed/internal/infra/adapter/persistence/sqlite"
	"announce-feed/internal/infra/db"
	"announce-feed/internal/observability/logging"
	"announce-feed/internal/observability/tracing"
	"announce-feed/internal/repository"
	"announce-feed/internal/resilience/circuitbreaker"
	authservice "announce-feed/internal/service/auth"
	annUC "announce-feed/internal/usecase/announcement"
	"announce-feed/pkg/config"
)

func main() {
	logger := initLogger()
	validateAdminCredentials(logger)
	hauth.ValidateViewerCredentials(logger)
	jwtSecret := validateJWTSecret(logger)

	database, dialect := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := config.GetEnvString("VERSION", "dev")
	shutdownTracing := tracing.Setup(tracing.Config{
		ServiceName: "announce-feed-api",
		Version:     version,
		SampleRatio: 0.1,
	})

	components := setupServer(logger, database, dialect, jwtSecret, version)
	runServer(logger, components, version)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown failed", slog.Any("error", err))
	}
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateAdminCredentials refuses to start with empty or weak admin credentials.
func validateAdminCredentials(logger *slog.Logger) {
	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func validateJWTSecret(logger *slog.Logger) []byte {
	secret := os.Getenv("JWT_SECRET")
	if err := hauth.ValidateJWTSecret(secret); err != nil {
		logger.Error("JWT_SECRET validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	return []byte(secret)
}

// initDatabase opens DATABASE_URL and applies the embedded migrations.
func initDatabase(logger *slog.Logger) (*sql.DB, db.Dialect) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, dialect, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database, dialect); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database ready", slog.String("dialect", string(dialect)))
	return database, dialect
}

func newRepository(database *sql.DB, dialect db.Dialect) repository.AnnouncementRepository {
	if dialect == db.DialectSQLite {
		return sqliteRepo.NewAnnouncementRepo(database)
	}
	return pgRepo.NewAnnouncementRepo(database)
}

// ServerComponents holds what runServer needs besides the handler.
type ServerComponents struct {
	Handler       http.Handler
	WidgetLimiter *middleware.IPRateLimiter
	AuthLimiter   *middleware.IPRateLimiter
	Addr          string
}

func setupServer(logger *slog.Logger, database *sql.DB, dialect db.Dialect, jwtSecret []byte, version string) *ServerComponents {
	repo := circuitbreaker.NewRepository(newRepository(database, dialect))
	svc := &annUC.Service{
		Repo:            repo,
		DefaultTimezone: config.GetEnvString("DEFAULT_TIMEZONE", "UTC"),
		Logger:          logging.Component(logger, "announcement"),
	}

	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}
	extractor := middleware.NewIPExtractor(proxyConfig)

	widgetLimiter := middleware.NewIPRateLimiter(middleware.RateLimitConfig{
		Name:   "widget",
		Limit:  config.GetEnvInt("WIDGET_RATE_LIMIT", 120),
		Window: config.GetEnvDuration("WIDGET_RATE_WINDOW", time.Minute),
		Burst:  20,
	}, extractor)
	authLimiter := middleware.NewIPRateLimiter(middleware.RateLimitConfig{
		Name:   "auth",
		Limit:  5,
		Window: time.Minute,
		Burst:  5,
	}, extractor)

	authService := authservice.NewAuthService(
		hauth.NewEnvProvider(),
		jwtSecret,
		config.GetEnvDuration("JWT_TTL", time.Hour),
	)

	mux := setupRoutes(logger, database, repo, svc, authService, widgetLimiter, authLimiter, version)
	return &ServerComponents{
		Handler:       applyMiddleware(logger, hauth.Authz(authService)(mux)),
		WidgetLimiter: widgetLimiter,
		AuthLimiter:   authLimiter,
		Addr:          config.GetEnvString("HTTP_ADDR", ":8080"),
	}
}

// setupRoutes registers every route on one mux. Public paths are let through
// by hauth.Authz; everything else requires a bearer token.
func setupRoutes(
	logger *slog.Logger,
	database *sql.DB,
	breaker hhttp.BreakerState,
	svc *annUC.Service,
	authService *authservice.AuthService,
	widgetLimiter, authLimiter *middleware.IPRateLimiter,
	version string,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("POST /auth/token", authLimiter.Middleware(hauth.TokenHandler(authService, logger)))
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Breaker: breaker, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hwidget.Register(mux, svc, widgetLimiter, logging.Component(logger, "widget"))
	hann.Register(mux, svc, logging.Component(logger, "admin"))
	return mux
}

// applyMiddleware wraps the mux. Listed outermost first.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig(logger)
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}

	return hhttp.Chain(handler,
		requestid.Middleware,
		hhttp.Recover(logger),
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		adminCORS(*corsConfig),
		middleware.CSP(middleware.LoadCSPConfig(hwidget.FeedPath)),
		hhttp.InputValidation(hhttp.DefaultMaxBodyBytes),
		hhttp.Timeout(config.GetEnvDuration("HTTP_HANDLER_TIMEOUT", 15*time.Second)),
	)
}

// adminCORS applies the allowlist policy everywhere except the widget
// endpoints, which carry their own wildcard policy.
func adminCORS(cfg middleware.CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		cors := middleware.CORS(cfg)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/v1/widget/") {
				next.ServeHTTP(w, r)
				return
			}
			cors.ServeHTTP(w, r)
		})
	}
}

// newHTTPServer leaves BaseContext unset so request contexts outlive the
// signal context; Shutdown is what drains them.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// runServer serves until SIGINT/SIGTERM, then drains in-flight requests.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := newHTTPServer(components.Addr, components.Handler)

	g, gctx := errgroup.WithContext(ctx)
	components.WidgetLimiter.StartCleanup(gctx, time.Minute)
	components.AuthLimiter.StartCleanup(gctx, time.Minute)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", components.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		return
	}
	logger.Info("server stopped")
}
