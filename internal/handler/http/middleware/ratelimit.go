package middleware

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"announce-feed/internal/handler/http/respond"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var rateLimitRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rate_limit_rejected_total",
		Help: "Requests rejected by a per-IP rate limiter",
	},
	[]string{"limiter"},
)

var errRateLimited = errors.New("too many requests")

// RateLimitConfig configures a per-IP token bucket.
type RateLimitConfig struct {
	Name   string // metrics label
	Limit  int    // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter throttles each client IP independently.
type IPRateLimiter struct {
	cfg       RateLimitConfig
	extractor IPExtractor
	now       func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewIPRateLimiter returns a limiter allowing cfg.Limit requests per cfg.Window per IP.
func NewIPRateLimiter(cfg RateLimitConfig, extractor IPExtractor) *IPRateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.Limit
	}
	if extractor == nil {
		extractor = RemoteAddrExtractor{}
	}
	return &IPRateLimiter{
		cfg:       cfg,
		extractor: extractor,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
	}
}

func (l *IPRateLimiter) every() rate.Limit {
	if l.cfg.Limit <= 0 || l.cfg.Window <= 0 {
		return rate.Inf
	}
	return rate.Every(l.cfg.Window / time.Duration(l.cfg.Limit))
}

// reserve reports whether ip may proceed and, if not, how long to wait.
func (l *IPRateLimiter) reserve(ip string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every(), l.cfg.Burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, l.cfg.Window
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Middleware answers 429 with Retry-After once an IP runs out of tokens.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := l.extractor.ExtractIP(r)
		if err != nil {
			slog.Warn("rate limiter: IP extraction failed",
				slog.String("limiter", l.cfg.Name),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("error", err.Error()))
			ip = r.RemoteAddr
		}

		ok, wait := l.reserve(ip)
		if !ok {
			rateLimitRejectedTotal.WithLabelValues(l.cfg.Name).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respond.SafeError(w, http.StatusTooManyRequests, errRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Len returns the number of tracked IPs.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Sweep forgets IPs idle for longer than idle and returns how many were removed.
func (l *IPRateLimiter) Sweep(idle time.Duration) int {
	cutoff := l.now().Add(-idle)
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

// StartCleanup sweeps idle IPs every interval until ctx is done.
func (l *IPRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := l.Sweep(2 * l.cfg.Window); n > 0 {
					slog.Debug("rate limiter cleanup",
						slog.String("limiter", l.cfg.Name),
						slog.Int("removed", n))
				}
			}
		}
	}()
}
