// Package circuitbreaker fails calls into the record store fast once it has
// kept failing, using github.com/sony/gobreaker. A breaker never retries.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"announce-feed/internal/observability/metrics"
)

// Config tunes a Breaker.
type Config struct {
	Name string
	// HalfOpenProbes is how many calls may run while half-open.
	HalfOpenProbes uint32
	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration
	// OpenFor is how long the breaker stays open before probing.
	OpenFor time.Duration
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// IsSuccessful classifies errors that must not count as failures.
	// Nil means every non-nil error is a failure.
	IsSuccessful func(err error) bool
}

// StoreConfig opens after five consecutive store failures and probes again
// after 30 seconds.
func StoreConfig() Config {
	return Config{
		Name:                "record-store",
		HalfOpenProbes:      3,
		Interval:            time.Minute,
		OpenFor:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// Breaker wraps gobreaker and reports transitions to logs and metrics.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

func New(cfg Config) *Breaker {
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	threshold := cfg.ConsecutiveFailures
	metrics.RecordBreakerState(cfg.Name, int(gobreaker.StateClosed))

	return &Breaker{
		name: cfg.Name,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:         cfg.Name,
			MaxRequests:  cfg.HalfOpenProbes,
			Interval:     cfg.Interval,
			Timeout:      cfg.OpenFor,
			IsSuccessful: cfg.IsSuccessful,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state changed",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
				metrics.RecordBreakerState(name, int(to))
			},
		}),
	}
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// Run calls fn through b. While open it returns gobreaker.ErrOpenState
// without calling fn.
func Run[T any](b *Breaker, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (any, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}
