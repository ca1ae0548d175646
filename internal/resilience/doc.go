// Package resilience provides fault isolation for the record store.
//
// The circuitbreaker subpackage wraps calls into the database with a
// sony/gobreaker circuit breaker so that a failing store produces fast
// errors instead of queued requests. Nothing in this package retries.
//
// Usage Example:
//
//	repo := circuitbreaker.NewRepository(postgres.NewAnnouncementRepo(db))
//	svc := &announcement.Service{Repo: repo}
package resilience
