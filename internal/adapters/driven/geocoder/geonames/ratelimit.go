package geonames

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

// DefaultQuotaBackoff is how long requests are refused after GeoNames
// reports an exhausted quota.
const DefaultQuotaBackoff = 5 * time.Minute

// RateLimiter throttles requests to GeoNames with a token bucket.
// After a quota error it refuses requests until the backoff expires
// instead of queueing them, so an interactive picker fails fast.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained
// and burst requests at once.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = domain.DefaultGeoNamesRatePerSecond
	}
	if burst <= 0 {
		burst = domain.DefaultGeoNamesBurst
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		now:     time.Now,
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It returns an error wrapping domain.ErrRateLimited while backing off.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	now := r.now()
	r.mu.Unlock()

	if now.Before(retryAt) {
		return fmt.Errorf("%w: quota exhausted, retry in %s",
			domain.ErrRateLimited, retryAt.Sub(now).Round(time.Second))
	}

	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}
	return nil
}

// Backoff refuses requests for d. A non-positive d uses DefaultQuotaBackoff.
func (r *RateLimiter) Backoff(d time.Duration) {
	if d <= 0 {
		d = DefaultQuotaBackoff
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = r.now().Add(d)
}

// Allow reports whether a request could be made right now.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	now := r.now()
	r.mu.Unlock()

	if now.Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
