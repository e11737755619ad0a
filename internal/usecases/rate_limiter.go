package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rln-faucet.backend/internal/domain/entities"
	"rln-faucet.backend/internal/domain/repositories"
)

// RateLimitDecision is the outcome of a rate limit check. When Allowed is
// false, RetryAt is the moment the oldest counted success leaves the window.
type RateLimitDecision struct {
	Allowed bool
	RetryAt time.Time
}

// RateLimiter enforces the per-user cap on successful sends over a rolling
// window. Only successes count; failed or abandoned attempts are free.
type RateLimiter struct {
	requests  repositories.SendRequestRepository
	maxPerDay int
	window    time.Duration
}

// NewRateLimiter creates a rate limiter backed by the request store
func NewRateLimiter(requests repositories.SendRequestRepository, maxPerDay int) *RateLimiter {
	return &RateLimiter{
		requests:  requests,
		maxPerDay: maxPerDay,
		window:    24 * time.Hour,
	}
}

// Allow checks whether the user may start another request of the kind
func (r *RateLimiter) Allow(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID) (RateLimitDecision, error) {
	since := time.Now().Add(-r.window)

	count, err := r.requests.CountRecentSuccesses(ctx, kind, userID, since)
	if err != nil {
		return RateLimitDecision{}, err
	}
	if count < r.maxPerDay {
		return RateLimitDecision{Allowed: true}, nil
	}

	oldest, err := r.requests.OldestRecentSuccess(ctx, kind, userID, since)
	if err != nil {
		return RateLimitDecision{}, err
	}

	retryAt := time.Now().Add(r.window)
	if oldest != nil {
		retryAt = oldest.CreatedAt.Add(r.window)
	}
	return RateLimitDecision{Allowed: false, RetryAt: retryAt}, nil
}
