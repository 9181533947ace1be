package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for per-account rate limiting
type Limiter interface {
	Allow(account string) bool
	Wait(ctx context.Context, account string) error
}

// InMemoryLimiter is an implementation of Limiter stored in memory
type InMemoryLimiter struct {
	accounts map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit // Rate of adding tokens
	b        int        // Bucket size
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(200, time.Hour, 10) -> allows 200 calls per hour per account, burst of 10
func NewInMemoryLimiter(requests int, per time.Duration, burst int) Limiter {
	return &InMemoryLimiter{
		accounts: make(map[string]*rate.Limiter),
		r:        rate.Every(per / time.Duration(requests)),
		b:        burst,
	}
}

func (l *InMemoryLimiter) limiter(account string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.accounts[account]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.accounts[account] = limiter
	}
	return limiter
}

// Allow checks if a call for the account can proceed immediately
func (l *InMemoryLimiter) Allow(account string) bool {
	return l.limiter(account).Allow()
}

// Wait blocks until the account has budget for one call or ctx is done
func (l *InMemoryLimiter) Wait(ctx context.Context, account string) error {
	return l.limiter(account).Wait(ctx)
}
