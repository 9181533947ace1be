package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowPerAccountBuckets(t *testing.T) {
	limiter := NewInMemoryLimiter(1, time.Hour, 1)

	// Each account has its own bucket.
	assert.True(t, limiter.Allow("NPI"))
	assert.True(t, limiter.Allow("LT"))

	// The budget for a single account is spent.
	assert.False(t, limiter.Allow("NPI"))
	assert.False(t, limiter.Allow("LT"))
}

func TestAllowWithinBurst(t *testing.T) {
	limiter := NewInMemoryLimiter(100, time.Hour, 5)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("NPI"))
	}
	assert.False(t, limiter.Allow("NPI"))
}
