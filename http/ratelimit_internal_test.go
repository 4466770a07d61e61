package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewClientLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("idle")
	now = now.Add(limiterIdleTTL / 2)
	limiter.Allow("busy")
	assert.Equal(t, 2, limiter.Len())

	now = now.Add(limiterIdleTTL/2 + time.Second)
	limiter.Allow("busy")

	assert.Equal(t, 1, limiter.Len(), "idle client should be dropped")
}
