package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	l := NewRateLimiter(60, 1)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))
	assert.True(t, l.allow("b"), "clients do not share a bucket")

	now = now.Add(time.Second)
	assert.True(t, l.allow("a"), "one token per second at 60 rpm")
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	l := NewRateLimiter(60, 1)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	l.allow("a")
	now = now.Add(idleLimiterTTL + time.Minute)
	l.allow("b")

	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "b")
}
