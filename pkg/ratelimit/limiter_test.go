package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterCooldown(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(50 * time.Millisecond)

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok, "second call inside the window is rejected")

	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "keys are independent")

	time.Sleep(80 * time.Millisecond)

	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "window expired")
}

func TestUnlimited(t *testing.T) {
	for i := 0; i < 3; i++ {
		ok, err := Unlimited{}.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
