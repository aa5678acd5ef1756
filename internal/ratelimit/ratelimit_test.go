package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_WithinBurst(t *testing.T) {
	krl := New(1.0, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, krl.Allow("auth"), "request %d within burst should be allowed", i)
	}
	assert.False(t, krl.Allow("auth"), "request beyond burst should be denied")
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	krl := New(1.0, 1)

	assert.True(t, krl.Allow("auth"))
	assert.False(t, krl.Allow("auth"))

	// A different key has its own bucket.
	assert.True(t, krl.Allow("groups"))
}

func TestWait_RespectsContext(t *testing.T) {
	krl := New(0.001, 1)

	// Exhaust the burst.
	require.True(t, krl.Allow("auth"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := krl.Wait(ctx, "auth")
	assert.Error(t, err)
}

func TestWait_AllowsWhenTokensAvailable(t *testing.T) {
	krl := New(100.0, 5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, krl.Wait(ctx, "auth"))
}
