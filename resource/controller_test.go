package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(context.Background(), 60))
	require.Equal(t, int64(60), c.MemoryUsage())

	require.False(t, c.TryAcquireMemory(50))
	require.True(t, c.TryAcquireMemory(40))

	c.ReleaseMemory(100)
	require.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_MemoryBlocksUntilRelease(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})
	require.NoError(t, c.AcquireMemory(context.Background(), 10))

	done := make(chan error, 1)
	go func() {
		done <- c.AcquireMemory(context.Background(), 5)
	}()

	select {
	case <-done:
		t.Fatal("acquire should block while the budget is exhausted")
	case <-time.After(20 * time.Millisecond):
	}

	c.ReleaseMemory(10)
	require.NoError(t, <-done)
}

func TestController_LoadSlots(t *testing.T) {
	c := NewController(Config{MaxConcurrentLoads: 2})

	require.NoError(t, c.AcquireLoad(context.Background()))
	require.True(t, c.TryAcquireLoad())
	require.False(t, c.TryAcquireLoad())

	c.ReleaseLoad()
	require.True(t, c.TryAcquireLoad())

	c.ReleaseLoad()
	c.ReleaseLoad()
}

func TestController_NilIsUnlimited(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(context.Background(), 1<<40))
	require.True(t, c.TryAcquireMemory(1<<40))
	c.ReleaseMemory(1 << 40)
	require.NoError(t, c.AcquireLoad(context.Background()))
	c.ReleaseLoad()
	require.NoError(t, c.AcquireIO(context.Background(), 1<<30))
	require.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_UnlimitedTracksUsage(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(context.Background(), 1234))
	require.Equal(t, int64(1234), c.MemoryUsage())
	c.ReleaseMemory(1234)
	require.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_AcquireIOBeyondBurst(t *testing.T) {
	// A single request larger than one second of budget must be paced
	// through, not rejected.
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	require.NoError(t, c.AcquireIO(context.Background(), (1<<20)+4096))
}

func TestController_AcquireIOCanceled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1024})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, c.AcquireIO(ctx, 1<<20))
}
