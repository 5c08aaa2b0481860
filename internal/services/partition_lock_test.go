package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionLock_AcquireRelease(t *testing.T) {
	locks := NewPartitionLock()

	assert.True(t, locks.Acquire("r1|2026-10-01", time.Second))
	locks.Release("r1|2026-10-01")
	assert.True(t, locks.Acquire("r1|2026-10-01", time.Second))
	locks.Release("r1|2026-10-01")
}

func TestPartitionLock_Timeout(t *testing.T) {
	locks := NewPartitionLock()

	require.True(t, locks.Acquire("key", time.Second))
	defer locks.Release("key")

	start := time.Now()
	assert.False(t, locks.Acquire("key", 20*time.Millisecond))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestPartitionLock_IndependentKeys(t *testing.T) {
	locks := NewPartitionLock()

	require.True(t, locks.Acquire("r1|2026-10-01", time.Second))
	defer locks.Release("r1|2026-10-01")

	// A different date and a different route never block.
	assert.True(t, locks.Acquire("r1|2026-10-02", 20*time.Millisecond))
	locks.Release("r1|2026-10-02")
	assert.True(t, locks.Acquire("r2|2026-10-01", 20*time.Millisecond))
	locks.Release("r2|2026-10-01")
}

func TestPartitionLock_MutualExclusion(t *testing.T) {
	locks := NewPartitionLock()

	const n = 50
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.True(t, locks.Acquire("key", 5*time.Second))
			defer locks.Release("key")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, n, counter)
}

func TestPartitionLock_WaiterProceedsAfterRelease(t *testing.T) {
	locks := NewPartitionLock()

	require.True(t, locks.Acquire("key", time.Second))

	done := make(chan bool)
	go func() {
		done <- locks.Acquire("key", 2*time.Second)
	}()

	time.Sleep(10 * time.Millisecond)
	locks.Release("key")

	select {
	case ok := <-done:
		assert.True(t, ok)
		locks.Release("key")
	case <-time.After(3 * time.Second):
		t.Fatal("waiter never acquired the lock")
	}
}
