package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerCoalescesBurst(t *testing.T) {
	s := NewService(40 * time.Millisecond)

	var mu sync.Mutex
	var fired []uint64
	done := make(chan struct{}, 5)

	var last uint64
	for i := 0; i < 5; i++ {
		last = s.Trigger(func(seq uint64) {
			mu.Lock()
			fired = append(fired, seq)
			mu.Unlock()
			done <- struct{}{}
		})
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, s.pending())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never fired")
	}
	// Give any wrongly surviving timer a chance to fire
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, fired, 1)
	assert.Equal(t, last, fired[0])
	assert.Equal(t, last, s.Latest())
	assert.False(t, s.pending())
}

func TestStopCancelsPending(t *testing.T) {
	s := NewService(20 * time.Millisecond)

	called := make(chan struct{}, 1)
	seq := s.Trigger(func(uint64) { called <- struct{}{} })
	s.Stop()

	assert.False(t, s.pending())
	assert.NotEqual(t, seq, s.Latest())

	select {
	case <-called:
		t.Fatal("stopped call fired")
	case <-time.After(60 * time.Millisecond):
	}
}
