package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_NeverRunsInline(t *testing.T) {
	l := New()
	ran := false

	l.Post(func() { ran = true })

	assert.False(t, ran)
	assert.Equal(t, 1, l.Pending())
	assert.Equal(t, 1, l.Tick())
	assert.True(t, ran)
}

func TestTick_DefersTasksPostedDuringTick(t *testing.T) {
	// --- Arrange ---
	l := New()
	var order []string
	l.Post(func() {
		order = append(order, "first")
		l.Post(func() { order = append(order, "second") })
	})

	// --- Act & Assert ---
	require.Equal(t, 1, l.Tick())
	assert.Equal(t, []string{"first"}, order)

	require.Equal(t, 1, l.Tick())
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 0, l.Tick())
	assert.Equal(t, uint64(2), l.Ticks())
}

func TestDrain_RunsUntilIdle(t *testing.T) {
	l := New()
	count := 0
	var step func()
	step = func() {
		count++
		if count < 5 {
			l.Post(step)
		}
	}
	l.Post(step)

	assert.Equal(t, 5, l.Drain())
	assert.Equal(t, 0, l.Pending())
}

func TestPost_ConcurrentProducers(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	total := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() { total++ })
		}()
	}
	wg.Wait()

	l.Drain()

	assert.Equal(t, 20, total)
}

func TestRun_ProcessesPostsUntilCancelled(t *testing.T) {
	// --- Arrange ---
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	// --- Act ---
	got := make(chan int, 1)
	go l.Post(func() { got <- 7 })

	// --- Assert ---
	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(2 * time.Second):
		t.Fatal("posted task never ran")
	}
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
