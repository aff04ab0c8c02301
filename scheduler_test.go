package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsTasksInOrder(t *testing.T) {
	sched := newScheduler()
	defer sched.Close()

	results := make(chan int, 3)
	sched.Post(func() { results <- 1 })
	sched.Post(func() { results <- 2 })
	sched.Post(func() { results <- 3 })

	for want := 1; want <= 3; want++ {
		select {
		case got := <-results:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			require.FailNow(t, "task did not run")
		}
	}
}

func TestScheduler_PostDoesNotRunInline(t *testing.T) {
	sched := newScheduler()
	defer sched.Close()

	release := make(chan struct{})
	done := make(chan struct{})

	// If Post executed the task inline it would never return: the task
	// blocks until this call stack completes and releases it.
	sched.Post(func() {
		<-release
		close(done)
	})
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "task did not run")
	}
}

func TestScheduler_CloseDrainsQueuedTasks(t *testing.T) {
	sched := newScheduler()

	count := make(chan struct{}, 2)
	sched.Post(func() { count <- struct{}{} })
	sched.Post(func() { count <- struct{}{} })

	sched.Close()
	assert.Len(t, count, 2)

	// Posting after close is a no-op, not a panic.
	sched.Post(func() { count <- struct{}{} })
	assert.Len(t, count, 2)
}
