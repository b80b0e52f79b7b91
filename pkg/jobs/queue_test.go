package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("events", QueueConfig{})
	err := q.Enqueue(context.Background(), Job{Type: "noop"})
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestQueueDispatchesByType(t *testing.T) {
	q := NewQueue("events", QueueConfig{Workers: 2})
	done := make(chan Job, 1)
	q.Handle("stage.changed", func(_ context.Context, job Job) error {
		done <- job
		return nil
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(context.Background(), Job{Type: "stage.changed", Payload: "app-1"}))

	select {
	case job := <-done:
		assert.Equal(t, "app-1", job.Payload)
		assert.NotEmpty(t, job.ID)
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	q := NewQueue("events", QueueConfig{MaxRetries: 2, RetryDelay: time.Millisecond})
	var calls int32
	done := make(chan int, 1)
	q.Handle("flaky", func(_ context.Context, job Job) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		done <- job.Attempt
		return nil
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(context.Background(), Job{Type: "flaky"}))

	select {
	case attempt := <-done:
		assert.Equal(t, 2, attempt)
	case <-time.After(time.Second):
		t.Fatal("job was not retried")
	}
}

func TestStopRejectsNewJobs(t *testing.T) {
	q := NewQueue("events", QueueConfig{})
	q.Start(context.Background())
	q.Stop()

	assert.ErrorIs(t, q.Enqueue(context.Background(), Job{Type: "noop"}), ErrNotRunning)
}
