package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"peluqueria/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_NextDelay(t *testing.T) {
	p := RetryPolicy{InitialDelay: time.Second, MaxDelay: 5 * time.Second, BackoffFactor: 2}

	assert.Equal(t, time.Second, p.NextDelay(0))
	assert.Equal(t, time.Second, p.NextDelay(1))
	assert.Equal(t, 2*time.Second, p.NextDelay(2))
	assert.Equal(t, 4*time.Second, p.NextDelay(3))
	assert.Equal(t, 5*time.Second, p.NextDelay(4))

	assert.Equal(t, time.Second, RetryPolicy{}.NextDelay(1))
	assert.Equal(t, 2*time.Second, RetryPolicy{}.NextDelay(2))
}

func fastRetry() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestEventWorker_Delivers(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{}, 1)
	w := NewEventWorker("test", func(*events.Event) error {
		calls.Add(1)
		done <- struct{}{}
		return nil
	}, fastRetry(), 4, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	assert.NoError(t, w.Enqueue(&events.Event{Type: events.EventTurnoCreated}))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestEventWorker_RetriesThenDrops(t *testing.T) {
	var calls atomic.Int32
	w := NewEventWorker("test", func(*events.Event) error {
		calls.Add(1)
		return errors.New("redis down")
	}, fastRetry(), 4, nil)

	w.process(context.Background(), &events.Event{Type: events.EventTurnoPaid})
	// first attempt plus MaxRetries retries
	assert.Equal(t, int32(3), calls.Load())
}

func TestEventWorker_RecoversOnRetry(t *testing.T) {
	var calls atomic.Int32
	w := NewEventWorker("test", func(*events.Event) error {
		if calls.Add(1) < 2 {
			return errors.New("temporary")
		}
		return nil
	}, fastRetry(), 4, nil)

	w.process(context.Background(), &events.Event{Type: events.EventTurnoPaid})
	assert.Equal(t, int32(2), calls.Load())
}

func TestEventWorker_QueueFull(t *testing.T) {
	w := NewEventWorker("test", func(*events.Event) error { return nil }, fastRetry(), 1, nil)

	assert.NoError(t, w.Enqueue(&events.Event{Type: events.EventTurnoCreated}))
	assert.ErrorIs(t, w.Enqueue(&events.Event{Type: events.EventTurnoCreated}), ErrQueueFull)
}

func TestEventWorker_StopsOnCancel(t *testing.T) {
	w := NewEventWorker("test", func(*events.Event) error { return errors.New("fail") },
		RetryPolicy{MaxRetries: 5, InitialDelay: time.Hour}, 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		w.process(ctx, &events.Event{Type: events.EventTurnoCreated})
		close(finished)
	}()
	cancel()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("process did not stop on cancel")
	}
}
