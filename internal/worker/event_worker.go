package worker

import (
	"context"
	"errors"
	"math"
	"time"

	"peluqueria/internal/events"

	"github.com/rs/zerolog"
)

// ErrQueueFull is returned by Enqueue when the buffer is saturated.
var ErrQueueFull = errors.New("event queue is full")

// RetryPolicy defines exponential backoff parameters.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// NextDelay returns the wait before retry number attempt (1-based), clamped to MaxDelay.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	initial := r.InitialDelay
	if initial <= 0 {
		initial = time.Second
	}
	factor := r.BackoffFactor
	if factor <= 0 {
		factor = 2
	}

	d := time.Duration(float64(initial) * math.Pow(factor, float64(attempt-1)))
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

// EventWorker runs a slow event handler off the request path. Events are
// buffered in memory and retried with backoff; an event that keeps failing
// is logged and dropped.
type EventWorker struct {
	name    string
	handler events.EventHandler
	retry   RetryPolicy
	queue   chan *events.Event
	logger  *zerolog.Logger
}

func NewEventWorker(name string, handler events.EventHandler, retry RetryPolicy, buffer int, logger *zerolog.Logger) *EventWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 3
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 500 * time.Millisecond
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 10 * time.Second
	}
	if buffer <= 0 {
		buffer = 128
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &EventWorker{
		name:    name,
		handler: handler,
		retry:   retry,
		queue:   make(chan *events.Event, buffer),
		logger:  logger,
	}
}

// Enqueue has the EventHandler signature so the worker can subscribe to a bus directly.
func (w *EventWorker) Enqueue(e *events.Event) error {
	select {
	case w.queue <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start processes events until ctx is done.
func (w *EventWorker) Start(ctx context.Context) {
	w.logger.Info().Str("worker", w.name).Msg("event worker started")
	defer w.logger.Info().Str("worker", w.name).Msg("event worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case e := <-w.queue:
			w.process(ctx, e)
		}
	}
}

func (w *EventWorker) process(ctx context.Context, e *events.Event) {
	for attempt := 1; ; attempt++ {
		err := w.handler(e)
		if err == nil {
			return
		}
		if attempt > w.retry.MaxRetries {
			w.logger.Error().Err(err).
				Str("worker", w.name).
				Str("event_type", e.Type).
				Int("attempts", attempt).
				Msg("event dropped after retries")
			return
		}

		delay := w.retry.NextDelay(attempt)
		w.logger.Warn().Err(err).
			Str("worker", w.name).
			Str("event_type", e.Type).
			Dur("retry_in", delay).
			Msg("event handler failed")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
