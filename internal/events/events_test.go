package events

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus(nil)

	var received *Event
	callCount := 0
	bus.Subscribe(EventTurnoCreated, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	fecha := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	err := bus.PublishJSON(EventTurnoCreated, TurnoEventPayload{
		TurnoID:     3,
		ServicioID:  1,
		FechaHora:   fecha,
		Estado:      "CONFIRMADO",
		MontoPagado: decimal.Zero,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, callCount)
	require.NotNil(t, received)
	assert.Equal(t, EventTurnoCreated, received.Type)
	assert.False(t, received.CreatedAt.IsZero())

	var decoded TurnoEventPayload
	require.NoError(t, received.Decode(&decoded))
	assert.Equal(t, int64(3), decoded.TurnoID)
	assert.True(t, fecha.Equal(decoded.FechaHora))
	assert.True(t, decoded.MontoPagado.IsZero())
}

func TestEventBusSubscribeAll(t *testing.T) {
	bus := NewEventBus(nil)
	seen := map[string]int{}
	bus.SubscribeAll(TurnoEvents, func(e *Event) error {
		seen[e.Type]++
		return nil
	})

	for _, et := range TurnoEvents {
		bus.Publish(&Event{Type: et})
	}
	bus.Publish(&Event{Type: "unrelated"})

	assert.Len(t, seen, len(TurnoEvents))
	for _, et := range TurnoEvents {
		assert.Equal(t, 1, seen[et], et)
	}
}

func TestEventBusHandlerErrorDoesNotStopOthers(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	bus := NewEventBus(&logger)

	second := 0
	bus.Subscribe("event", func(_ *Event) error { return errors.New("redis down") })
	bus.Subscribe("event", func(_ *Event) error { second++; return nil })

	bus.Publish(&Event{Type: "event"})

	assert.Equal(t, 1, second)
	assert.Contains(t, buf.String(), "redis down")
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	bus.Publish(&Event{Type: "unknown"})
	assert.NoError(t, bus.PublishJSON("unknown", nil))

	var nilBus *EventBus
	assert.NoError(t, nilBus.PublishJSON("unknown", nil))
}
