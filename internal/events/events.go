package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	EventTurnoCreated   = "turno_created"
	EventTurnoUpdated   = "turno_updated"
	EventTurnoCompleted = "turno_completed"
	EventTurnoCancelled = "turno_cancelled"
	EventTurnoPaid      = "turno_paid"
	EventTurnoDeleted   = "turno_deleted"
)

// TurnoEvents lists every turno lifecycle event type.
var TurnoEvents = []string{
	EventTurnoCreated,
	EventTurnoUpdated,
	EventTurnoCompleted,
	EventTurnoCancelled,
	EventTurnoPaid,
	EventTurnoDeleted,
}

// TurnoEventPayload is the turno snapshot handed to event consumers.
type TurnoEventPayload struct {
	TurnoID     int64           `json:"turno_id"`
	ClienteID   int64           `json:"cliente_id"`
	ServicioID  int64           `json:"servicio_id"`
	Servicio    string          `json:"servicio,omitempty"`
	FechaHora   time.Time       `json:"fecha_hora"`
	Estado      string          `json:"estado"`
	EstadoPago  string          `json:"estado_pago"`
	MontoPagado decimal.Decimal `json:"monto_pagado"`
	// Monto is what this event collected; zero unless money changed hands.
	Monto decimal.Decimal `json:"monto"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Decode unmarshals the JSON payload into v.
func (e *Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	logger      *zerolog.Logger
}

// NewEventBus constructs an empty bus. Handler failures are logged to logger.
func NewEventBus(logger *zerolog.Logger) *EventBus {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &EventBus{subscribers: make(map[string][]EventHandler), logger: logger}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers one handler for several event types.
func (b *EventBus) SubscribeAll(eventTypes []string, handler EventHandler) {
	for _, t := range eventTypes {
		b.Subscribe(t, handler)
	}
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		if err := handler(event); err != nil {
			b.logger.Warn().Err(err).Str("event_type", event.Type).Msg("event handler failed")
		}
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
