package metrics

import (
	"sync"

	"peluqueria/internal/events"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peluqueria",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	turnoEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peluqueria",
			Name:      "turno_events_total",
			Help:      "Turno lifecycle events by type.",
		},
		[]string{"event"},
	)

	paymentsAmount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "peluqueria",
			Name:      "payments_amount_total",
			Help:      "Sum of amounts recorded on paid turnos.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, turnoEvents, paymentsAmount)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncTurnoEvent increments the counter for a turno event type.
func IncTurnoEvent(event string) {
	turnoEvents.WithLabelValues(event).Inc()
}

// EventHandler counts every turno event; payments also add what they collected
// to the amount total. Counters only go up, so non-positive amounts are skipped.
func EventHandler(e *events.Event) error {
	IncTurnoEvent(e.Type)
	if e.Type != events.EventTurnoPaid && e.Type != events.EventTurnoCompleted {
		return nil
	}

	var p events.TurnoEventPayload
	if err := e.Decode(&p); err != nil {
		return err
	}
	if !p.Monto.IsPositive() {
		return nil
	}
	amount, _ := p.Monto.Float64()
	paymentsAmount.Add(amount)
	return nil
}
