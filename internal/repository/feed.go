package repository

import (
	"context"
	"fmt"
	"time"

	"peluqueria/internal/domain"
	"peluqueria/internal/events"
	"peluqueria/internal/models"
)

// ActivityHandler turns turno events into activity feed entries.
func ActivityHandler(store domain.ActivityStore, timeout time.Duration) events.EventHandler {
	return func(e *events.Event) error {
		var p events.TurnoEventPayload
		if err := e.Decode(&p); err != nil {
			return fmt.Errorf("decode %s payload: %w", e.Type, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return store.Append(ctx, models.Actividad{
			Tipo:      e.Type,
			TurnoID:   p.TurnoID,
			ClienteID: p.ClienteID,
			Servicio:  p.Servicio,
			Estado:    models.EstadoTurno(p.Estado),
			FechaHora: p.FechaHora,
			Fecha:     e.CreatedAt,
		})
	}
}
