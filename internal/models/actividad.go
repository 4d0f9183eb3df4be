package models

import "time"

// Actividad is one entry of the recent activity feed.
type Actividad struct {
	Tipo      string      `json:"tipo"`
	TurnoID   int64       `json:"turno_id"`
	ClienteID int64       `json:"cliente_id"`
	Servicio  string      `json:"servicio,omitempty"`
	Estado    EstadoTurno `json:"estado"`
	FechaHora time.Time   `json:"fecha_hora"`
	Fecha     time.Time   `json:"fecha"`
}
