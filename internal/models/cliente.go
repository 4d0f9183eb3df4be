package models

import (
	"strings"
	"time"
)

type Cliente struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre" validate:"required,max=100,nombre"`
	Apellido      string    `json:"apellido" validate:"required,max=100"`
	Telefono      string    `json:"telefono" validate:"required,numeric,min=10,max=15"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email,max=150"`
	FechaRegistro time.Time `json:"fecha_registro"` // set on creation, never updated
}

// NombreCompleto returns "Nombre Apellido".
func (c Cliente) NombreCompleto() string {
	return strings.TrimSpace(c.Nombre + " " + c.Apellido)
}
