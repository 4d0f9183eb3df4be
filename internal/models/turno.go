package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type EstadoTurno string

const (
	EstadoConfirmado EstadoTurno = "CONFIRMADO"
	EstadoCompletado EstadoTurno = "COMPLETADO"
	EstadoCancelado  EstadoTurno = "CANCELADO"
	EstadoAusente    EstadoTurno = "AUSENTE"
)

func (e EstadoTurno) Valid() bool {
	switch e {
	case EstadoConfirmado, EstadoCompletado, EstadoCancelado, EstadoAusente:
		return true
	}
	return false
}

type EstadoPago string

const (
	PagoPendiente EstadoPago = "PENDIENTE"
	PagoPagado    EstadoPago = "PAGADO"
)

func (e EstadoPago) Valid() bool {
	return e == PagoPendiente || e == PagoPagado
}

type FormaPago string

const (
	FormaEfectivo       FormaPago = "EFECTIVO"
	FormaTarjetaDebito  FormaPago = "TARJETA_DEBITO"
	FormaTarjetaCredito FormaPago = "TARJETA_CREDITO"
	FormaTransferencia  FormaPago = "TRANSFERENCIA"
)

func (f FormaPago) Valid() bool {
	switch f {
	case FormaEfectivo, FormaTarjetaDebito, FormaTarjetaCredito, FormaTransferencia:
		return true
	}
	return false
}

type Turno struct {
	ID            int64           `json:"id"`
	ClienteID     int64           `json:"cliente_id" validate:"gt=0"`
	ServicioID    int64           `json:"servicio_id" validate:"gt=0"`
	Cliente       *Cliente        `json:"cliente,omitempty" validate:"-"`
	Servicio      *Servicio       `json:"servicio,omitempty" validate:"-"`
	FechaHora     time.Time       `json:"fecha_hora" validate:"required"`
	Notas         string          `json:"notas,omitempty" validate:"max=500"`
	Estado        EstadoTurno     `json:"estado"`
	EstadoPago    EstadoPago      `json:"estado_pago"`
	FormaPago     FormaPago       `json:"forma_pago,omitempty"` // empty until a payment is registered
	MontoPagado   decimal.Decimal `json:"monto_pagado"`
	FechaCreacion time.Time       `json:"fecha_creacion"`
}

// SaldoPendiente is servicio.precio - montoPagado. Zero when the servicio
// was not loaded.
func (t *Turno) SaldoPendiente() decimal.Decimal {
	if t.Servicio == nil {
		return decimal.Zero
	}
	return t.Servicio.Precio.Sub(t.MontoPagado)
}

type turnoJSON Turno

// MarshalJSON adds the derived saldo_pendiente to the stored fields.
func (t Turno) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		turnoJSON
		SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
	}{turnoJSON(t), t.SaldoPendiente()})
}

// Activo reports whether the turno still occupies its slot.
func (t *Turno) Activo() bool {
	return t.Estado != EstadoCancelado
}

// ResumenCaja is the daily dashboard figure.
type ResumenCaja struct {
	Fecha         time.Time       `json:"fecha"`
	TurnosHoy     int             `json:"turnos_hoy"`
	TotalPagado   decimal.Decimal `json:"total_pagado"`
	TurnosPagados int             `json:"turnos_pagados"`
}
