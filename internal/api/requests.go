package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"peluqueria/internal/models"

	"github.com/shopspring/decimal"
)

type clienteRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

func (req clienteRequest) apply(c *models.Cliente) {
	c.Nombre = req.Nombre
	c.Apellido = req.Apellido
	c.Telefono = req.Telefono
	c.Email = req.Email
}

// servicioRequest uses pointers so PUT can patch single fields.
type servicioRequest struct {
	Nombre          *string          `json:"nombre"`
	Descripcion     *string          `json:"descripcion"`
	Precio          *decimal.Decimal `json:"precio"`
	DuracionMinutos *int             `json:"duracion_minutos"`
	TipoServicio    *string          `json:"tipo_servicio"`
	Activo          *bool            `json:"activo"`
}

func (req servicioRequest) apply(s *models.Servicio) {
	if req.Nombre != nil {
		s.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		s.Descripcion = *req.Descripcion
	}
	if req.Precio != nil {
		s.Precio = *req.Precio
	}
	if req.DuracionMinutos != nil {
		s.DuracionMinutos = *req.DuracionMinutos
	}
	if req.TipoServicio != nil {
		s.TipoServicio = models.TipoServicio(strings.ToUpper(strings.TrimSpace(*req.TipoServicio)))
	}
	if req.Activo != nil {
		s.Activo = *req.Activo
	}
}

type turnoRequest struct {
	ClienteID   *int64           `json:"cliente_id"`
	ServicioID  *int64           `json:"servicio_id"`
	FechaHora   *string          `json:"fecha_hora"`
	Notas       *string          `json:"notas"`
	Estado      *string          `json:"estado"`
	EstadoPago  *string          `json:"estado_pago"`
	FormaPago   *string          `json:"forma_pago"`
	MontoPagado *decimal.Decimal `json:"monto_pagado"`
}

func (req turnoRequest) apply(t *models.Turno) error {
	if req.ClienteID != nil {
		t.ClienteID = *req.ClienteID
	}
	if req.ServicioID != nil {
		t.ServicioID = *req.ServicioID
	}
	if req.FechaHora != nil {
		fh, err := parseFechaHora(*req.FechaHora)
		if err != nil {
			return err
		}
		t.FechaHora = fh
	}
	if req.Notas != nil {
		t.Notas = *req.Notas
	}
	if req.Estado != nil {
		t.Estado = models.EstadoTurno(strings.ToUpper(*req.Estado))
	}
	if req.EstadoPago != nil {
		t.EstadoPago = models.EstadoPago(strings.ToUpper(*req.EstadoPago))
	}
	if req.FormaPago != nil {
		t.FormaPago = models.FormaPago(strings.ToUpper(*req.FormaPago))
	}
	if req.MontoPagado != nil {
		t.MontoPagado = *req.MontoPagado
	}
	return nil
}

type pagoRequest struct {
	Monto     decimal.Decimal `json:"monto"`
	FormaPago string          `json:"forma_pago"`
}

func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %q", r.PathValue("id"))
	}
	return id, nil
}

// parseFechaHora reads wall-clock salon time, e.g. 2024-03-01T15:30.
func parseFechaHora(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(models.APIDateTimeLayout, raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(time.Local), nil
	}
	return time.Time{}, fmt.Errorf("invalid fecha_hora format; expected YYYY-MM-DDTHH:MM")
}

func parseFecha(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format; expected YYYY-MM-DD")
	}
	return t, nil
}
