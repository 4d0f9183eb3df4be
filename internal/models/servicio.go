package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type TipoServicio string

const (
	TipoCorte       TipoServicio = "CORTE"
	TipoTintura     TipoServicio = "TINTURA"
	TipoPeinado     TipoServicio = "PEINADO"
	TipoAlisado     TipoServicio = "ALISADO"
	TipoMechas      TipoServicio = "MECHAS"
	TipoBarba       TipoServicio = "BARBA"
	TipoCejas       TipoServicio = "CEJAS"
	TipoTratamiento TipoServicio = "TRATAMIENTO"
)

var tiposServicio = []TipoServicio{
	TipoCorte, TipoTintura, TipoPeinado, TipoAlisado,
	TipoMechas, TipoBarba, TipoCejas, TipoTratamiento,
}

// TiposServicio lists every category in display order.
func TiposServicio() []TipoServicio {
	return append([]TipoServicio(nil), tiposServicio...)
}

func (t TipoServicio) Valid() bool {
	for _, v := range tiposServicio {
		if v == t {
			return true
		}
	}
	return false
}

// ParseTipoServicio accepts any letter case.
func ParseTipoServicio(s string) (TipoServicio, bool) {
	t := TipoServicio(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

type Servicio struct {
	ID              int64           `json:"id"`
	Nombre          string          `json:"nombre"`
	Descripcion     string          `json:"descripcion"`
	Precio          decimal.Decimal `json:"precio"`
	DuracionMinutos int             `json:"duracion_minutos"`
	TipoServicio    TipoServicio    `json:"tipo_servicio"`
	Activo          bool            `json:"activo"`
}
