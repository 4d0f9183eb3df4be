// Package catalog reads the servicio catalog the salon seeds on startup.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"peluqueria/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type entry struct {
	Nombre          string `yaml:"nombre"`
	Descripcion     string `yaml:"descripcion"`
	Precio          string `yaml:"precio"`
	DuracionMinutos int    `yaml:"duracion_minutos"`
	Tipo            string `yaml:"tipo"`
}

type file struct {
	Servicios []entry `yaml:"servicios"`
}

// Load reads a catalog file. A missing file yields an empty catalog.
func Load(path string) ([]*models.Servicio, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]*models.Servicio, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	out := make([]*models.Servicio, 0, len(f.Servicios))
	for i, e := range f.Servicios {
		precio, err := decimal.NewFromString(strings.TrimSpace(e.Precio))
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): invalid precio %q", i, e.Nombre, e.Precio)
		}
		tipo, ok := models.ParseTipoServicio(e.Tipo)
		if !ok {
			return nil, fmt.Errorf("catalog entry %d (%s): unknown tipo %q", i, e.Nombre, e.Tipo)
		}
		out = append(out, &models.Servicio{
			Nombre:          strings.TrimSpace(e.Nombre),
			Descripcion:     e.Descripcion,
			Precio:          precio,
			DuracionMinutos: e.DuracionMinutos,
			TipoServicio:    tipo,
			Activo:          true,
		})
	}
	return out, nil
}
