package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"peluqueria/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
servicios:
  - nombre: Corte clasico
    descripcion: Corte con lavado
    precio: "3500"
    duracion_minutos: 30
    tipo: corte
  - nombre: Tintura completa
    precio: "12000.50"
    duracion_minutos: 90
    tipo: TINTURA
`

func TestParse(t *testing.T) {
	servicios, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, servicios, 2)

	assert.Equal(t, "Corte clasico", servicios[0].Nombre)
	assert.Equal(t, models.TipoCorte, servicios[0].TipoServicio)
	assert.True(t, decimal.RequireFromString("3500").Equal(servicios[0].Precio))
	assert.True(t, servicios[0].Activo)
	assert.True(t, decimal.RequireFromString("12000.50").Equal(servicios[1].Precio))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("servicios:\n  - nombre: X\n    precio: abc\n    tipo: CORTE\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("servicios:\n  - nombre: X\n    precio: \"10\"\n    tipo: MASAJE\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("servicios: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	servicios, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, servicios)

	path := filepath.Join(dir, "servicios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	servicios, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, servicios, 2)
}
