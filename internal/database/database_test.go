package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"peluqueria/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	return db
}

func newCliente(nombre, apellido string) *models.Cliente {
	return &models.Cliente{
		Nombre:        nombre,
		Apellido:      apellido,
		Telefono:      "1155551234",
		FechaRegistro: time.Now(),
	}
}

func newServicio(nombre string, precio int64, tipo models.TipoServicio) *models.Servicio {
	return &models.Servicio{
		Nombre:          nombre,
		Descripcion:     "desc",
		Precio:          decimal.NewFromInt(precio),
		DuracionMinutos: 30,
		TipoServicio:    tipo,
		Activo:          true,
	}
}

func newTurno(clienteID, servicioID int64, fechaHora time.Time) *models.Turno {
	return &models.Turno{
		ClienteID:     clienteID,
		ServicioID:    servicioID,
		FechaHora:     fechaHora,
		Estado:        models.EstadoConfirmado,
		EstadoPago:    models.PagoPendiente,
		MontoPagado:   decimal.Zero,
		FechaCreacion: time.Now(),
	}
}

// seed creates one cliente and one servicio and returns their ids.
func seed(t *testing.T, db *DB) (clienteID, servicioID int64) {
	ctx := context.Background()
	c := newCliente("Ana", "Gomez")
	require.NoError(t, db.CreateCliente(ctx, c))
	s := newServicio("Corte", 500, models.TipoCorte)
	require.NoError(t, db.CreateServicio(ctx, s))
	return c.ID, s.ID
}

func TestNewDB_DirectoryCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
}

func TestNewDB_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "salon.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	require.NoError(t, db.CreateCliente(context.Background(), newCliente("Ana", "Gomez")))
	require.NoError(t, db.Close())

	// createTables is idempotent
	db, err = NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	clientes, err := db.ListClientes(context.Background())
	require.NoError(t, err)
	assert.Len(t, clientes, 1)
}

func TestDB_ForeignKeysEnabled(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	var enabled int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled))
	assert.Equal(t, 1, enabled)
}
