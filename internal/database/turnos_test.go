package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"peluqueria/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnoCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	clienteID, servicioID := seed(t, db)
	fecha := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	turno := newTurno(clienteID, servicioID, fecha)
	turno.Notas = "primera vez"

	require.NoError(t, db.CreateTurno(ctx, turno))
	assert.Greater(t, turno.ID, int64(0))

	t.Run("GetJoinsClienteAndServicio", func(t *testing.T) {
		got, err := db.GetTurno(ctx, turno.ID)
		require.NoError(t, err)
		assert.True(t, fecha.Equal(got.FechaHora))
		assert.Equal(t, "primera vez", got.Notas)
		assert.Equal(t, models.EstadoConfirmado, got.Estado)
		assert.Equal(t, models.PagoPendiente, got.EstadoPago)
		assert.Empty(t, got.FormaPago)
		assert.True(t, got.MontoPagado.IsZero())
		assert.WithinDuration(t, time.Now(), got.FechaCreacion, time.Minute)

		require.NotNil(t, got.Cliente)
		assert.Equal(t, clienteID, got.Cliente.ID)
		assert.Equal(t, "Gomez", got.Cliente.Apellido)
		require.NotNil(t, got.Servicio)
		assert.Equal(t, servicioID, got.Servicio.ID)
		assert.True(t, got.Servicio.Precio.Equal(decimal.NewFromInt(500)))
		assert.True(t, got.SaldoPendiente().Equal(decimal.NewFromInt(500)))
	})

	t.Run("Update", func(t *testing.T) {
		got, err := db.GetTurno(ctx, turno.ID)
		require.NoError(t, err)
		creado := got.FechaCreacion

		got.Estado = models.EstadoAusente
		got.EstadoPago = models.PagoPagado
		got.FormaPago = models.FormaEfectivo
		got.MontoPagado = decimal.NewFromInt(200)
		got.FechaCreacion = time.Now().AddDate(-1, 0, 0)
		require.NoError(t, db.UpdateTurno(ctx, got))

		updated, err := db.GetTurno(ctx, turno.ID)
		require.NoError(t, err)
		assert.Equal(t, models.EstadoAusente, updated.Estado)
		assert.Equal(t, models.PagoPagado, updated.EstadoPago)
		assert.Equal(t, models.FormaEfectivo, updated.FormaPago)
		assert.True(t, updated.MontoPagado.Equal(decimal.NewFromInt(200)))
		assert.True(t, creado.Equal(updated.FechaCreacion))
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := db.GetTurno(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)

		missing := newTurno(clienteID, servicioID, fecha)
		missing.ID = 9999
		assert.ErrorIs(t, db.UpdateTurno(ctx, missing), ErrNoRowsAffected)
		assert.ErrorIs(t, db.DeleteTurno(ctx, 9999), ErrNoRowsAffected)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.DeleteTurno(ctx, turno.ID))
		_, err := db.GetTurno(ctx, turno.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListTurnos(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	clienteID, servicioID := seed(t, db)
	otro := newCliente("Bruno", "Diaz")
	require.NoError(t, db.CreateCliente(ctx, otro))

	day := time.Date(2024, 5, 20, 0, 0, 0, 0, time.Local)
	t1 := newTurno(clienteID, servicioID, day.Add(15*time.Hour))
	t2 := newTurno(clienteID, servicioID, day.Add(9*time.Hour))
	t3 := newTurno(otro.ID, servicioID, day.AddDate(0, 0, 1).Add(11*time.Hour))
	t3.Estado = models.EstadoCancelado
	for _, tr := range []*models.Turno{t1, t2, t3} {
		require.NoError(t, db.CreateTurno(ctx, tr))
	}

	t.Run("AllDescending", func(t *testing.T) {
		all, err := db.ListTurnos(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int64{t3.ID, t1.ID, t2.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})
	})

	t.Run("ByFechaAscending", func(t *testing.T) {
		list, err := db.ListTurnosByFecha(ctx, day.Add(12*time.Hour))
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, t2.ID, list[0].ID)
		assert.Equal(t, t1.ID, list[1].ID)
	})

	t.Run("ByCliente", func(t *testing.T) {
		list, err := db.ListTurnosByCliente(ctx, otro.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Bruno", list[0].Cliente.Nombre)
	})

	t.Run("ByEstado", func(t *testing.T) {
		list, err := db.ListTurnosByEstado(ctx, models.EstadoConfirmado)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		list, err = db.ListTurnosByEstado(ctx, models.EstadoCompletado)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestExistsTurnoAtSlot(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	clienteID, servicioID := seed(t, db)
	otroServicio := newServicio("Barba", 400, models.TipoBarba)
	require.NoError(t, db.CreateServicio(ctx, otroServicio))

	slot := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	turno := newTurno(clienteID, servicioID, slot)
	require.NoError(t, db.CreateTurno(ctx, turno))

	exists, err := db.ExistsTurnoAtSlot(ctx, servicioID, slot)
	require.NoError(t, err)
	assert.True(t, exists)

	// exact timestamp only
	exists, err = db.ExistsTurnoAtSlot(ctx, servicioID, slot.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = db.ExistsTurnoAtSlot(ctx, otroServicio.ID, slot)
	require.NoError(t, err)
	assert.False(t, exists)

	turno.Estado = models.EstadoCancelado
	require.NoError(t, db.UpdateTurno(ctx, turno))
	exists, err = db.ExistsTurnoAtSlot(ctx, servicioID, slot)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateTurnoIfFree(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	clienteID, servicioID := seed(t, db)
	slot := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	first := newTurno(clienteID, servicioID, slot)
	require.NoError(t, db.CreateTurnoIfFree(ctx, first))
	assert.Greater(t, first.ID, int64(0))

	second := newTurno(clienteID, servicioID, slot)
	assert.ErrorIs(t, db.CreateTurnoIfFree(ctx, second), ErrSlotTaken)
	assert.Zero(t, second.ID)
}

func TestConcurrentCreateTurnoIfFree(t *testing.T) {
	logger := zerolog.Nop()
	db, err := NewDB(filepath.Join(t.TempDir(), "concurrency.db"), &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	clienteID, servicioID := seed(t, db)
	slot := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			results <- db.CreateTurnoIfFree(ctx, newTurno(clienteID, servicioID, slot))
		}()
	}
	wg.Wait()
	close(results)

	success, taken := 0, 0
	for err := range results {
		if err == nil {
			success++
		} else if assert.ErrorIs(t, err, ErrSlotTaken) {
			taken++
		}
	}
	assert.Equal(t, 1, success)
	assert.Equal(t, numGoroutines-1, taken)
}
