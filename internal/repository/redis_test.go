package repository

import (
	"context"
	"testing"
	"time"

	"peluqueria/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func TestRedisActivityStore(t *testing.T) {
	ctx := context.Background()

	t.Run("AppendAndRecent", func(t *testing.T) {
		_, client := setupRedis(t)
		store := NewRedisActivityStore(client, 10, time.Hour)
		fecha := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

		require.NoError(t, store.Append(ctx, models.Actividad{
			Tipo: "turno_created", TurnoID: 1, Servicio: "Corte clasico",
			Estado: models.EstadoConfirmado, FechaHora: fecha,
		}))
		require.NoError(t, store.Append(ctx, models.Actividad{
			Tipo: "turno_completed", TurnoID: 1, Estado: models.EstadoCompletado, FechaHora: fecha,
		}))

		got, err := store.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "turno_completed", got[0].Tipo)
		assert.Equal(t, "Corte clasico", got[1].Servicio)
		assert.True(t, fecha.Equal(got[1].FechaHora))
	})

	t.Run("TrimAndTTL", func(t *testing.T) {
		s, client := setupRedis(t)
		store := NewRedisActivityStore(client, 3, time.Hour)
		for i := int64(1); i <= 5; i++ {
			require.NoError(t, store.Append(ctx, models.Actividad{TurnoID: i}))
		}

		got, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, int64(5), got[0].TurnoID)
		assert.Equal(t, time.Hour, s.TTL(activityKey))

		s.FastForward(2 * time.Hour)
		got, err = store.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ServerDown", func(t *testing.T) {
		s, client := setupRedis(t)
		store := NewRedisActivityStore(client, 3, time.Hour)
		s.Close()

		assert.Error(t, store.Append(ctx, models.Actividad{TurnoID: 1}))
		_, err := store.Recent(ctx, 1)
		assert.Error(t, err)
		assert.Error(t, Ping(ctx, client))
	})
}
