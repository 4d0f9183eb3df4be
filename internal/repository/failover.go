package repository

import (
	"context"
	"sync/atomic"
	"time"

	"peluqueria/internal/domain"
	"peluqueria/internal/models"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverActivityStore writes to primary (Redis) and switches to fallback
// (memory) while primary is failing, probing it again every recoveryInterval.
type FailoverActivityStore struct {
	primary   domain.ActivityStore
	fallback  domain.ActivityStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos
	now       func() time.Time
}

func NewFailoverActivityStore(primary, fallback domain.ActivityStore, logger *zerolog.Logger) *FailoverActivityStore {
	return &FailoverActivityStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (r *FailoverActivityStore) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	return r.now().Sub(time.Unix(0, r.lastCheck.Load())) > recoveryInterval
}

func (r *FailoverActivityStore) markDown(err error) {
	if !r.isDown.Swap(true) {
		r.logger.Error().Err(err).Msg("primary activity store failed, falling back to memory")
	}
	r.lastCheck.Store(r.now().UnixNano())
}

func (r *FailoverActivityStore) markUp() {
	if r.isDown.Swap(false) {
		r.logger.Info().Msg("primary activity store recovered")
	}
}

func (r *FailoverActivityStore) Append(ctx context.Context, entry models.Actividad) error {
	if r.usePrimary() {
		err := r.primary.Append(ctx, entry)
		if err == nil {
			r.markUp()
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.Append(ctx, entry)
}

func (r *FailoverActivityStore) Recent(ctx context.Context, limit int) ([]models.Actividad, error) {
	if r.usePrimary() {
		entries, err := r.primary.Recent(ctx, limit)
		if err == nil {
			r.markUp()
			return entries, nil
		}
		r.markDown(err)
	}
	return r.fallback.Recent(ctx, limit)
}
