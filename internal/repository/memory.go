package repository

import (
	"context"
	"sync"

	"peluqueria/internal/models"
)

// MemoryActivityStore is an in-process ring of the newest feed entries.
type MemoryActivityStore struct {
	mu      sync.RWMutex
	entries []models.Actividad // oldest first
	size    int
}

func NewMemoryActivityStore(size int) *MemoryActivityStore {
	if size <= 0 {
		size = models.DefaultActivityFeedSize
	}
	return &MemoryActivityStore{size: size}
}

func (r *MemoryActivityStore) Append(_ context.Context, entry models.Actividad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	if over := len(r.entries) - r.size; over > 0 {
		r.entries = append([]models.Actividad(nil), r.entries[over:]...)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *MemoryActivityStore) Recent(_ context.Context, limit int) ([]models.Actividad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]models.Actividad, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}
