package infrastructure

import (
	"context"
	"sync"

	"github.com/orderstack/order-system/logging-service/domain"
)

const defaultCapacity = 1000

// MemoryLogRepository keeps the most recent entries in a bounded ring.
// The centralized log is diagnostic output, not durable storage.
type MemoryLogRepository struct {
	mu       sync.RWMutex
	entries  []*domain.LogEntry
	capacity int
}

// NewMemoryLogRepository creates an in-memory log store
func NewMemoryLogRepository() *MemoryLogRepository {
	return &MemoryLogRepository{
		entries:  make([]*domain.LogEntry, 0, defaultCapacity),
		capacity: defaultCapacity,
	}
}

// Append stores a log entry, evicting the oldest when full
func (r *MemoryLogRepository) Append(_ context.Context, entry *domain.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) >= r.capacity {
		r.entries = r.entries[1:]
	}
	r.entries = append(r.entries, entry)

	return nil
}

// Recent returns up to limit entries, newest last
func (r *MemoryLogRepository) Recent(_ context.Context, limit int) ([]*domain.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}

	start := len(r.entries) - limit
	out := make([]*domain.LogEntry, limit)
	copy(out, r.entries[start:])

	return out, nil
}
