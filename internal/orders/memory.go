package orders

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps orders in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]Order
}

// NewMemoryRepository returns an empty in-process journal.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[uuid.UUID]Order)}
}

// Save stores o, replacing any order with the same id.
func (r *MemoryRepository) Save(_ context.Context, o Order) error {
	r.mu.Lock()
	r.orders[o.ID] = o
	r.mu.Unlock()
	return nil
}

// Get returns the order with id or ErrNotFound.
func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

// Acknowledge marks the order done. Only its owner may acknowledge it, and
// the first acknowledgement time is kept.
func (r *MemoryRepository) Acknowledge(_ context.Context, id uuid.UUID, userID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return ErrNotFound
	}
	if o.AcknowledgedAt == nil {
		t := at.UTC()
		o.AcknowledgedAt = &t
		r.orders[id] = o
	}
	return nil
}

// Stats summarizes the journal for /stats.
func (r *MemoryRepository) Stats(context.Context) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var st Stats
	users := make(map[int64]struct{})
	for _, o := range r.orders {
		st.Total++
		if o.AcknowledgedAt != nil {
			st.Acknowledged++
		}
		if o.Degraded {
			st.Degraded++
		}
		users[o.UserID] = struct{}{}
	}
	st.Users = len(users)
	return st, nil
}
