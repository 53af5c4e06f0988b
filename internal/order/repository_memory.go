package order

import (
	"context"
	"sync"
	"time"

	"mealbox/internal/calendar"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string][]Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[string][]Order),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.CreatedAt = time.Now().UTC()
	r.orders[o.ClientID] = append(r.orders[o.ClientID], *o)
	return nil
}

func (r *InMemoryRepository) ListByClient(ctx context.Context, clientID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Order(nil), r.orders[clientID]...), nil
}

func (r *InMemoryRepository) ListInRange(ctx context.Context, clientID string, start, end calendar.Date) ([]Order, error) {
	all, _ := r.ListByClient(ctx, clientID)
	return Collect(all, start, end), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, clientID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.orders[clientID]
	for i, o := range list {
		if o.ID == id {
			r.orders[clientID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
