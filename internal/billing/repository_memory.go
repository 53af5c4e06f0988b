package billing

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	bills map[string]*Bill
	order []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		bills: make(map[string]*Bill),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, b *Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	cp := *b
	r.bills[b.ID] = &cp
	r.order = append(r.order, b.ID)
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bills[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

// ListByOwner returns the newest bills first.
func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string, f ListFilter) ([]*Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Bill
	for _, id := range slices.Backward(r.order) {
		b := r.bills[id]
		if b.OwnerID != ownerID || !f.Match(b) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bills[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bills[id]; !ok {
		return ErrNotFound
	}
	delete(r.bills, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}
