package pause

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	pauses map[string][]Pause
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		pauses: make(map[string][]Pause),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, p *Pause) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now().UTC()
	r.pauses[p.ClientID] = append(r.pauses[p.ClientID], *p)
	return nil
}

func (r *InMemoryRepository) ListByClient(ctx context.Context, clientID string) ([]Pause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Pause(nil), r.pauses[clientID]...), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, clientID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.pauses[clientID]
	for i, p := range list {
		if p.ID == id {
			r.pauses[clientID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
