package client

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu      sync.RWMutex
	clients map[string]*Client
	order   []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		clients: make(map[string]*Client),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Generate UUID if not already set
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	cp := *c
	r.clients[c.ID] = &cp
	r.order = append(r.order, c.ID)
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.clients[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()

	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Client, error) {
	return r.list(ownerID, func(*Client) bool { return true }), nil
}

func (r *InMemoryRepository) ListActive(ctx context.Context, ownerID string) ([]*Client, error) {
	return r.list(ownerID, (*Client).IsActive), nil
}

func (r *InMemoryRepository) list(ownerID string, keep func(*Client) bool) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Client
	for _, id := range r.order {
		c, ok := r.clients[id]
		if !ok || c.OwnerID != ownerID || !keep(c) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return ErrNotFound
	}
	delete(r.clients, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
