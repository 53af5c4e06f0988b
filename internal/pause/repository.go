package pause

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("pause not found")

type Repository interface {
	Create(ctx context.Context, p *Pause) error
	ListByClient(ctx context.Context, clientID string) ([]Pause, error)
	Delete(ctx context.Context, clientID, id string) error
}
