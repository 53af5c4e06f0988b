package billing

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("bill not found")

type Repository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id string) (*Bill, error)
	ListByOwner(ctx context.Context, ownerID string, f ListFilter) ([]*Bill, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
