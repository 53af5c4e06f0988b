package client

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("client not found")

// Repository defines the data-access contract for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Client, error)
	ListActive(ctx context.Context, ownerID string) ([]*Client, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
