package order

import (
	"context"
	"errors"

	"mealbox/internal/calendar"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	ListByClient(ctx context.Context, clientID string) ([]Order, error)
	ListInRange(ctx context.Context, clientID string, start, end calendar.Date) ([]Order, error)
	Delete(ctx context.Context, clientID, id string) error
}
