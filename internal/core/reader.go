package core

import (
	"context"
	"fmt"

	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/order"
	"mealbox/internal/pause"
)

// Readers used by the billing, delivery and calendar features. The
// repositories of each feature package satisfy them directly.

type ClientReader interface {
	GetByID(ctx context.Context, id string) (*client.Client, error)
	ListActive(ctx context.Context, ownerID string) ([]*client.Client, error)
}

type PauseReader interface {
	ListByClient(ctx context.Context, clientID string) ([]pause.Pause, error)
}

type OrderReader interface {
	ListByClient(ctx context.Context, clientID string) ([]order.Order, error)
	ListInRange(ctx context.Context, clientID string, start, end calendar.Date) ([]order.Order, error)
}

// Snapshot is everything the pure calculators need about one client.
type Snapshot struct {
	Client *client.Client
	Pauses []pause.Pause
	Orders []order.Order
}

// LoadSnapshot fetches pauses and orders for c. Both must succeed before
// anything is computed from them.
func LoadSnapshot(ctx context.Context, c *client.Client, pauses PauseReader, orders OrderReader) (Snapshot, error) {
	ps, err := pauses.ListByClient(ctx, c.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load pauses for client %s: %w", c.ID, err)
	}
	ords, err := orders.ListByClient(ctx, c.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load orders for client %s: %w", c.ID, err)
	}
	return Snapshot{Client: c, Pauses: ps, Orders: ords}, nil
}

// LoadPeriodSnapshot is LoadSnapshot with orders limited to period, for
// callers that never look outside it.
func LoadPeriodSnapshot(ctx context.Context, c *client.Client, pauses PauseReader, orders OrderReader, period calendar.Range) (Snapshot, error) {
	ps, err := pauses.ListByClient(ctx, c.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load pauses for client %s: %w", c.ID, err)
	}
	ords, err := orders.ListInRange(ctx, c.ID, period.Start, period.End)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load orders for client %s in %s: %w", c.ID, period, err)
	}
	return Snapshot{Client: c, Pauses: ps, Orders: ords}, nil
}

// OwnedClient loads a client and hides it from other owners.
func OwnedClient(ctx context.Context, clients ClientReader, ownerID, id string) (*client.Client, error) {
	c, err := clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, client.ErrNotFound
	}
	return c, nil
}
