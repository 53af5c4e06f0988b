package firestore

import (
	"context"
	"time"

	"mealbox/internal/calendar"
	"mealbox/internal/order"

	fs "cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

type OrderRepository struct {
	client *fs.Client
}

func (r *OrderRepository) col(clientID string) *fs.CollectionRef {
	return r.client.Collection(clientsCollection).Doc(clientID).Collection(ordersCollection)
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.CreatedAt = time.Now().UTC()

	_, err := r.col(o.ClientID).Doc(o.ID).Create(ctx, toOrderDoc(o))
	return err
}

func (r *OrderRepository) ListByClient(ctx context.Context, clientID string) ([]order.Order, error) {
	return r.query(ctx, clientID, r.col(clientID).OrderBy("orderDate", fs.Asc))
}

// ListInRange relies on ISO date strings sorting like the dates they name.
func (r *OrderRepository) ListInRange(ctx context.Context, clientID string, start, end calendar.Date) ([]order.Order, error) {
	if end.Before(start) {
		return nil, nil
	}
	return r.query(ctx, clientID, r.col(clientID).
		Where("orderDate", ">=", start.String()).
		Where("orderDate", "<=", end.String()).
		OrderBy("orderDate", fs.Asc))
}

func (r *OrderRepository) Delete(ctx context.Context, clientID, id string) error {
	ref := r.col(clientID).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return order.ErrNotFound
		}
		return err
	}
	_, err := ref.Delete(ctx)
	return err
}

func (r *OrderRepository) query(ctx context.Context, clientID string, q fs.Query) ([]order.Order, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	orders := make([]order.Order, 0, len(snaps))
	for _, snap := range snaps {
		var d orderDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		o, err := d.toOrder(clientID, snap.Ref.ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
