package firestore

import (
	"context"
	"slices"
	"time"

	"mealbox/internal/client"

	fs "cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

type ClientRepository struct {
	client *fs.Client
}

func (r *ClientRepository) doc(id string) *fs.DocumentRef {
	return r.client.Collection(clientsCollection).Doc(id)
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.doc(c.ID).Create(ctx, toClientDoc(c))
	return err
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	existing, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()

	_, err = r.doc(c.ID).Set(ctx, toClientDoc(c))
	return err
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*client.Client, error) {
	snap, err := r.doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, client.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var d clientDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toClient(snap.Ref.ID)
}

func (r *ClientRepository) ListByOwner(ctx context.Context, ownerID string) ([]*client.Client, error) {
	return r.query(ctx, r.client.Collection(clientsCollection).Where("ownerId", "==", ownerID))
}

func (r *ClientRepository) ListActive(ctx context.Context, ownerID string) ([]*client.Client, error) {
	return r.query(ctx, r.client.Collection(clientsCollection).
		Where("ownerId", "==", ownerID).
		Where("status", "==", string(client.Active)))
}

func (r *ClientRepository) UpdateStatus(ctx context.Context, id string, status client.Status) error {
	_, err := r.doc(id).Update(ctx, []fs.Update{
		{Path: "status", Value: string(status)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if isNotFound(err) {
		return client.ErrNotFound
	}
	return err
}

// Delete removes the client together with its pauses and orders.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	ref := r.doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return client.ErrNotFound
		}
		return err
	}

	for _, sub := range []string{pausesCollection, ordersCollection} {
		if err := deleteAll(ctx, r.client, ref.Collection(sub)); err != nil {
			return err
		}
	}
	_, err := ref.Delete(ctx)
	return err
}

// query sorts in memory by creation time; equality filters alone need no
// composite index.
func (r *ClientRepository) query(ctx context.Context, q fs.Query) ([]*client.Client, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	clients := make([]*client.Client, 0, len(snaps))
	for _, snap := range snaps {
		var d clientDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		c, err := d.toClient(snap.Ref.ID)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}

	slices.SortStableFunc(clients, func(a, b *client.Client) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return clients, nil
}
