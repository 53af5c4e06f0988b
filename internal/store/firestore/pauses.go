package firestore

import (
	"context"
	"time"

	"mealbox/internal/pause"

	fs "cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

type PauseRepository struct {
	client *fs.Client
}

func (r *PauseRepository) col(clientID string) *fs.CollectionRef {
	return r.client.Collection(clientsCollection).Doc(clientID).Collection(pausesCollection)
}

func (r *PauseRepository) Create(ctx context.Context, p *pause.Pause) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now().UTC()

	_, err := r.col(p.ClientID).Doc(p.ID).Create(ctx, toPauseDoc(p))
	return err
}

func (r *PauseRepository) ListByClient(ctx context.Context, clientID string) ([]pause.Pause, error) {
	snaps, err := r.col(clientID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	pauses := make([]pause.Pause, 0, len(snaps))
	for _, snap := range snaps {
		var d pauseDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		p, err := d.toPause(clientID, snap.Ref.ID)
		if err != nil {
			return nil, err
		}
		pauses = append(pauses, p)
	}
	return pauses, nil
}

func (r *PauseRepository) Delete(ctx context.Context, clientID, id string) error {
	ref := r.col(clientID).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return pause.ErrNotFound
		}
		return err
	}
	_, err := ref.Delete(ctx)
	return err
}
