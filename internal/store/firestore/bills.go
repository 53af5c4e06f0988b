package firestore

import (
	"context"
	"slices"

	"mealbox/internal/billing"

	fs "cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

type BillRepository struct {
	client *fs.Client
}

func (r *BillRepository) doc(id string) *fs.DocumentRef {
	return r.client.Collection(billsCollection).Doc(id)
}

func (r *BillRepository) Create(ctx context.Context, b *billing.Bill) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	d, err := toBillDoc(b)
	if err != nil {
		return err
	}
	_, err = r.doc(b.ID).Create(ctx, d)
	return err
}

func (r *BillRepository) GetByID(ctx context.Context, id string) (*billing.Bill, error) {
	snap, err := r.doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, billing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var d billDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toBill(snap.Ref.ID)
}

// ListByOwner returns the newest bills first.
func (r *BillRepository) ListByOwner(ctx context.Context, ownerID string, f billing.ListFilter) ([]*billing.Bill, error) {
	q := r.client.Collection(billsCollection).Where("ownerId", "==", ownerID)
	if f.ClientID != "" {
		q = q.Where("clientId", "==", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status", "==", string(f.Status))
	}

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	bills := make([]*billing.Bill, 0, len(snaps))
	for _, snap := range snaps {
		var d billDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		b, err := d.toBill(snap.Ref.ID)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}

	slices.SortStableFunc(bills, func(a, b *billing.Bill) int {
		return b.GeneratedAt.Compare(a.GeneratedAt)
	})
	return bills, nil
}

func (r *BillRepository) UpdateStatus(ctx context.Context, id string, status billing.Status) error {
	_, err := r.doc(id).Update(ctx, []fs.Update{{Path: "status", Value: string(status)}})
	if isNotFound(err) {
		return billing.ErrNotFound
	}
	return err
}

func (r *BillRepository) Delete(ctx context.Context, id string) error {
	ref := r.doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return billing.ErrNotFound
		}
		return err
	}
	_, err := ref.Delete(ctx)
	return err
}
