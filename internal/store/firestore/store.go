// Package firestore keeps clients, pauses, orders and bills in Cloud
// Firestore using the document layout of the hosted app:
//
//	clients/{clientId}
//	clients/{clientId}/pauses/{pauseId}
//	clients/{clientId}/orders/{orderId}
//	bills/{billId}
//
// Calendar dates are stored as YYYY-MM-DD strings so range queries
// compare lexically.
package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	clientsCollection = "clients"
	pausesCollection  = "pauses"
	ordersCollection  = "orders"
	billsCollection   = "bills"
)

type Store struct {
	client *fs.Client
}

// Open connects to projectID. credentialsPath may be empty to use the
// ambient credentials (or FIRESTORE_EMULATOR_HOST).
func Open(ctx context.Context, projectID, credentialsPath string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := fs.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Clients() *ClientRepository { return &ClientRepository{client: s.client} }

func (s *Store) Pauses() *PauseRepository { return &PauseRepository{client: s.client} }

func (s *Store) Orders() *OrderRepository { return &OrderRepository{client: s.client} }

func (s *Store) Bills() *BillRepository { return &BillRepository{client: s.client} }

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// deleteAll removes every document of a subcollection.
func deleteAll(ctx context.Context, client *fs.Client, col *fs.CollectionRef) error {
	refs, err := col.DocumentRefs(ctx).GetAll()
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	bw := client.BulkWriter(ctx)
	for _, ref := range refs {
		if _, err := bw.Delete(ref); err != nil {
			bw.End()
			return err
		}
	}
	bw.End()
	return nil
}
