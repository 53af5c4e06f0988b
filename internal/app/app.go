// Package app wires repositories and services for the binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"mealbox/internal/billing"
	"mealbox/internal/calendarview"
	"mealbox/internal/client"
	"mealbox/internal/config"
	"mealbox/internal/db"
	"mealbox/internal/delivery"
	"mealbox/internal/order"
	"mealbox/internal/pause"
	"mealbox/internal/storage"
	"mealbox/internal/store/firestore"

	"go.uber.org/zap"
)

type Repositories struct {
	Clients client.Repository
	Pauses  pause.Repository
	Orders  order.Repository
	Bills   billing.Repository
}

// MemoryRepositories keeps everything in process memory.
func MemoryRepositories() Repositories {
	return Repositories{
		Clients: client.NewInMemoryRepository(),
		Pauses:  pause.NewInMemoryRepository(),
		Orders:  order.NewInMemoryRepository(),
		Bills:   billing.NewInMemoryRepository(),
	}
}

// OpenRepositories connects the store selected by cfg.StoreDriver. The
// returned func releases the connection.
func OpenRepositories(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (Repositories, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return Repositories{}, nil, err
		}
		return Repositories{
			Clients: client.NewPostgresRepository(pool),
			Pauses:  pause.NewPostgresRepository(pool),
			Orders:  order.NewPostgresRepository(pool),
			Bills:   billing.NewPostgresRepository(pool),
		}, pool.Close, nil

	case config.DriverFirestore:
		store, err := firestore.Open(ctx, cfg.FirestoreProjectID, cfg.GoogleCredentialsPath)
		if err != nil {
			return Repositories{}, nil, fmt.Errorf("open firestore: %w", err)
		}
		logger.Infow("connected to firestore", "project", cfg.FirestoreProjectID)
		return Repositories{
				Clients: store.Clients(),
				Pauses:  store.Pauses(),
				Orders:  store.Orders(),
				Bills:   store.Bills(),
			}, func() {
				if err := store.Close(); err != nil {
					logger.Errorw("error closing firestore", "error", err)
				}
			}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return MemoryRepositories(), func() {}, nil
	}
	return Repositories{}, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

type Services struct {
	Clients    *client.Service
	Pauses     *pause.Service
	Orders     *order.Service
	Deliveries *delivery.Service
	Bills      *billing.Service
	Calendar   *calendarview.Service
}

func NewServices(repos Repositories, logger *zap.SugaredLogger) Services {
	clients := client.NewService(repos.Clients, logger)
	return Services{
		Clients:    clients,
		Pauses:     pause.NewService(repos.Pauses, clients, logger),
		Orders:     order.NewService(repos.Orders, clients, logger),
		Deliveries: delivery.NewService(repos.Clients, repos.Pauses, repos.Orders, logger),
		Bills:      billing.NewService(repos.Bills, repos.Clients, repos.Pauses, repos.Orders, logger),
		Calendar:   calendarview.NewService(repos.Clients, repos.Pauses, repos.Orders, logger),
	}
}

// EnableReceiptArchive attaches the R2 receipt archive to the bill
// service when the bucket is configured.
func EnableReceiptArchive(ctx context.Context, cfg config.Config, bills *billing.Service, logger *zap.SugaredLogger) error {
	if !cfg.Archive.Enabled() {
		logger.Info("receipt archive disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	r2, err := storage.NewR2Client(ctx, cfg.Archive)
	if err != nil {
		return fmt.Errorf("r2 init: %w", err)
	}
	bills.WithArchiver(storage.NewReceiptArchive(r2, logger))
	logger.Infow("receipt archive enabled", "bucket", cfg.Archive.Bucket)
	return nil
}
