package delivery

import (
	"context"
	"time"

	"mealbox/internal/calendar"
	"mealbox/internal/core"

	"go.uber.org/zap"
)

type Service struct {
	clients core.ClientReader
	pauses  core.PauseReader
	orders  core.OrderReader
	logger  *zap.SugaredLogger
}

func NewService(
	clients core.ClientReader,
	pauses core.PauseReader,
	orders core.OrderReader,
	logger *zap.SugaredLogger,
) *Service {
	return &Service{
		clients: clients,
		pauses:  pauses,
		orders:  orders,
		logger:  logger,
	}
}

// Today builds the dispatch list of ownerID's active clients for today.
func (s *Service) Today(ctx context.Context, ownerID string, today calendar.Date) ([]LineItem, error) {
	start := time.Now()

	clients, err := s.clients.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	snapshots := make([]core.Snapshot, 0, len(clients))
	for _, c := range clients {
		snap, err := core.LoadSnapshot(ctx, c, s.pauses, s.orders)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	items := GenerateDailyDeliveries(snapshots, today)

	s.logger.Infow("daily deliveries generated",
		"owner_id", ownerID,
		"date", today.String(),
		"clients", len(clients),
		"items", len(items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return items, nil
}

// Dates reconstructs the subscription delivery days of one client.
func (s *Service) Dates(ctx context.Context, ownerID, clientID string, r calendar.Range) (Dates, error) {
	c, err := core.OwnedClient(ctx, s.clients, ownerID, clientID)
	if err != nil {
		return Dates{}, err
	}
	pauses, err := s.pauses.ListByClient(ctx, c.ID)
	if err != nil {
		return Dates{}, err
	}
	return ComputeSubscriptionDeliveryDates(c, r.Start, r.End, pauses), nil
}
