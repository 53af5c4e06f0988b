package calendarview

import (
	"context"

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
	return &Service{clients: clients, pauses: pauses, orders: orders, logger: logger}
}

func (s *Service) Events(ctx context.Context, ownerID, clientID string) ([]Event, error) {
	c, err := core.OwnedClient(ctx, s.clients, ownerID, clientID)
	if err != nil {
		return nil, err
	}
	snap, err := core.LoadSnapshot(ctx, c, s.pauses, s.orders)
	if err != nil {
		s.logger.Errorw("calendar snapshot failed", "client_id", clientID, "error", err)
		return nil, err
	}
	return ProjectEvents(snap.Client, snap.Pauses, snap.Orders), nil
}
