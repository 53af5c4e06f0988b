package order

import (
	"context"

	"mealbox/internal/calendar"
	"mealbox/internal/client"

	"go.uber.org/zap"
)

// ClientGetter resolves a client for its owner; *client.Service satisfies it.
type ClientGetter interface {
	Get(ctx context.Context, ownerID, id string) (*client.Client, error)
}

type Service struct {
	repo    Repository
	clients ClientGetter
	logger  *zap.SugaredLogger
}

func NewService(repo Repository, clients ClientGetter, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, clients: clients, logger: logger}
}

// --------------------------------------------------
// Create single order
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, ownerID, clientID string, o *Order) (*Order, error) {
	if _, err := s.clients.Get(ctx, ownerID, clientID); err != nil {
		return nil, err
	}

	o.ID = ""
	o.ClientID = clientID
	o.Origin = OriginRecord
	if o.Status == "" {
		o.Status = StatusScheduled
	}
	if err := Validate(o); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Infow("single order created",
		"client_id", clientID,
		"order_id", o.ID,
		"order_date", o.OrderDate.String(),
		"meal_type", o.MealType,
	)
	return o, nil
}

func (s *Service) List(ctx context.Context, ownerID, clientID string) ([]Order, error) {
	if _, err := s.clients.Get(ctx, ownerID, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, clientID)
}

// CollectSingleOrders returns the client's orders dated in [start, end],
// ascending. An inverted range yields no orders.
func (s *Service) CollectSingleOrders(ctx context.Context, ownerID, clientID string, start, end calendar.Date) ([]Order, error) {
	if _, err := s.clients.Get(ctx, ownerID, clientID); err != nil {
		return nil, err
	}
	orders, err := s.repo.ListInRange(ctx, clientID, start, end)
	if err != nil {
		return nil, err
	}
	return Collect(orders, start, end), nil
}

func (s *Service) Delete(ctx context.Context, ownerID, clientID, id string) error {
	if _, err := s.clients.Get(ctx, ownerID, clientID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, clientID, id)
}

func Validate(o *Order) error {
	if o.OrderDate.IsZero() {
		return calendar.NewValidationError("orderDate", "", "is required")
	}
	if !o.MealType.Valid() {
		return calendar.NewValidationError("mealType", string(o.MealType), "must be lunch or dinner")
	}
	if o.Price < 0 {
		return calendar.NewValidationError("price", "", "must not be negative")
	}
	return nil
}
