package pause

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

func (s *Service) Create(ctx context.Context, ownerID, clientID string, p *Pause) (*Pause, error) {
	if _, err := s.clients.Get(ctx, ownerID, clientID); err != nil {
		return nil, err
	}

	p.ID = ""
	p.ClientID = clientID
	if err := Validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Infow("pause created",
		"client_id", clientID,
		"pause_id", p.ID,
		"range", p.Range().String(),
		"meal_type", p.MealType,
	)
	return p, nil
}

func (s *Service) List(ctx context.Context, ownerID, clientID string) ([]Pause, error) {
	if _, err := s.clients.Get(ctx, ownerID, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, clientID)
}

func (s *Service) Delete(ctx context.Context, ownerID, clientID, id string) error {
	if _, err := s.clients.Get(ctx, ownerID, clientID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, clientID, id)
}

func Validate(p *Pause) error {
	if p.StartDate.IsZero() {
		return calendar.NewValidationError("startDate", "", "is required")
	}
	if p.EndDate.IsZero() {
		return calendar.NewValidationError("endDate", "", "is required")
	}
	if p.EndDate.Before(p.StartDate) {
		return calendar.NewValidationError("endDate", p.EndDate.String(), "is before startDate")
	}
	if !p.MealType.Valid() {
		return calendar.NewValidationError("mealType", string(p.MealType), "must be lunch, dinner or both")
	}
	if p.MealType == "" {
		p.MealType = ScopeBoth
	}
	return nil
}
