package client

import (
	"context"
	"errors"
	"strings"

	"mealbox/internal/calendar"

	"go.uber.org/zap"
)

type Service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

func NewService(repo Repository, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, logger: logger}
}

// --------------------------------------------------
// Create client
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, ownerID string, c *Client) (*Client, error) {
	c.ID = ""
	c.OwnerID = ownerID
	if c.Status == "" {
		c.Status = Active
	}
	if err := Validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Infow("client created", "client_id", c.ID, "owner_id", ownerID, "customer_type", c.CustomerType)
	return c, nil
}

// --------------------------------------------------
// Update client (owner scoped)
// --------------------------------------------------
func (s *Service) Update(ctx context.Context, ownerID, id string, c *Client) (*Client, error) {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return nil, err
	}

	c.ID = id
	c.OwnerID = ownerID
	if c.Status == "" {
		c.Status = Active
	}
	if err := Validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the client only when it belongs to ownerID.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*Client, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) ListActive(ctx context.Context, ownerID string) ([]*Client, error) {
	return s.repo.ListActive(ctx, ownerID)
}

func (s *Service) SetStatus(ctx context.Context, ownerID, id string, status Status) error {
	if status != Active && status != Inactive {
		return calendar.NewValidationError("status", string(status), "must be active or inactive")
	}
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Infow("client status changed", "client_id", id, "status", status)
	return nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("client deleted", "client_id", id)
	return nil
}

// Validate checks the record shape before it is stored.
func Validate(c *Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return calendar.NewValidationError("name", c.Name, "is required")
	}
	if c.Status != Active && c.Status != Inactive {
		return calendar.NewValidationError("status", string(c.Status), "must be active or inactive")
	}
	for day := range c.DeliverySchedule {
		if !day.Valid() {
			return calendar.NewValidationError("deliverySchedule", string(day), "unknown weekday")
		}
	}

	switch c.CustomerType {
	case Subscribed:
		return validateSubscription(c.Plan)
	case OnDemand:
		return validateOnDemand(c.Plan)
	}
	return calendar.NewValidationError("customerType", string(c.CustomerType), "must be subscribed or ondemand")
}

func validateSubscription(p *Plan) error {
	if p == nil {
		return calendar.NewValidationError("plan", "", "is required for subscribed clients")
	}
	if p.StartDate.IsZero() {
		return calendar.NewValidationError("plan.startDate", "", "is required")
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return calendar.NewValidationError("plan.endDate", p.EndDate.String(), "is before plan.startDate")
	}
	for _, mp := range []*MealPlan{p.Lunch, p.Dinner} {
		if mp != nil && mp.Price < 0 {
			return errNegativePrice
		}
	}
	if p.MonthlyPrice < 0 {
		return errNegativePrice
	}
	return nil
}

func validateOnDemand(p *Plan) error {
	if p == nil {
		return calendar.NewValidationError("plan", "", "is required for ondemand clients")
	}
	if p.Date.IsZero() {
		return calendar.NewValidationError("plan.date", "", "is required")
	}
	if !p.MealType.Valid() {
		return calendar.NewValidationError("plan.mealType", string(p.MealType), "must be lunch or dinner")
	}
	if p.Price < 0 {
		return errNegativePrice
	}
	return nil
}

var errNegativePrice = &calendar.ValidationError{Field: "price", Value: "<0", Err: errors.New("must not be negative")}
