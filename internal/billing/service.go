package billing

import (
	"context"
	"fmt"
	"time"

	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/core"

	"go.uber.org/zap"
)

// Archiver keeps a copy of every generated bill outside the database.
type Archiver interface {
	Archive(ctx context.Context, b *Bill) error
}

type Service struct {
	repo    Repository
	clients core.ClientReader
	pauses  core.PauseReader
	orders  core.OrderReader
	archive Archiver
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewService(
	repo Repository,
	clients core.ClientReader,
	pauses core.PauseReader,
	orders core.OrderReader,
	logger *zap.SugaredLogger,
) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		pauses:  pauses,
		orders:  orders,
		logger:  logger,
		now:     time.Now,
	}
}

// WithArchiver enables receipt archiving after each generated bill.
func (s *Service) WithArchiver(a Archiver) *Service {
	s.archive = a
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Preview calculates a draft without persisting it.
func (s *Service) Preview(ctx context.Context, ownerID, clientID string, period calendar.Range, strategyName string) (*Draft, error) {
	strategy, err := StrategyByName(strategyName)
	if err != nil {
		return nil, err
	}
	c, err := core.OwnedClient(ctx, s.clients, ownerID, clientID)
	if err != nil {
		return nil, err
	}
	return s.calculate(ctx, strategy, c, period)
}

// Generate calculates and persists a new bill. Existing bills for the
// same period are left alone.
func (s *Service) Generate(ctx context.Context, ownerID, clientID string, period calendar.Range, strategyName string) (*Bill, error) {
	draft, err := s.Preview(ctx, ownerID, clientID, period, strategyName)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, draft, "")
}

// Failure is one client a batch run could not bill.
type Failure struct {
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"`
	Error      string `json:"error"`
}

type BatchResult struct {
	Month     string    `json:"month"`
	Strategy  string    `json:"strategy"`
	Generated []*Bill   `json:"generated"`
	Failures  []Failure `json:"failures"`
}

// GenerateMonthly bills every active client of ownerID for month. A
// failing client is recorded and the batch moves on. progress, when set,
// is called after each client.
func (s *Service) GenerateMonthly(
	ctx context.Context,
	ownerID string,
	month string,
	strategyName string,
	progress func(done, total int),
) (*BatchResult, error) {
	period, err := calendar.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	strategy, err := StrategyByName(strategyName)
	if err != nil {
		return nil, err
	}

	clients, err := s.clients.ListActive(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list active clients: %w", err)
	}

	result := &BatchResult{
		Month:     month,
		Strategy:  strategy.Name(),
		Generated: []*Bill{},
		Failures:  []Failure{},
	}

	for i, c := range clients {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		bill, err := s.generateFor(ctx, strategy, c, period, month)
		if err != nil {
			s.logger.Warnw("bill generation failed",
				"owner_id", ownerID,
				"client_id", c.ID,
				"month", month,
				"error", err,
			)
			result.Failures = append(result.Failures, Failure{
				ClientID:   c.ID,
				ClientName: c.Name,
				Error:      err.Error(),
			})
		} else {
			result.Generated = append(result.Generated, bill)
		}

		if progress != nil {
			progress(i+1, len(clients))
		}
	}

	s.logger.Infow("monthly bills generated",
		"owner_id", ownerID,
		"month", month,
		"strategy", strategy.Name(),
		"generated", len(result.Generated),
		"failed", len(result.Failures),
	)
	return result, nil
}

func (s *Service) generateFor(ctx context.Context, strategy Strategy, c *client.Client, period calendar.Range, month string) (*Bill, error) {
	draft, err := s.calculate(ctx, strategy, c, period)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, draft, month)
}

func (s *Service) calculate(ctx context.Context, strategy Strategy, c *client.Client, period calendar.Range) (*Draft, error) {
	snap, err := core.LoadPeriodSnapshot(ctx, c, s.pauses, s.orders, period)
	if err != nil {
		return nil, err
	}
	return strategy.Calculate(snap, period)
}

func (s *Service) persist(ctx context.Context, draft *Draft, month string) (*Bill, error) {
	bill := NewBill(draft, s.now().UTC())
	bill.BillingMonth = month

	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("save bill for client %s: %w", draft.ClientID, err)
	}

	s.logger.Infow("bill generated",
		"bill_id", bill.ID,
		"client_id", bill.ClientID,
		"period", draft.BillingPeriod.String(),
		"strategy", draft.Details.Strategy,
		"final_amount", bill.FinalAmount,
	)

	if s.archive != nil {
		if err := s.archive.Archive(ctx, bill); err != nil {
			s.logger.Warnw("receipt archive failed", "bill_id", bill.ID, "error", err)
		}
	}
	return bill, nil
}

func (s *Service) List(ctx context.Context, ownerID string, f ListFilter) ([]*Bill, error) {
	return s.repo.ListByOwner(ctx, ownerID, f)
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Bill, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return b, nil
}

// SetStatus marks a bill paid or unpaid. An empty status toggles.
func (s *Service) SetStatus(ctx context.Context, ownerID, id string, status Status) (*Bill, error) {
	b, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = b.Status.Toggle()
	}
	if !status.Valid() {
		return nil, calendar.NewValidationError("status", string(status), "must be paid or unpaid")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *Service) ToggleStatus(ctx context.Context, ownerID, id string) (*Bill, error) {
	return s.SetStatus(ctx, ownerID, id, "")
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
