package billing

import (
	"errors"
	"fmt"

	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/core"
	"mealbox/internal/delivery"
	"mealbox/internal/meal"
	"mealbox/internal/order"
	"mealbox/internal/pause"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingPlan     = errors.New("subscribed client has no plan")
	ErrUnknownStrategy = errors.New("unknown billing strategy")
)

const (
	StrategyItemized = "itemized"
	StrategyProRata  = "prorata"
)

// Strategy turns one client's snapshot into a bill draft for period.
// Calculate is pure: identical inputs give identical drafts.
type Strategy interface {
	Name() string
	Calculate(s core.Snapshot, period calendar.Range) (*Draft, error)
}

// StrategyByName resolves a strategy; an empty name means itemized.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", StrategyItemized:
		return ItemizedBillStrategy{}, nil
	case StrategyProRata:
		return ProRataBillStrategy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// ItemizedBillStrategy bills every reconstructed delivery at its meal
// price, plus single orders and the on-demand main order.
type ItemizedBillStrategy struct{}

func (ItemizedBillStrategy) Name() string { return StrategyItemized }

func (ItemizedBillStrategy) Calculate(s core.Snapshot, period calendar.Range) (*Draft, error) {
	c := s.Client
	if c == nil {
		return nil, client.ErrNotFound
	}
	if c.IsSubscribed() && c.Plan == nil {
		return nil, ErrMissingPlan
	}

	counts := delivery.ComputeSubscriptionDeliveries(c, period.Start, period.End, s.Pauses)
	lunchPrice := subscribedPrice(c, meal.Lunch)
	dinnerPrice := subscribedPrice(c, meal.Dinner)

	subscription := lunchPrice.Mul(decimal.NewFromInt(int64(counts.LunchesDelivered))).
		Add(dinnerPrice.Mul(decimal.NewFromInt(int64(counts.DinnersDelivered))))

	extras := order.Collect(s.Orders, period.Start, period.End)
	extrasAmount := order.Total(extras)

	total := subscription.Add(extrasAmount)

	details := Details{
		Strategy:          StrategyItemized,
		LunchesDelivered:  counts.LunchesDelivered,
		DinnersDelivered:  counts.DinnersDelivered,
		LunchPrice:        lunchPrice.InexactFloat64(),
		DinnerPrice:       dinnerPrice.InexactFloat64(),
		ExtraOrdersCount:  len(extras),
		ExtraOrdersAmount: extrasAmount.InexactFloat64(),
		ExtraOrders:       extras,
	}

	if c.CustomerType == client.OnDemand {
		amount := decimal.Zero
		if main, ok := order.FromPlan(c); ok && period.Contains(main.OrderDate) {
			details.MainOrder = &main
			amount = decimal.NewFromFloat(main.Price)
		}
		f := amount.InexactFloat64()
		details.MainOrderAmount = &f
		total = total.Add(amount)
	}

	return newDraft(c, period, total, details), nil
}

// ProRataBillStrategy is the month-based formula used for bulk
// generation: planPrice / totalDays * deliveredDays, rounded to a whole
// unit, where deliveredDays is totalDays minus the days covered by any
// pause. It does not reconcile with ItemizedBillStrategy meal by meal.
// On-demand clients have no plan price and are billed itemized.
type ProRataBillStrategy struct{}

func (ProRataBillStrategy) Name() string { return StrategyProRata }

func (ProRataBillStrategy) Calculate(s core.Snapshot, period calendar.Range) (*Draft, error) {
	c := s.Client
	if c == nil {
		return nil, client.ErrNotFound
	}
	if !c.IsSubscribed() {
		return ItemizedBillStrategy{}.Calculate(s, period)
	}
	if c.Plan == nil {
		return nil, ErrMissingPlan
	}

	totalDays := period.Len()
	pausedDays := pause.PausedDays(s.Pauses, period)
	deliveredDays := totalDays - pausedDays

	planPrice := decimal.NewFromFloat(c.Plan.MonthlyPrice)
	if planPrice.IsZero() {
		planPrice = subscribedPrice(c, meal.Lunch).
			Add(subscribedPrice(c, meal.Dinner)).
			Mul(decimal.NewFromInt(int64(totalDays)))
	}

	amount := decimal.Zero
	if totalDays > 0 {
		amount = planPrice.
			Mul(decimal.NewFromInt(int64(deliveredDays))).
			Div(decimal.NewFromInt(int64(totalDays))).
			Round(0)
	}

	details := Details{
		Strategy:      StrategyProRata,
		LunchPrice:    subscribedPrice(c, meal.Lunch).InexactFloat64(),
		DinnerPrice:   subscribedPrice(c, meal.Dinner).InexactFloat64(),
		TotalDays:     totalDays,
		PausedDays:    pausedDays,
		DeliveredDays: deliveredDays,
		PlanPrice:     planPrice.InexactFloat64(),
	}
	return newDraft(c, period, amount, details), nil
}

// subscribedPrice is the plan price of m, or 0 when m is not subscribed.
func subscribedPrice(c *client.Client, m meal.Type) decimal.Decimal {
	mp := c.Plan.Meal(m)
	if !mp.Subscribed {
		return decimal.Zero
	}
	return decimal.NewFromFloat(mp.Price)
}

func newDraft(c *client.Client, period calendar.Range, total decimal.Decimal, details Details) *Draft {
	return &Draft{
		ClientID:      c.ID,
		ClientName:    c.Name,
		OwnerID:       c.OwnerID,
		BillingPeriod: period,
		Status:        StatusUnpaid,
		FinalAmount:   total.InexactFloat64(),
		Details:       details,
	}
}
