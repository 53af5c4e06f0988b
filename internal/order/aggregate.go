package order

import (
	"slices"

	"mealbox/internal/calendar"
	"mealbox/internal/client"

	"github.com/shopspring/decimal"
)

// Collect keeps the orders dated inside [start, end] and returns them in
// ascending date order. Orders on the same day keep their input order.
func Collect(orders []Order, start, end calendar.Date) []Order {
	var out []Order
	for _, o := range orders {
		if calendar.IsWithinInterval(o.OrderDate, start, end) {
			out = append(out, o)
		}
	}
	slices.SortStableFunc(out, func(a, b Order) int {
		return a.OrderDate.Time().Compare(b.OrderDate.Time())
	})
	return out
}

// On returns the orders dated exactly d.
func On(orders []Order, d calendar.Date) []Order {
	return Collect(orders, d, d)
}

// Total sums prices without float drift.
func Total(orders []Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(decimal.NewFromFloat(o.Price))
	}
	return sum
}

func Sum(orders []Order) float64 {
	return Total(orders).InexactFloat64()
}

// FromPlan turns an on-demand client's plan into its main order.
// ok is false when the client has no usable plan snapshot.
func FromPlan(c *client.Client) (o Order, ok bool) {
	if c == nil || c.CustomerType != client.OnDemand || c.Plan == nil {
		return Order{}, false
	}
	if c.Plan.Date.IsZero() || !c.Plan.MealType.Valid() {
		return Order{}, false
	}
	return Order{
		ClientID:  c.ID,
		OrderDate: c.Plan.Date,
		MealType:  c.Plan.MealType,
		Price:     c.Plan.Price,
		Status:    StatusScheduled,
		Origin:    OriginPlanSnapshot,
	}, true
}
