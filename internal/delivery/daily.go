package delivery

import (
	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/core"
	"mealbox/internal/meal"
	"mealbox/internal/order"
)

type LineType string

const (
	TypeSubscription LineType = "Subscription"
	TypeSingleOrder  LineType = "Single Order"
)

// LineItem is one tiffin to dispatch.
type LineItem struct {
	Client *client.Client `json:"client"`
	Meal   string         `json:"meal"`
	Type   LineType       `json:"type"`
	Price  *float64       `json:"price,omitempty"`
}

// GenerateDailyDeliveries answers "what goes out on today". Subscribed
// clients contribute lunch then dinner when Delivers allows it; every
// client contributes its single orders dated today. Output follows the
// snapshot order. Inactive clients are skipped.
func GenerateDailyDeliveries(snapshots []core.Snapshot, today calendar.Date) []LineItem {
	items := []LineItem{}
	for _, s := range snapshots {
		c := s.Client
		if c == nil || !c.IsActive() {
			continue
		}

		if c.IsSubscribed() {
			for _, m := range meal.All {
				if Delivers(c, today, m, s.Pauses) {
					items = append(items, LineItem{
						Client: c,
						Meal:   m.Label(),
						Type:   TypeSubscription,
					})
				}
			}
		}

		for _, o := range order.On(s.Orders, today) {
			price := o.Price
			items = append(items, LineItem{
				Client: c,
				Meal:   o.MealType.Label(),
				Type:   TypeSingleOrder,
				Price:  &price,
			})
		}
	}
	return items
}
