package delivery

import (
	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/meal"
	"mealbox/internal/pause"
)

// Counts is the number of subscription deliveries in a period.
type Counts struct {
	LunchesDelivered int `json:"lunchesDelivered"`
	DinnersDelivered int `json:"dinnersDelivered"`
}

// Dates lists the concrete subscription delivery days in a period.
type Dates struct {
	Lunch  []calendar.Date `json:"lunch"`
	Dinner []calendar.Date `json:"dinner"`
}

// Delivers reports whether meal m is delivered to c on day d under the
// subscription rules: the meal is subscribed, d is inside the plan
// window, the weekday is scheduled and no pause covers (d, m).
func Delivers(c *client.Client, d calendar.Date, m meal.Type, pauses []pause.Pause) bool {
	if c == nil || c.Plan == nil {
		return false
	}
	if !c.Plan.Meal(m).Subscribed {
		return false
	}
	if !c.Plan.Active(d) {
		return false
	}
	if !c.DeliverySchedule.Enabled(calendar.WeekdayName(d)) {
		return false
	}
	return !pause.IsPaused(d, m, pauses)
}

// ComputeSubscriptionDeliveries counts lunch and dinner deliveries in
// [start, end]. The period is intersected day by day with the plan window.
func ComputeSubscriptionDeliveries(c *client.Client, start, end calendar.Date, pauses []pause.Pause) Counts {
	var n Counts
	for d := range calendar.Days(start, end) {
		if Delivers(c, d, meal.Lunch, pauses) {
			n.LunchesDelivered++
		}
		if Delivers(c, d, meal.Dinner, pauses) {
			n.DinnersDelivered++
		}
	}
	return n
}

// ComputeSubscriptionDeliveryDates is the itemized form of
// ComputeSubscriptionDeliveries.
func ComputeSubscriptionDeliveryDates(c *client.Client, start, end calendar.Date, pauses []pause.Pause) Dates {
	out := Dates{Lunch: []calendar.Date{}, Dinner: []calendar.Date{}}
	for d := range calendar.Days(start, end) {
		if Delivers(c, d, meal.Lunch, pauses) {
			out.Lunch = append(out.Lunch, d)
		}
		if Delivers(c, d, meal.Dinner, pauses) {
			out.Dinner = append(out.Dinner, d)
		}
	}
	return out
}

// Counts reduces the date lists to their lengths.
func (d Dates) Counts() Counts {
	return Counts{LunchesDelivered: len(d.Lunch), DinnersDelivered: len(d.Dinner)}
}
