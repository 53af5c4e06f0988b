package calendarview

import (
	"slices"
	"strings"

	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/order"
	"mealbox/internal/pause"
)

const (
	LabelDelivered   = "Delivered"
	LabelSkipped     = "Skipped"
	LabelPaused      = "Paused"
	LabelSingleOrder = "Single Order"

	extraSuffix = " + Extra"
)

// Event is one day on a client's calendar. Background events are
// low-emphasis markers.
type Event struct {
	Date         calendar.Date `json:"date"`
	Label        string        `json:"label"`
	IsBackground bool          `json:"isBackground"`
}

// board is the fold state: the current event per day.
type board map[string]Event

// layer rewrites the board and returns it.
type layer func(board) board

// ProjectEvents renders a client's history for display. Subscribed
// clients go through the weekly baseline, then pauses, then single
// orders, each layer seeing the result of the previous one. The
// result is sorted by date.
func ProjectEvents(c *client.Client, pauses []pause.Pause, orders []order.Order) []Event {
	if c == nil {
		return []Event{}
	}
	if !c.IsSubscribed() {
		return onDemandEvents(c, orders)
	}

	layers := []layer{
		baseline(c),
		pauseLayer(pauses),
		orderLayer(orders),
	}

	b := board{}
	for _, apply := range layers {
		b = apply(b)
	}
	return sorted(b)
}

// baseline is empty unless the plan has both bounds.
func baseline(c *client.Client) layer {
	return func(b board) board {
		if c.Plan == nil || c.Plan.StartDate.IsZero() || c.Plan.EndDate.IsZero() {
			return b
		}
		for d := range calendar.Days(c.Plan.StartDate, c.Plan.EndDate) {
			if c.DeliverySchedule.Enabled(calendar.WeekdayName(d)) {
				b[d.String()] = Event{Date: d, Label: LabelDelivered}
			} else {
				b[d.String()] = Event{Date: d, Label: LabelSkipped, IsBackground: true}
			}
		}
		return b
	}
}

// pauseLayer overwrites every covered day, whatever the pause scope.
func pauseLayer(pauses []pause.Pause) layer {
	return func(b board) board {
		for _, p := range pauses {
			for d := range p.Range().Days() {
				b[d.String()] = Event{Date: d, Label: LabelPaused}
			}
		}
		return b
	}
}

// orderLayer marks days with single orders. A day that already has an
// event gets " + Extra" once, however many orders it has.
func orderLayer(orders []order.Order) layer {
	return func(b board) board {
		for _, o := range orders {
			d := o.OrderDate
			ev, ok := b[d.String()]
			switch {
			case !ok:
				b[d.String()] = Event{Date: d, Label: LabelSingleOrder}
			case ev.Label == LabelSingleOrder || strings.HasSuffix(ev.Label, extraSuffix):
			default:
				b[d.String()] = Event{Date: d, Label: ev.Label + extraSuffix}
			}
		}
		return b
	}
}

func onDemandEvents(c *client.Client, orders []order.Order) []Event {
	events := make([]Event, 0, len(orders))
	for _, o := range orders {
		events = append(events, Event{Date: o.OrderDate, Label: "Order: " + o.MealType.Label()})
	}
	if len(events) == 0 {
		if main, ok := order.FromPlan(c); ok {
			events = append(events, Event{Date: main.OrderDate, Label: "Order: " + main.MealType.Label()})
		}
	}
	slices.SortStableFunc(events, func(a, b Event) int {
		return a.Date.Time().Compare(b.Date.Time())
	})
	return events
}

func sorted(b board) []Event {
	events := make([]Event, 0, len(b))
	for _, ev := range b {
		events = append(events, ev)
	}
	slices.SortFunc(events, func(a, b Event) int {
		return a.Date.Time().Compare(b.Date.Time())
	})
	return events
}
