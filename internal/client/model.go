package client

import (
	"time"

	"mealbox/internal/calendar"
	"mealbox/internal/meal"
)

type CustomerType string

const (
	Subscribed CustomerType = "subscribed"
	OnDemand   CustomerType = "ondemand"
)

type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

// Schedule maps a weekday name to "delivery normally happens on this day".
type Schedule map[calendar.Weekday]bool

func (s Schedule) Enabled(w calendar.Weekday) bool {
	return s[w]
}

// MealPlan is the per-meal opt-in of a subscription.
type MealPlan struct {
	Subscribed bool    `json:"subscribed"`
	Price      float64 `json:"price"`
}

// Plan carries both plan shapes; which fields matter depends on the
// client's CustomerType.
type Plan struct {
	// subscribed
	Lunch        *MealPlan     `json:"lunch,omitempty"`
	Dinner       *MealPlan     `json:"dinner,omitempty"`
	StartDate    calendar.Date `json:"startDate"`
	EndDate      calendar.Date `json:"endDate"`
	MonthlyPrice float64       `json:"monthlyPrice,omitempty"`

	// on-demand default order template
	Date     calendar.Date `json:"date"`
	MealType meal.Type     `json:"mealType,omitempty"`
	Price    float64       `json:"price,omitempty"`
}

// Meal returns the opt-in for m. A missing meal object reads as
// not subscribed at price 0.
func (p *Plan) Meal(m meal.Type) MealPlan {
	if p == nil {
		return MealPlan{}
	}
	var mp *MealPlan
	switch m {
	case meal.Lunch:
		mp = p.Lunch
	case meal.Dinner:
		mp = p.Dinner
	}
	if mp == nil {
		return MealPlan{}
	}
	return *mp
}

// Active reports whether d falls inside the plan window. Unset bounds
// are open.
func (p *Plan) Active(d calendar.Date) bool {
	if p == nil {
		return false
	}
	if !p.StartDate.IsZero() && d.Before(p.StartDate) {
		return false
	}
	if !p.EndDate.IsZero() && d.After(p.EndDate) {
		return false
	}
	return true
}

type Client struct {
	ID               string       `json:"id"`
	OwnerID          string       `json:"ownerId"`
	Name             string       `json:"name"`
	Phone            string       `json:"phone,omitempty"`
	Address          string       `json:"address,omitempty"`
	CustomerType     CustomerType `json:"customerType"`
	Status           Status       `json:"status"`
	DeliverySchedule Schedule     `json:"deliverySchedule"`
	Plan             *Plan        `json:"plan"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

func (c *Client) IsActive() bool { return c.Status == Active }

func (c *Client) IsSubscribed() bool { return c.CustomerType == Subscribed }
