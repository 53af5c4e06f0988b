package order

import (
	"time"

	"mealbox/internal/calendar"
	"mealbox/internal/meal"
)

// Origin tells where an order record came from.
type Origin string

const (
	// OriginRecord is an entry in the client's orders collection.
	OriginRecord Origin = "single-order-record"
	// OriginPlanSnapshot is the on-demand default order stored on the client itself.
	OriginPlanSnapshot Origin = "plan-snapshot"
)

const StatusScheduled = "scheduled"

// Order is a one-day, one-meal tiffin billed independently of any subscription.
type Order struct {
	ID        string        `json:"id"`
	ClientID  string        `json:"clientId"`
	OrderDate calendar.Date `json:"orderDate"`
	MealType  meal.Type     `json:"mealType"`
	Price     float64       `json:"price"`
	Status    string        `json:"status"`
	Origin    Origin        `json:"origin"`
	CreatedAt time.Time     `json:"createdAt"`
}
