package billing

import (
	"time"

	"mealbox/internal/calendar"
	"mealbox/internal/order"
)

type Status string

const (
	StatusUnpaid Status = "unpaid"
	StatusPaid   Status = "paid"
)

func (s Status) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

// Toggle flips paid and unpaid.
func (s Status) Toggle() Status {
	if s == StatusPaid {
		return StatusUnpaid
	}
	return StatusPaid
}

// Details is the structured breakdown printed on a receipt.
type Details struct {
	Strategy string `json:"strategy"`

	LunchesDelivered int     `json:"lunchesDelivered"`
	DinnersDelivered int     `json:"dinnersDelivered"`
	LunchPrice       float64 `json:"lunchPrice"`
	DinnerPrice      float64 `json:"dinnerPrice"`

	ExtraOrdersCount  int           `json:"extraOrdersCount"`
	ExtraOrdersAmount float64       `json:"extraOrdersAmount"`
	ExtraOrders       []order.Order `json:"extraOrders,omitempty"`

	MainOrder       *order.Order `json:"mainOrder,omitempty"`
	MainOrderAmount *float64     `json:"mainOrderAmount,omitempty"`

	// pro-rata only
	TotalDays     int     `json:"totalDays,omitempty"`
	PausedDays    int     `json:"pausedDays,omitempty"`
	DeliveredDays int     `json:"deliveredDays,omitempty"`
	PlanPrice     float64 `json:"planPrice,omitempty"`
}

// Draft is a calculated bill that has not been persisted.
type Draft struct {
	ClientID      string         `json:"clientId"`
	ClientName    string         `json:"clientName"`
	OwnerID       string         `json:"ownerId"`
	BillingPeriod calendar.Range `json:"billingPeriod"`
	Status        Status         `json:"status"`
	FinalAmount   float64        `json:"finalAmount"`
	Details       Details        `json:"details"`
}

// Bill is a persisted Draft. Older bills only carry BillingMonth.
type Bill struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"clientId"`
	ClientName    string          `json:"clientName"`
	OwnerID       string          `json:"ownerId"`
	BillingPeriod *calendar.Range `json:"billingPeriod,omitempty"`
	BillingMonth  string          `json:"billingMonth,omitempty"`
	Status        Status          `json:"status"`
	FinalAmount   float64         `json:"finalAmount"`
	Details       Details         `json:"details"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// NewBill stamps a draft with its generation time.
func NewBill(d *Draft, generatedAt time.Time) *Bill {
	period := d.BillingPeriod
	return &Bill{
		ClientID:      d.ClientID,
		ClientName:    d.ClientName,
		OwnerID:       d.OwnerID,
		BillingPeriod: &period,
		Status:        d.Status,
		FinalAmount:   d.FinalAmount,
		Details:       d.Details,
		GeneratedAt:   generatedAt,
	}
}

// Period resolves the billed range from either billingPeriod or the
// legacy billingMonth.
func (b *Bill) Period() (calendar.Range, error) {
	if b.BillingPeriod != nil && !b.BillingPeriod.Start.IsZero() {
		return *b.BillingPeriod, nil
	}
	if b.BillingMonth != "" {
		return calendar.ParseMonth(b.BillingMonth)
	}
	return calendar.Range{}, calendar.NewValidationError("billingPeriod", "", "bill has no billing period")
}

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	ClientID string
	Status   Status
}

func (f ListFilter) Match(b *Bill) bool {
	if f.ClientID != "" && b.ClientID != f.ClientID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return true
}
