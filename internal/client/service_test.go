package client

import (
	"context"
	"errors"
	"testing"

	"mealbox/internal/calendar"
	"mealbox/internal/meal"

	"go.uber.org/zap"
)

func newTestService() (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	return NewService(repo, zap.NewNop().Sugar()), repo
}

func subscribedClient() *Client {
	return &Client{
		Name:         "Asha",
		CustomerType: Subscribed,
		DeliverySchedule: Schedule{
			calendar.Monday: true,
			calendar.Friday: true,
		},
		Plan: &Plan{
			Lunch:     &MealPlan{Subscribed: true, Price: 80},
			StartDate: calendar.MustParse("2024-03-01"),
		},
	}
}

func TestCreate_DefaultsAndOwner(t *testing.T) {
	service, _ := newTestService()

	c, err := service.Create(context.Background(), "owner-1", subscribedClient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == "" {
		t.Error("expected ID to be set")
	}
	if c.OwnerID != "owner-1" {
		t.Errorf("expected owner-1, got %s", c.OwnerID)
	}
	if c.Status != Active {
		t.Errorf("expected status active, got %s", c.Status)
	}
}

func TestCreate_Validation(t *testing.T) {
	service, _ := newTestService()

	tests := map[string]func(c *Client){
		"missing name":          func(c *Client) { c.Name = "" },
		"unknown type":          func(c *Client) { c.CustomerType = "weekly" },
		"missing plan":          func(c *Client) { c.Plan = nil },
		"missing start":         func(c *Client) { c.Plan.StartDate = calendar.Date{} },
		"end before start":      func(c *Client) { c.Plan.EndDate = calendar.MustParse("2024-02-01") },
		"negative price":        func(c *Client) { c.Plan.Lunch.Price = -1 },
		"unknown weekday":       func(c *Client) { c.DeliverySchedule["funday"] = true },
		"unknown status":        func(c *Client) { c.Status = "paused" },
		"ondemand without date": func(c *Client) { c.CustomerType = OnDemand },
	}

	for name, mutate := range tests {
		c := subscribedClient()
		mutate(c)
		_, err := service.Create(context.Background(), "owner-1", c)
		if !calendar.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestCreate_OnDemand(t *testing.T) {
	service, _ := newTestService()

	c := &Client{
		Name:         "Ravi",
		CustomerType: OnDemand,
		Plan: &Plan{
			Date:     calendar.MustParse("2024-03-05"),
			MealType: meal.Dinner,
			Price:    120,
		},
	}
	if _, err := service.Create(context.Background(), "owner-1", c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_OtherOwnerIsNotFound(t *testing.T) {
	service, _ := newTestService()

	c, err := service.Create(context.Background(), "owner-1", subscribedClient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Get(context.Background(), "owner-2", c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListActive(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	a, _ := service.Create(ctx, "owner-1", subscribedClient())
	service.Create(ctx, "owner-1", subscribedClient())
	service.Create(ctx, "owner-2", subscribedClient())

	if err := service.SetStatus(ctx, "owner-1", a.ID, Inactive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, _ := service.List(ctx, "owner-1")
	active, _ := service.ListActive(ctx, "owner-1")
	if len(all) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(all))
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active client, got %d", len(active))
	}
}

func TestDelete(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	c, _ := service.Create(ctx, "owner-1", subscribedClient())
	if err := service.Delete(ctx, "owner-2", c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign owner delete: expected ErrNotFound, got %v", err)
	}
	if err := service.Delete(ctx, "owner-1", c.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Get(ctx, "owner-1", c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPlan_MissingMealReadsAsUnsubscribed(t *testing.T) {
	p := &Plan{Lunch: &MealPlan{Subscribed: true, Price: 80}}
	if got := p.Meal(meal.Dinner); got.Subscribed || got.Price != 0 {
		t.Fatalf("expected zero meal plan, got %+v", got)
	}
	var nilPlan *Plan
	if got := nilPlan.Meal(meal.Lunch); got.Subscribed {
		t.Fatalf("nil plan: expected zero meal plan, got %+v", got)
	}
}

func TestPlan_ActiveWindow(t *testing.T) {
	p := &Plan{StartDate: calendar.MustParse("2024-03-15")}
	if p.Active(calendar.MustParse("2024-03-14")) {
		t.Error("day before start should be outside")
	}
	if !p.Active(calendar.MustParse("2099-01-01")) {
		t.Error("open-ended plan should have no upper bound")
	}
	p.EndDate = calendar.MustParse("2024-03-20")
	if !p.Active(calendar.MustParse("2024-03-20")) || p.Active(calendar.MustParse("2024-03-21")) {
		t.Error("end date must be inclusive")
	}
}
