package pause

import (
	"context"
	"errors"
	"testing"

	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/meal"

	"go.uber.org/zap"
)

func d(s string) calendar.Date { return calendar.MustParse(s) }

func TestIsPaused_MealScope(t *testing.T) {
	pauses := []Pause{
		{StartDate: d("2024-03-10"), EndDate: d("2024-03-12"), MealType: ScopeLunch},
	}

	if !IsPaused(d("2024-03-11"), meal.Lunch, pauses) {
		t.Error("lunch should be paused")
	}
	if IsPaused(d("2024-03-11"), meal.Dinner, pauses) {
		t.Error("dinner should not be paused by a lunch-only pause")
	}
}

func TestIsPaused_UnsetScopeMeansBoth(t *testing.T) {
	pauses := []Pause{{StartDate: d("2024-03-10"), EndDate: d("2024-03-10")}}

	for _, m := range meal.All {
		if !IsPaused(d("2024-03-10"), m, pauses) {
			t.Errorf("%s should be paused", m)
		}
	}
}

func TestIsPaused_SingleDayBoundary(t *testing.T) {
	pauses := []Pause{{StartDate: d("2024-03-10"), EndDate: d("2024-03-10"), MealType: ScopeBoth}}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-03-09", false},
		{"2024-03-10", true},
		{"2024-03-11", false},
	}
	for _, tt := range tests {
		if got := IsPaused(d(tt.date), meal.Lunch, pauses); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestIsPaused_OverlappingPauses(t *testing.T) {
	pauses := []Pause{
		{StartDate: d("2024-03-01"), EndDate: d("2024-03-05"), MealType: ScopeDinner},
		{StartDate: d("2024-03-04"), EndDate: d("2024-03-08"), MealType: ScopeBoth},
	}
	if !IsPaused(d("2024-03-04"), meal.Dinner, pauses) || !IsPaused(d("2024-03-08"), meal.Lunch, pauses) {
		t.Fatal("any covering pause must suffice")
	}
	if IsPaused(d("2024-03-02"), meal.Lunch, pauses) {
		t.Fatal("lunch on 03-02 is only covered by a dinner pause")
	}
}

func TestIsPaused_NoPauses(t *testing.T) {
	if IsPaused(d("2024-03-10"), meal.Lunch, nil) {
		t.Fatal("nil pauses must never pause")
	}
}

func TestPausedDays_DistinctDaysInRange(t *testing.T) {
	pauses := []Pause{
		{StartDate: d("2024-02-27"), EndDate: d("2024-03-02"), MealType: ScopeLunch},
		{StartDate: d("2024-03-02"), EndDate: d("2024-03-03"), MealType: ScopeBoth},
	}
	got := PausedDays(pauses, calendar.MonthRange(2024, 3))
	if got != 3 { // 1, 2, 3 March
		t.Fatalf("got %d, want 3", got)
	}
}

func newService() (*Service, string) {
	clients := client.NewService(client.NewInMemoryRepository(), zap.NewNop().Sugar())
	c, _ := clients.Create(context.Background(), "owner-1", &client.Client{
		Name:         "Asha",
		CustomerType: client.Subscribed,
		Plan:         &client.Plan{StartDate: d("2024-03-01")},
	})
	return NewService(NewInMemoryRepository(), clients, zap.NewNop().Sugar()), c.ID
}

func TestService_CreateValidates(t *testing.T) {
	service, clientID := newService()
	ctx := context.Background()

	_, err := service.Create(ctx, "owner-1", clientID, &Pause{StartDate: d("2024-03-12"), EndDate: d("2024-03-10")})
	if !calendar.IsValidation(err) {
		t.Fatalf("inverted pause: expected validation error, got %v", err)
	}

	_, err = service.Create(ctx, "owner-1", clientID, &Pause{StartDate: d("2024-03-10"), EndDate: d("2024-03-12"), MealType: "breakfast"})
	if !calendar.IsValidation(err) {
		t.Fatalf("unknown scope: expected validation error, got %v", err)
	}

	p, err := service.Create(ctx, "owner-1", clientID, &Pause{StartDate: d("2024-03-10"), EndDate: d("2024-03-10")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MealType != ScopeBoth {
		t.Fatalf("expected default scope both, got %q", p.MealType)
	}
}

func TestService_ForeignOwner(t *testing.T) {
	service, clientID := newService()

	_, err := service.List(context.Background(), "owner-2", clientID)
	if !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected client.ErrNotFound, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	service, clientID := newService()
	ctx := context.Background()

	p, _ := service.Create(ctx, "owner-1", clientID, &Pause{StartDate: d("2024-03-10"), EndDate: d("2024-03-11")})
	if err := service.Delete(ctx, "owner-1", clientID, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.Delete(ctx, "owner-1", clientID, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	pauses, _ := service.List(ctx, "owner-1", clientID)
	if len(pauses) != 0 {
		t.Fatalf("expected no pauses, got %d", len(pauses))
	}
}
