package firestore

import (
	"context"
	"os"
	"testing"

	"mealbox/internal/billing"
	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/meal"
	"mealbox/internal/order"
	"mealbox/internal/pause"
)

func d(s string) calendar.Date { return calendar.MustParse(s) }

func TestClientDoc_OpenEndedPlan(t *testing.T) {
	c := &client.Client{
		OwnerID:          "owner-1",
		Name:             "Asha",
		CustomerType:     client.Subscribed,
		Status:           client.Active,
		DeliverySchedule: client.Schedule{calendar.Monday: true, calendar.Sunday: false},
		Plan: &client.Plan{
			Lunch:     &client.MealPlan{Subscribed: true, Price: 80},
			StartDate: d("2024-03-15"),
		},
	}

	doc := toClientDoc(c)
	if doc.Plan.EndDate != "" || doc.Plan.StartDate != "2024-03-15" {
		t.Fatalf("unexpected plan dates %+v", doc.Plan)
	}
	if doc.Plan.Dinner != nil {
		t.Fatal("absent dinner must stay absent")
	}

	back, err := doc.toClient("c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.ID != "c1" || !back.Plan.EndDate.IsZero() || !back.Plan.StartDate.Equal(d("2024-03-15")) {
		t.Fatalf("unexpected client %+v", back)
	}
	if !back.DeliverySchedule.Enabled(calendar.Monday) || back.DeliverySchedule.Enabled(calendar.Sunday) {
		t.Fatalf("unexpected schedule %v", back.DeliverySchedule)
	}
}

func TestClientDoc_BadStoredDate(t *testing.T) {
	doc := clientDoc{Plan: &planDoc{StartDate: "15/03/2024"}}
	if _, err := doc.toClient("c1"); !calendar.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPauseAndOrderDocs(t *testing.T) {
	p, err := toPauseDoc(&pause.Pause{StartDate: d("2024-03-10"), EndDate: d("2024-03-12"), MealType: pause.ScopeLunch}).toPause("c1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ClientID != "c1" || p.Range().Len() != 3 || p.MealType != pause.ScopeLunch {
		t.Fatalf("unexpected pause %+v", p)
	}

	o, err := toOrderDoc(&order.Order{OrderDate: d("2024-03-05"), MealType: meal.Dinner, Price: 120}).toOrder("c1", "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Origin != order.OriginRecord || o.Price != 120 || o.OrderDate.String() != "2024-03-05" {
		t.Fatalf("unexpected order %+v", o)
	}
}

func TestBillDoc_DetailsAndLegacyMonth(t *testing.T) {
	amount := 120.0
	main := order.Order{OrderDate: d("2024-03-08"), MealType: meal.Lunch, Price: 120, Origin: order.OriginPlanSnapshot}
	b := &billing.Bill{
		OwnerID:      "owner-1",
		ClientID:     "c1",
		ClientName:   "Bala",
		BillingMonth: "2024-03",
		Status:       billing.StatusPaid,
		FinalAmount:  250,
		Details: billing.Details{
			Strategy:          billing.StrategyItemized,
			ExtraOrdersCount:  1,
			ExtraOrdersAmount: 130,
			MainOrder:         &main,
			MainOrderAmount:   &amount,
		},
	}

	doc, err := toBillDoc(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.BillingPeriod != nil {
		t.Fatal("legacy bill has no billingPeriod")
	}
	if doc.Details["extraOrdersAmount"] != 130.0 {
		t.Fatalf("details must use API keys, got %v", doc.Details)
	}

	back, err := doc.toBill("b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	period, err := back.Period()
	if err != nil || period.Len() != 31 {
		t.Fatalf("legacy month not resolved: %v %v", period, err)
	}
	if back.Details.MainOrder == nil || !back.Details.MainOrder.OrderDate.Equal(d("2024-03-08")) {
		t.Fatalf("main order lost: %+v", back.Details)
	}
	if back.Status != billing.StatusPaid || back.FinalAmount != 250 {
		t.Fatalf("unexpected bill %+v", back)
	}
}

// Runs against the Firestore emulator when FIRESTORE_EMULATOR_HOST is set.
func TestStore_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set, skipping integration test")
	}
	ctx := context.Background()

	store, err := Open(ctx, "mealbox-test", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	c := &client.Client{OwnerID: "owner-emu", Name: "Asha", CustomerType: client.OnDemand, Status: client.Active,
		Plan: &client.Plan{Date: d("2024-03-08"), MealType: meal.Lunch, Price: 120}}
	if err := store.Clients().Create(ctx, c); err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer store.Clients().Delete(ctx, c.ID)

	for _, date := range []string{"2024-02-28", "2024-03-05", "2024-03-31"} {
		if err := store.Orders().Create(ctx, &order.Order{ClientID: c.ID, OrderDate: d(date), MealType: meal.Dinner, Price: 50}); err != nil {
			t.Fatalf("create order: %v", err)
		}
	}

	orders, err := store.Orders().ListInRange(ctx, c.ID, d("2024-03-01"), d("2024-03-31"))
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}

	active, err := store.Clients().ListActive(ctx, "owner-emu")
	if err != nil || len(active) == 0 {
		t.Fatalf("list active: %v (%d)", err, len(active))
	}
}
