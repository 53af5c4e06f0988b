package calendarview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/meal"
	"mealbox/internal/order"
	"mealbox/internal/pause"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func d(s string) calendar.Date { return calendar.MustParse(s) }

// 2024-03-04 is a Monday.
func weekSubscriber() *client.Client {
	schedule := client.Schedule{}
	for _, w := range calendar.Weekdays {
		schedule[w] = true
	}
	schedule[calendar.Monday] = false

	return &client.Client{
		ID:               "c1",
		OwnerID:          "owner-1",
		CustomerType:     client.Subscribed,
		Status:           client.Active,
		DeliverySchedule: schedule,
		Plan: &client.Plan{
			Lunch:     &client.MealPlan{Subscribed: true, Price: 80},
			StartDate: d("2024-03-04"),
			EndDate:   d("2024-03-10"),
		},
	}
}

func byDate(events []Event) map[string]Event {
	out := make(map[string]Event, len(events))
	for _, ev := range events {
		out[ev.Date.String()] = ev
	}
	return out
}

func TestProjectEvents_Layers(t *testing.T) {
	c := weekSubscriber()
	pauses := []pause.Pause{{StartDate: d("2024-03-06"), EndDate: d("2024-03-07"), MealType: pause.ScopeDinner}}
	orders := []order.Order{
		{OrderDate: d("2024-03-07"), MealType: meal.Dinner, Price: 90},
		{OrderDate: d("2024-03-08"), MealType: meal.Dinner, Price: 90},
		{OrderDate: d("2024-03-08"), MealType: meal.Lunch, Price: 90},
		{OrderDate: d("2024-03-12"), MealType: meal.Lunch, Price: 90},
	}

	events := ProjectEvents(c, pauses, orders)
	got := byDate(events)

	tests := []struct {
		date       string
		label      string
		background bool
	}{
		{"2024-03-04", LabelSkipped, true},
		{"2024-03-05", LabelDelivered, false},
		{"2024-03-06", LabelPaused, false},
		{"2024-03-07", LabelPaused + " + Extra", false},
		{"2024-03-08", LabelDelivered + " + Extra", false},
		{"2024-03-10", LabelDelivered, false},
		{"2024-03-12", LabelSingleOrder, false},
	}
	for _, tt := range tests {
		ev, ok := got[tt.date]
		if !ok {
			t.Fatalf("%s: no event", tt.date)
		}
		if ev.Label != tt.label || ev.IsBackground != tt.background {
			t.Errorf("%s: got %q background=%v, want %q background=%v", tt.date, ev.Label, ev.IsBackground, tt.label, tt.background)
		}
	}

	if len(events) != 8 {
		t.Fatalf("got %d events, want 8", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Date.Before(events[i-1].Date) {
			t.Fatalf("events not sorted at %d", i)
		}
	}
}

func TestProjectEvents_ExtraOnSkippedDayIsForeground(t *testing.T) {
	c := weekSubscriber()
	events := byDate(ProjectEvents(c, nil, []order.Order{{OrderDate: d("2024-03-04"), MealType: meal.Lunch}}))

	ev := events["2024-03-04"]
	if ev.Label != LabelSkipped+" + Extra" || ev.IsBackground {
		t.Fatalf("got %+v", ev)
	}
}

func TestProjectEvents_PauseOutsidePlanAddsDays(t *testing.T) {
	c := weekSubscriber()
	events := byDate(ProjectEvents(c, []pause.Pause{{StartDate: d("2024-03-10"), EndDate: d("2024-03-11")}}, nil))

	if events["2024-03-11"].Label != LabelPaused {
		t.Fatalf("got %+v", events["2024-03-11"])
	}
}

func TestProjectEvents_OpenEndedPlanHasNoBaseline(t *testing.T) {
	c := weekSubscriber()
	c.Plan.EndDate = calendar.Date{}

	events := ProjectEvents(c, nil, []order.Order{{OrderDate: d("2024-03-05"), MealType: meal.Lunch}})
	if len(events) != 1 || events[0].Label != LabelSingleOrder {
		t.Fatalf("expected only the single order, got %+v", events)
	}
}

func TestProjectEvents_OnDemand(t *testing.T) {
	c := &client.Client{
		ID:           "c2",
		CustomerType: client.OnDemand,
		Plan:         &client.Plan{Date: d("2024-03-01"), MealType: meal.Lunch, Price: 120},
	}

	fallback := ProjectEvents(c, nil, nil)
	if len(fallback) != 1 || fallback[0].Label != "Order: Lunch" || fallback[0].Date.String() != "2024-03-01" {
		t.Fatalf("unexpected fallback %+v", fallback)
	}

	events := ProjectEvents(c, nil, []order.Order{
		{OrderDate: d("2024-03-09"), MealType: meal.Dinner},
		{OrderDate: d("2024-03-03"), MealType: meal.Lunch},
	})
	if len(events) != 2 || events[0].Label != "Order: Lunch" || events[1].Label != "Order: Dinner" {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestHandler_Events(t *testing.T) {
	gin.SetMode(gin.TestMode)

	clients := client.NewInMemoryRepository()
	c := weekSubscriber()
	c.ID = ""
	if err := clients.Create(context.Background(), c); err != nil {
		t.Fatalf("create: %v", err)
	}
	svc := NewService(clients, pause.NewInMemoryRepository(), order.NewInMemoryRepository(), zap.NewNop().Sugar())
	h := NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("ownerID", "owner-1") })
	r.GET("/clients/:id/calendar", h.Events)

	tests := []struct {
		name     string
		url      string
		wantCode int
	}{
		{"all events", "/clients/" + c.ID + "/calendar", http.StatusOK},
		{"window", "/clients/" + c.ID + "/calendar?start=2024-03-05&end=2024-03-06", http.StatusOK},
		{"bad window", "/clients/" + c.ID + "/calendar?start=yesterday", http.StatusBadRequest},
		{"unknown client", "/clients/nope/calendar", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}
