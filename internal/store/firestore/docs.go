package firestore

import (
	"encoding/json"
	"fmt"
	"time"

	"mealbox/internal/billing"
	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/meal"
	"mealbox/internal/order"
	"mealbox/internal/pause"
)

type mealPlanDoc struct {
	Subscribed bool    `firestore:"subscribed"`
	Price      float64 `firestore:"price"`
}

type planDoc struct {
	Lunch        *mealPlanDoc `firestore:"lunch,omitempty"`
	Dinner       *mealPlanDoc `firestore:"dinner,omitempty"`
	StartDate    string       `firestore:"startDate,omitempty"`
	EndDate      string       `firestore:"endDate,omitempty"`
	MonthlyPrice float64      `firestore:"monthlyPrice,omitempty"`
	Date         string       `firestore:"date,omitempty"`
	MealType     string       `firestore:"mealType,omitempty"`
	Price        float64      `firestore:"price,omitempty"`
}

type clientDoc struct {
	OwnerID          string          `firestore:"ownerId"`
	Name             string          `firestore:"name"`
	Phone            string          `firestore:"phone"`
	Address          string          `firestore:"address"`
	CustomerType     string          `firestore:"customerType"`
	Status           string          `firestore:"status"`
	DeliverySchedule map[string]bool `firestore:"deliverySchedule"`
	Plan             *planDoc        `firestore:"plan"`
	CreatedAt        time.Time       `firestore:"createdAt"`
	UpdatedAt        time.Time       `firestore:"updatedAt"`
}

type pauseDoc struct {
	StartDate string    `firestore:"startDate"`
	EndDate   string    `firestore:"endDate"`
	MealType  string    `firestore:"mealType,omitempty"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type orderDoc struct {
	OrderDate string    `firestore:"orderDate"`
	MealType  string    `firestore:"mealType"`
	Price     float64   `firestore:"price"`
	Status    string    `firestore:"status"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type periodDoc struct {
	Start string `firestore:"start"`
	End   string `firestore:"end"`
}

type billDoc struct {
	OwnerID       string         `firestore:"ownerId"`
	ClientID      string         `firestore:"clientId"`
	ClientName    string         `firestore:"clientName"`
	BillingPeriod *periodDoc     `firestore:"billingPeriod,omitempty"`
	BillingMonth  string         `firestore:"billingMonth,omitempty"`
	Status        string         `firestore:"status"`
	FinalAmount   float64        `firestore:"finalAmount"`
	Details       map[string]any `firestore:"details"`
	GeneratedAt   time.Time      `firestore:"generatedAt"`
}

// --------------------------------------------------
// clients
// --------------------------------------------------

func toClientDoc(c *client.Client) clientDoc {
	schedule := make(map[string]bool, len(c.DeliverySchedule))
	for day, on := range c.DeliverySchedule {
		schedule[string(day)] = on
	}

	doc := clientDoc{
		OwnerID:          c.OwnerID,
		Name:             c.Name,
		Phone:            c.Phone,
		Address:          c.Address,
		CustomerType:     string(c.CustomerType),
		Status:           string(c.Status),
		DeliverySchedule: schedule,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if p := c.Plan; p != nil {
		doc.Plan = &planDoc{
			Lunch:        toMealPlanDoc(p.Lunch),
			Dinner:       toMealPlanDoc(p.Dinner),
			StartDate:    p.StartDate.String(),
			EndDate:      p.EndDate.String(),
			MonthlyPrice: p.MonthlyPrice,
			Date:         p.Date.String(),
			MealType:     string(p.MealType),
			Price:        p.Price,
		}
	}
	return doc
}

func toMealPlanDoc(mp *client.MealPlan) *mealPlanDoc {
	if mp == nil {
		return nil
	}
	return &mealPlanDoc{Subscribed: mp.Subscribed, Price: mp.Price}
}

func fromMealPlanDoc(mp *mealPlanDoc) *client.MealPlan {
	if mp == nil {
		return nil
	}
	return &client.MealPlan{Subscribed: mp.Subscribed, Price: mp.Price}
}

func (d clientDoc) toClient(id string) (*client.Client, error) {
	schedule := make(client.Schedule, len(d.DeliverySchedule))
	for day, on := range d.DeliverySchedule {
		schedule[calendar.Weekday(day)] = on
	}

	c := &client.Client{
		ID:               id,
		OwnerID:          d.OwnerID,
		Name:             d.Name,
		Phone:            d.Phone,
		Address:          d.Address,
		CustomerType:     client.CustomerType(d.CustomerType),
		Status:           client.Status(d.Status),
		DeliverySchedule: schedule,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if p := d.Plan; p != nil {
		plan := &client.Plan{
			Lunch:        fromMealPlanDoc(p.Lunch),
			Dinner:       fromMealPlanDoc(p.Dinner),
			MonthlyPrice: p.MonthlyPrice,
			MealType:     meal.Type(p.MealType),
			Price:        p.Price,
		}
		var err error
		if plan.StartDate, err = calendar.ParseOptional(p.StartDate); err != nil {
			return nil, fmt.Errorf("client %s plan.startDate: %w", id, err)
		}
		if plan.EndDate, err = calendar.ParseOptional(p.EndDate); err != nil {
			return nil, fmt.Errorf("client %s plan.endDate: %w", id, err)
		}
		if plan.Date, err = calendar.ParseOptional(p.Date); err != nil {
			return nil, fmt.Errorf("client %s plan.date: %w", id, err)
		}
		c.Plan = plan
	}
	return c, nil
}

// --------------------------------------------------
// pauses
// --------------------------------------------------

func toPauseDoc(p *pause.Pause) pauseDoc {
	return pauseDoc{
		StartDate: p.StartDate.String(),
		EndDate:   p.EndDate.String(),
		MealType:  string(p.MealType),
		CreatedAt: p.CreatedAt,
	}
}

func (d pauseDoc) toPause(clientID, id string) (pause.Pause, error) {
	start, err := calendar.Parse(d.StartDate)
	if err != nil {
		return pause.Pause{}, fmt.Errorf("pause %s startDate: %w", id, err)
	}
	end, err := calendar.Parse(d.EndDate)
	if err != nil {
		return pause.Pause{}, fmt.Errorf("pause %s endDate: %w", id, err)
	}
	return pause.Pause{
		ID:        id,
		ClientID:  clientID,
		StartDate: start,
		EndDate:   end,
		MealType:  pause.Scope(d.MealType),
		CreatedAt: d.CreatedAt,
	}, nil
}

// --------------------------------------------------
// orders
// --------------------------------------------------

func toOrderDoc(o *order.Order) orderDoc {
	return orderDoc{
		OrderDate: o.OrderDate.String(),
		MealType:  string(o.MealType),
		Price:     o.Price,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

func (d orderDoc) toOrder(clientID, id string) (order.Order, error) {
	date, err := calendar.Parse(d.OrderDate)
	if err != nil {
		return order.Order{}, fmt.Errorf("order %s orderDate: %w", id, err)
	}
	return order.Order{
		ID:        id,
		ClientID:  clientID,
		OrderDate: date,
		MealType:  meal.Type(d.MealType),
		Price:     d.Price,
		Status:    d.Status,
		Origin:    order.OriginRecord,
		CreatedAt: d.CreatedAt,
	}, nil
}

// --------------------------------------------------
// bills
// --------------------------------------------------

func toBillDoc(b *billing.Bill) (billDoc, error) {
	details, err := detailsToMap(b.Details)
	if err != nil {
		return billDoc{}, err
	}

	doc := billDoc{
		OwnerID:      b.OwnerID,
		ClientID:     b.ClientID,
		ClientName:   b.ClientName,
		BillingMonth: b.BillingMonth,
		Status:       string(b.Status),
		FinalAmount:  b.FinalAmount,
		Details:      details,
		GeneratedAt:  b.GeneratedAt,
	}
	if b.BillingPeriod != nil {
		doc.BillingPeriod = &periodDoc{
			Start: b.BillingPeriod.Start.String(),
			End:   b.BillingPeriod.End.String(),
		}
	}
	return doc, nil
}

func (d billDoc) toBill(id string) (*billing.Bill, error) {
	b := &billing.Bill{
		ID:           id,
		OwnerID:      d.OwnerID,
		ClientID:     d.ClientID,
		ClientName:   d.ClientName,
		BillingMonth: d.BillingMonth,
		Status:       billing.Status(d.Status),
		FinalAmount:  d.FinalAmount,
		GeneratedAt:  d.GeneratedAt,
	}
	if p := d.BillingPeriod; p != nil && p.Start != "" {
		start, err := calendar.Parse(p.Start)
		if err != nil {
			return nil, fmt.Errorf("bill %s billingPeriod.start: %w", id, err)
		}
		end, err := calendar.Parse(p.End)
		if err != nil {
			return nil, fmt.Errorf("bill %s billingPeriod.end: %w", id, err)
		}
		b.BillingPeriod = &calendar.Range{Start: start, End: end}
	}
	if err := mapToDetails(d.Details, &b.Details); err != nil {
		return nil, fmt.Errorf("bill %s details: %w", id, err)
	}
	return b, nil
}

// Details goes through its JSON form so the stored map keeps the same
// keys the API returns.
func detailsToMap(d billing.Details) (map[string]any, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func mapToDetails(m map[string]any, d *billing.Details) error {
	if len(m) == 0 {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, d)
}
