package pause

import (
	"time"

	"mealbox/internal/calendar"
	"mealbox/internal/meal"
)

// Scope says which meals a pause suppresses. Empty means both.
type Scope string

const (
	ScopeLunch  Scope = "lunch"
	ScopeDinner Scope = "dinner"
	ScopeBoth   Scope = "both"
)

func (s Scope) Valid() bool {
	switch s {
	case "", ScopeLunch, ScopeDinner, ScopeBoth:
		return true
	}
	return false
}

// Includes reports whether the scope suppresses m.
func (s Scope) Includes(m meal.Type) bool {
	return s == "" || s == ScopeBoth || string(s) == string(m)
}

// Pause is an inclusive date range during which deliveries are suppressed.
type Pause struct {
	ID        string        `json:"id"`
	ClientID  string        `json:"clientId"`
	StartDate calendar.Date `json:"startDate"`
	EndDate   calendar.Date `json:"endDate"`
	MealType  Scope         `json:"mealType,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (p Pause) Range() calendar.Range {
	return calendar.Range{Start: p.StartDate, End: p.EndDate}
}

// Covers reports whether the pause suppresses meal m on day d.
func (p Pause) Covers(d calendar.Date, m meal.Type) bool {
	return p.MealType.Includes(m) && calendar.IsWithinInterval(d, p.StartDate, p.EndDate)
}
