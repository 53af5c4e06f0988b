package pause

import (
	"mealbox/internal/calendar"
	"mealbox/internal/meal"
)

// IsPaused reports whether any pause suppresses meal m on day d.
// Overlapping pauses are neither merged nor deduplicated.
func IsPaused(d calendar.Date, m meal.Type, pauses []Pause) bool {
	for _, p := range pauses {
		if p.Covers(d, m) {
			return true
		}
	}
	return false
}

// IsPausedAnyMeal reports whether any pause, whatever its scope, covers d.
func IsPausedAnyMeal(d calendar.Date, pauses []Pause) bool {
	for _, p := range pauses {
		if calendar.IsWithinInterval(d, p.StartDate, p.EndDate) {
			return true
		}
	}
	return false
}

// PausedDays counts the distinct days of r covered by at least one pause
// of any scope.
func PausedDays(pauses []Pause, r calendar.Range) int {
	n := 0
	for d := range r.Days() {
		if IsPausedAnyMeal(d, pauses) {
			n++
		}
	}
	return n
}
