package calendar

import (
	"fmt"
	"iter"
	"time"
)

// Weekday is the lowercase weekday name used as a delivery schedule key.
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// Weekdays is ordered like time.Weekday.
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func WeekdayName(d Date) Weekday {
	return Weekdays[d.t.Weekday()]
}

// Valid reports whether w is one of the seven weekday names.
func (w Weekday) Valid() bool {
	for _, name := range Weekdays {
		if w == name {
			return true
		}
	}
	return false
}

// Days yields every day in [start, end], ascending.
// An inverted range yields nothing.
func Days(start, end Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if start.IsZero() || end.IsZero() {
			return
		}
		for d := start; !d.After(end); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// IsWithinInterval is inclusive on both ends.
func IsWithinInterval(d, start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Valid is false for inverted or unset ranges.
func (r Range) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}

func (r Range) Contains(d Date) bool {
	return r.Valid() && IsWithinInterval(d, r.Start, r.End)
}

func (r Range) Days() iter.Seq[Date] {
	return Days(r.Start, r.End)
}

// Len is the number of days in the range, 0 when invalid.
func (r Range) Len() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End.t.Sub(r.Start.t).Hours()/24) + 1
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange covers the first through the last day of the month.
func MonthRange(year int, month time.Month) Range {
	return Range{
		Start: New(year, month, 1),
		End:   New(year, month, DaysInMonth(year, month)),
	}
}

// ParseMonth reads a YYYY-MM billing month.
func ParseMonth(s string) (Range, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Range{}, &ValidationError{Field: "month", Value: s, Err: fmt.Errorf("expected YYYY-MM")}
	}
	return MonthRange(t.Year(), t.Month()), nil
}

// FormatMonth is the inverse of ParseMonth.
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
