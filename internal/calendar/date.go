package calendar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date is a calendar day pinned to UTC midnight.
// All date comparisons in the service go through this type so that
// local-timezone parsing can never shift a day.
type Date struct {
	t time.Time
}

// ValidationError marks input that cannot be interpreted at all
// (as opposed to input that legitimately yields zero results).
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid value %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// NewValidationError builds a ValidationError for callers outside the package.
func NewValidationError(field, value, msg string) error {
	return &ValidationError{Field: field, Value: value, Err: errors.New(msg)}
}

func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime keeps the calendar day of t as seen in t's own location.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today returns the calendar day of now.
func Today(now time.Time) Date {
	return FromTime(now)
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Value: s, Err: errors.New("expected YYYY-MM-DD")}
	}
	return FromTime(t), nil
}

// ParseOptional treats an empty string as the zero Date.
func ParseOptional(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	return Parse(s)
}

// MustParse panics on malformed input; only for literals in tests and fixtures.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(layout)
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Year() int { return d.t.Year() }

func (d Date) Month() time.Month { return d.t.Month() }

func (d Date) Day() int { return d.t.Day() }

func (d Date) Weekday() Weekday { return WeekdayName(d) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &ValidationError{Field: "date", Value: string(b), Err: err}
	}
	parsed, err := ParseOptional(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
