package meal

import (
	"errors"
	"strings"
)

// Type is one of the two daily tiffin slots.
type Type string

const (
	Lunch  Type = "lunch"
	Dinner Type = "dinner"
)

// All lists meals in dispatch order.
var All = []Type{Lunch, Dinner}

var ErrUnknown = errors.New("meal type must be lunch or dinner")

func Parse(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case Lunch:
		return Lunch, nil
	case Dinner:
		return Dinner, nil
	}
	return "", ErrUnknown
}

func (t Type) Valid() bool {
	return t == Lunch || t == Dinner
}

// Label is the display form ("Lunch", "Dinner").
func (t Type) Label() string {
	switch t {
	case Lunch:
		return "Lunch"
	case Dinner:
		return "Dinner"
	}
	return string(t)
}
