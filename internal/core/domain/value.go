package domain

import "strconv"

// Value is a single observation value as received from the provider.
// SDMX-JSON carries either a number or a free-text code; both are kept
// as received, never coerced.
type Value struct {
	// Number is the numeric value when IsNumber is true.
	Number float64

	// Text is the textual value when IsNumber is false.
	Text string

	// IsNumber distinguishes the two representations.
	IsNumber bool
}

// NumberValue wraps a numeric observation value.
func NumberValue(f float64) Value {
	return Value{Number: f, IsNumber: true}
}

// TextValue wraps a textual observation value.
func TextValue(s string) Value {
	return Value{Text: s}
}

// String renders the value for display.
func (v Value) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}
