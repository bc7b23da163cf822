package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// NotAvailable is the display and wire form of a missing value
const NotAvailable = "N/A"

// Value is a numeric field that may be absent. The zero Value is absent.
type Value struct {
	v  float64
	ok bool
}

// Some returns a present Value. NaN and infinities are treated as absent.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// NA returns an absent Value
func NA() Value {
	return Value{}
}

// Get returns the number and whether it is present
func (v Value) Get() (float64, bool) {
	return v.v, v.ok
}

// Valid reports whether the value is present
func (v Value) Valid() bool {
	return v.ok
}

// Format renders the value with the given verb, or "N/A" when absent
func (v Value) Format(verb string) string {
	if !v.ok {
		return NotAvailable
	}
	return fmt.Sprintf(verb, v.v)
}

// String renders the value with two decimals
func (v Value) String() string {
	return v.Format("%.2f")
}

// MarshalJSON writes a number, or the string "N/A" when absent
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON accepts a number, a numeric string, "N/A" or null
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = NA()
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = ParseValue(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid value %s: %w", string(data), err)
	}
	*v = Some(f)
	return nil
}

// ParseValue parses a provider string. Empty strings and placeholders such as
// "None", "-" and "N/A" become absent, as does anything unparsable.
func ParseValue(s string) Value {
	switch s {
	case "", "None", "-", NotAvailable, "null":
		return NA()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NA()
	}
	return Some(f)
}
