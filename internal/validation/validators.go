// Package validation evaluates wizard step payloads against ordered field
// schemas. Failures are returned as data: a flag per field plus the
// aggregated alert text, never as Go errors.
package validation

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is the raw input of one form field. Text fields use Text, time
// fields use Time; an unset time is nil.
type Value struct {
	Text string
	Time *time.Time
}

// Text wraps a text input.
func Text(s string) Value { return Value{Text: s} }

// Time wraps a time input.
func Time(t *time.Time) Value { return Value{Time: t} }

// Values maps schema field names to their current input.
type Values map[string]Value

// Required reports whether v is missing: empty text and no chosen time.
func Required(v Value) bool {
	return v.Time == nil && v.Text == ""
}

// Numeric reports whether s fails to parse as a finite number.
func Numeric(s string) bool {
	_, ok := ParseNumber(s)
	return !ok
}

// ParseNumber parses a meter reading. Surrounding blanks are ignored and a
// single decimal comma is accepted in place of a decimal point.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
