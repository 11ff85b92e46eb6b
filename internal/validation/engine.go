package validation

import "strings"

// AlertHeader opens the aggregated alert message.
const AlertHeader = "Corrija os seguintes campos:"

// Result is the outcome of validating one step.
type Result struct {
	Errors ErrorSet
	Valid  bool

	failing []Field
}

// Validate runs every field validator, then every cross-field rule on the
// same values. Rules are OR-combined with the field flags.
func (s Schema) Validate(values Values) Result {
	errs := make(ErrorSet, len(s.Fields))
	for _, f := range s.Fields {
		v := values[f.Name]
		bad := false
		if f.Required && Required(v) {
			bad = true
		}
		if f.Numeric && Numeric(v.Text) {
			bad = true
		}
		errs[f.Name] = bad
	}

	for _, r := range s.Rules {
		r.Apply(values, errs)
	}

	res := Result{Errors: errs}
	for _, f := range s.Fields {
		if errs[f.Name] {
			res.failing = append(res.failing, f)
		}
	}
	res.Valid = len(res.failing) == 0
	return res
}

// Failing lists the flagged field names in schema order.
func (r Result) Failing() []string {
	names := make([]string, len(r.failing))
	for i, f := range r.failing {
		names[i] = f.Name
	}
	return names
}

// Message builds the blocking alert text: the header followed by one
// "- label" line per flagged field in schema order. Empty when valid.
func (r Result) Message() string {
	if r.Valid {
		return ""
	}
	lines := make([]string, 0, len(r.failing)+1)
	lines = append(lines, AlertHeader)
	for _, f := range r.failing {
		lines = append(lines, "- "+f.AlertLabel())
	}
	return strings.Join(lines, "\n")
}
