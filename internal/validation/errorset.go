package validation

// ErrorSet flags every field of a schema; true means invalid. A set produced
// by Schema.Validate always carries one entry per schema field.
type ErrorSet map[string]bool

// Any reports whether at least one field is flagged.
func (e ErrorSet) Any() bool {
	for _, bad := range e {
		if bad {
			return true
		}
	}
	return false
}

// Has reports whether field is flagged.
func (e ErrorSet) Has(field string) bool {
	return e[field]
}

// Clone copies the set.
func (e ErrorSet) Clone() ErrorSet {
	out := make(ErrorSet, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
