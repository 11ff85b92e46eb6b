package validation

import (
	"encoding/json"
	"fmt"
)

// Kind is the input widget a presentation should render for a field.
type Kind string

const (
	KindText    Kind = "text"
	KindNumeric Kind = "numeric"
	KindTime    Kind = "time"
)

// Field declares one form field. Declaration order inside a Schema is the
// order used for rendering and for the aggregated alert.
type Field struct {
	Name        string
	Label       string
	Alert       string // alert line, Label when empty
	Hint        string // inline error text
	Placeholder string
	Kind        Kind
	Required    bool
	Numeric     bool
}

// AlertLabel is the text listed for this field in the aggregated alert.
func (f Field) AlertLabel() string {
	if f.Alert != "" {
		return f.Alert
	}
	return f.Label
}

// Schema is the ordered description of one wizard step.
type Schema struct {
	Step   string
	Title  string
	Fields []Field
	Rules  []Rule
}

// Field looks a field up by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldDescription is the presentation view of a Field.
type FieldDescription struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Kind        Kind   `json:"kind"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

// Description is what a presentation layer needs to render a step
// generically.
type Description struct {
	Step   string             `json:"step"`
	Title  string             `json:"title"`
	Fields []FieldDescription `json:"fields"`
}

// Describe returns the presentation description of s.
func (s Schema) Describe() Description {
	d := Description{
		Step:   s.Step,
		Title:  s.Title,
		Fields: make([]FieldDescription, 0, len(s.Fields)),
	}
	for _, f := range s.Fields {
		d.Fields = append(d.Fields, FieldDescription{
			Name:        f.Name,
			Label:       f.Label,
			Kind:        f.Kind,
			Required:    f.Required,
			Placeholder: f.Placeholder,
			Hint:        f.Hint,
		})
	}
	return d
}

// JSONSchema renders a draft 2020-12 JSON Schema describing the structural
// shape of a step payload: text fields are strings and time fields are
// RFC 3339 strings or null. Content rules stay with Validate.
func (s Schema) JSONSchema() ([]byte, error) {
	props := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		switch f.Kind {
		case KindTime:
			props[f.Name] = map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string", "format": "date-time"},
					map[string]any{"type": "null"},
				},
			}
		default:
			props[f.Name] = map[string]any{"type": "string"}
		}
	}
	doc := map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"$id":        fmt.Sprintf("https://bdo.schemas.local/forms/%s.schema.json", s.Step),
		"title":      s.Title,
		"type":       "object",
		"properties": props,
	}
	return json.Marshal(doc)
}
