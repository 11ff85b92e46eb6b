// bodies.go - Structural request validation against the step JSON Schemas
package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/bdo-activity/backend/internal/forms"
)

// BodyValidator checks that a step payload has the right JSON shape before
// it is bound. Field content is left to the step validation.
type BodyValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewBodyValidator compiles the JSON Schema of every step.
func NewBodyValidator() (*BodyValidator, error) {
	v := &BodyValidator{schemas: make(map[string]*jsonschema.Schema)}

	for _, step := range forms.Steps() {
		schema, _ := forms.SchemaFor(step)
		doc, err := schema.JSONSchema()
		if err != nil {
			return nil, fmt.Errorf("render %s schema: %w", step, err)
		}

		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		c.AssertFormat = true
		url := fmt.Sprintf("https://bdo.schemas.local/forms/%s.schema.json", step)
		if err := c.AddResource(url, bytes.NewReader(doc)); err != nil {
			return nil, fmt.Errorf("load %s schema: %w", step, err)
		}
		compiled, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", step, err)
		}
		v.schemas[step] = compiled
	}
	return v, nil
}

// Decode validates body against the schema of step and unmarshals it into
// dst. Structural problems come back as a 400 APIError.
func (v *BodyValidator) Decode(step string, body []byte, dst any) error {
	schema, ok := v.schemas[step]
	if !ok {
		return NewNotFoundError("form", step)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if err := schema.Validate(doc); err != nil {
		return NewBadRequestError("request body does not match the form shape", err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	return nil
}
