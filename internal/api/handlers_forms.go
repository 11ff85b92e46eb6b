// handlers_forms.go - Step schema handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bdo-activity/backend/internal/forms"
	"github.com/bdo-activity/backend/internal/validation"
)

// FormHandlerImpl implements the FormHandler interface
type FormHandlerImpl struct{}

// NewFormHandler creates a new form handler
func NewFormHandler() FormHandler {
	return &FormHandlerImpl{}
}

// HandleListForms returns the description of every step in wizard order
func (h *FormHandlerImpl) HandleListForms(c echo.Context) error {
	out := make([]validation.Description, 0, len(forms.Steps()))
	for _, step := range forms.Steps() {
		s, _ := forms.SchemaFor(step)
		out = append(out, s.Describe())
	}
	return c.JSON(http.StatusOK, out)
}

// HandleGetForm returns the field list of one step
func (h *FormHandlerImpl) HandleGetForm(c echo.Context) error {
	step := c.Param("step")
	s, ok := forms.SchemaFor(step)
	if !ok {
		return NewNotFoundError("form", step)
	}
	return c.JSON(http.StatusOK, s.Describe())
}

// HandleGetFormSchema returns the JSON Schema request bodies of a step must match
func (h *FormHandlerImpl) HandleGetFormSchema(c echo.Context) error {
	step := c.Param("step")
	s, ok := forms.SchemaFor(step)
	if !ok {
		return NewNotFoundError("form", step)
	}
	doc, err := s.JSONSchema()
	if err != nil {
		return NewInternalError("failed to render schema", err)
	}
	return c.Blob(http.StatusOK, "application/schema+json", doc)
}
