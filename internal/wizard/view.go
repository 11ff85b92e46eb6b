package wizard

import (
	"github.com/bdo-activity/backend/internal/forms"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
	"github.com/bdo-activity/backend/internal/validation"
)

// View is a snapshot of the current screen for presentations.
type View struct {
	State  State                   `json:"state"`
	Screen navigation.Screen       `json:"screen"`
	Params navigation.Params       `json:"params"`
	Form   *validation.Description `json:"form,omitempty"`
	Recent []models.Record         `json:"recent,omitempty"`
}

// View returns the current screen snapshot. Form screens include their
// schema description and the recent records.
func (c *Controller) View() View {
	cur := c.router.Current()
	v := View{
		State:  StateOf(cur.Screen),
		Screen: cur.Screen,
		Params: cur.Params,
	}

	if schema, ok := forms.SchemaFor(string(cur.Screen)); ok {
		d := schema.Describe()
		v.Form = &d
		v.Recent = c.RecentRecords()
	}
	return v
}
