package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/validation"
)

// inputLayout is how clock times are typed.
const inputLayout = "15:04"

// form renders a step schema as a column of text inputs.
type form struct {
	schema validation.Schema
	inputs []textinput.Model
	focus  int
	errors validation.ErrorSet
}

func newForm(schema validation.Schema) *form {
	f := &form{schema: schema, errors: validation.ErrorSet{}}
	for _, field := range schema.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = field.Placeholder
		in.CharLimit = 64
		switch field.Kind {
		case validation.KindTime:
			in.Placeholder = "HH:MM"
			in.CharLimit = 5
		}
		f.inputs = append(f.inputs, in)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *form) setText(name, value string) {
	for i, field := range f.schema.Fields {
		if field.Name == name {
			f.inputs[i].SetValue(value)
			return
		}
	}
}

func (f *form) setTime(name string, t *time.Time, clock *display.Clock) {
	if t == nil {
		return
	}
	f.setText(name, t.In(clock.Location()).Format(inputLayout))
}

// values reads the inputs back. Clock times are placed on the day of ref; a
// time that does not parse counts as not picked.
func (f *form) values(clock *display.Clock, ref time.Time) validation.Values {
	out := make(validation.Values, len(f.schema.Fields))
	for i, field := range f.schema.Fields {
		raw := strings.TrimSpace(f.inputs[i].Value())
		if field.Kind == validation.KindTime {
			if t, err := clock.Parse(raw, ref); err == nil {
				out[field.Name] = validation.Time(&t)
			} else {
				out[field.Name] = validation.Time(nil)
			}
			continue
		}
		out[field.Name] = validation.Text(raw)
	}
	return out
}

func (f *form) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view(st Styles) string {
	var b strings.Builder
	for i, field := range f.schema.Fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		switch {
		case f.errors[field.Name]:
			b.WriteString(st.Error.Render(label))
		case i == f.focus:
			b.WriteString(st.Focused.Render(label))
		default:
			b.WriteString(st.Label.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if f.errors[field.Name] && field.Hint != "" {
			b.WriteString(st.Hint.Render(field.Hint))
			b.WriteString("\n")
		}
	}
	return b.String()
}
