// Package tui is the terminal presentation of the wizard: one screen per
// wizard state, forms rendered from the step schemas.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/bdo-activity/backend/internal/assembly"
	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/export"
	"github.com/bdo-activity/backend/internal/forms"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
	"github.com/bdo-activity/backend/internal/wizard"
)

// Option configures a Model.
type Option func(*Model)

// WithNow replaces time.Now as the day typed clock times land on.
func WithNow(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithLogger sets the logger for unexpected wizard errors.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// Model is the bubbletea model.
type Model struct {
	wizard   *wizard.Controller
	router   navigation.Router
	clock    *display.Clock
	exporter *export.Exporter
	styles   Styles
	logger   zerolog.Logger
	now      func() time.Time

	form   *form
	alert  string
	flash  string
	cursor int

	width    int
	height   int
	quitting bool
}

// New creates a model over a wizard driving router.
func New(w *wizard.Controller, router navigation.Router, clock *display.Clock, opts ...Option) Model {
	m := Model{
		wizard:   w,
		router:   router,
		clock:    clock,
		exporter: export.New(clock),
		styles:   DefaultStyles(),
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// The alert blocks everything until dismissed.
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.alert = ""
		}
		return m, nil
	}

	switch m.wizard.State() {
	case wizard.StateSelectingForm:
		return m.homeKey(msg)
	case wizard.StateEnteringGeneralInfo, wizard.StateEnteringActivity:
		return m.formKey(msg)
	case wizard.StateBrowsingLedger:
		return m.historyKey(msg)
	case wizard.StateViewingRecordDetail:
		switch msg.String() {
		case "esc", "enter", "backspace":
			m.back()
		}
	}
	return m, nil
}

func (m Model) homeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "1", "n", "enter":
		m.flash = ""
		m.do(m.wizard.OpenForm)
	case "2", "h":
		m.flash = ""
		m.do(m.wizard.Browse)
	}
	return m, nil
}

func (m Model) formKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.back()
		return m, nil
	case "tab", "down":
		m.form.move(1)
		return m, nil
	case "shift+tab", "up":
		m.form.move(-1)
		return m, nil
	case "enter":
		m.submit()
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m Model) historyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := 0
	if l, ok := m.wizard.Ledger(); ok {
		n = l.Len()
	}

	switch msg.String() {
	case "esc", "q":
		m.back()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "enter":
		if n > 0 {
			idx := m.cursor
			m.do(func() error { return m.wizard.SelectRecord(idx) })
		}
	}
	return m, nil
}

// submit sends the current form to the wizard. A failing step keeps the
// form and raises the alert.
func (m *Model) submit() {
	values := m.form.values(m.clock, m.now())

	switch m.wizard.State() {
	case wizard.StateEnteringGeneralInfo:
		res, err := m.wizard.SubmitGeneralInfo(forms.GeneralInfoFromValues(values))
		if err != nil {
			m.logger.Error().Err(err).Msg("submit general info")
			return
		}
		if !res.Valid {
			m.form.errors = res.Errors
			m.alert = res.Message()
			return
		}
	case wizard.StateEnteringActivity:
		res, rec, err := m.wizard.CommitActivity(forms.ActivityFromValues(values))
		if err != nil {
			m.logger.Error().Err(err).Msg("commit activity")
			return
		}
		if !res.Valid {
			m.form.errors = res.Errors
			m.alert = res.Message()
			return
		}
		m.flash = assembly.Summary(rec)
		m.logger.Info().Str("registration", rec.RegistrationID).Msg("record committed")
	}
	m.sync()
}

func (m *Model) back() {
	m.do(m.wizard.Back)
}

func (m *Model) do(op func() error) {
	if err := op(); err != nil {
		m.logger.Warn().Err(err).Msg("wizard rejected key")
		return
	}
	m.sync()
}

// sync rebuilds screen-local state for the route the router now shows.
func (m *Model) sync() {
	cur := m.router.Current()
	m.form = nil

	switch p := cur.Params.(type) {
	case navigation.GeneralInfoParams:
		m.form = newForm(forms.GeneralInfoSchema())
		if p.Prefill != nil {
			m.prefill(*p.Prefill)
		}
	case navigation.ActivityParams:
		m.form = newForm(forms.ActivitySchema())
	case navigation.HistoryParams:
		if m.cursor >= p.Ledger.Len() {
			m.cursor = 0
		}
	case navigation.HomeParams:
		m.cursor = 0
	}
}

func (m *Model) prefill(g models.GeneralInfo) {
	m.form.setText(forms.FieldRegistrationID, g.RegistrationID)
	m.form.setText(forms.FieldCoordinatorName, g.CoordinatorName)
	m.form.setText(forms.FieldAssetTag, g.AssetTag)
	m.form.setTime(forms.FieldStartTime, g.StartTime, m.clock)
	m.form.setTime(forms.FieldEndTime, g.EndTime, m.clock)
	m.form.setText(forms.FieldStartMeterReading, g.StartMeterReading)
	m.form.setText(forms.FieldEndMeterReading, g.EndMeterReading)
}
