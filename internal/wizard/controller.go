// Package wizard drives the two-step activity entry flow on top of a
// navigation.Router. All data moves between screens as route params; the
// controller keeps no copy of the ledger.
package wizard

import (
	"errors"
	"fmt"

	"github.com/bdo-activity/backend/internal/assembly"
	"github.com/bdo-activity/backend/internal/forms"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
	"github.com/bdo-activity/backend/internal/validation"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed
	// from the current screen.
	ErrInvalidTransition = errors.New("invalid wizard transition")
	// ErrAtRoot is returned by Back on the form-selection screen.
	ErrAtRoot = errors.New("already at the first screen")
	// ErrRecordNotFound is returned by SelectRecord for an index outside
	// the ledger.
	ErrRecordNotFound = errors.New("record not found")
)

// DefaultRecentCount is how many records the form screens list below the
// inputs.
const DefaultRecentCount = 3

// Observer is told about validation outcomes. Metrics implement it.
type Observer interface {
	ValidationFailed(step string, fields []string)
	RecordCommitted(rec models.Record)
}

type nopObserver struct{}

func (nopObserver) ValidationFailed(string, []string) {}
func (nopObserver) RecordCommitted(models.Record)     {}

// Option configures a Controller.
type Option func(*Controller)

// WithRecentCount sets how many records RecentRecords returns.
func WithRecentCount(n int) Option {
	return func(c *Controller) { c.recent = n }
}

// WithObserver attaches o to the controller.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// Controller is the wizard state machine. It is not safe for concurrent use;
// callers serialize access per session.
type Controller struct {
	router    navigation.Router
	assembler *assembly.Assembler
	recent    int
	observer  Observer
}

// New creates a controller driving router.
func New(router navigation.Router, assembler *assembly.Assembler, opts ...Option) *Controller {
	c := &Controller{
		router:    router,
		assembler: assembler,
		recent:    DefaultRecentCount,
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the state shown by the router's current screen.
func (c *Controller) State() State {
	return StateOf(c.router.Current().Screen)
}

// Start resets the wizard to form selection holding ledger.
func (c *Controller) Start(ledger models.Ledger) {
	c.router.ResetTo(navigation.ScreenHome, navigation.HomeParams{Ledger: ledger})
}

// OpenForm moves from form selection to the first step.
func (c *Controller) OpenForm() error {
	p, err := expect[navigation.HomeParams](c, "open form")
	if err != nil {
		return err
	}
	c.router.Navigate(navigation.ScreenGeneralInfo, navigation.GeneralInfoParams{Ledger: p.Ledger})
	return nil
}

// SubmitGeneralInfo validates the step-1 draft and, when it passes, moves
// to step 2 carrying it. A failing draft leaves the wizard where it is.
func (c *Controller) SubmitGeneralInfo(draft models.GeneralInfo) (validation.Result, error) {
	p, err := expect[navigation.GeneralInfoParams](c, "submit general info")
	if err != nil {
		return validation.Result{}, err
	}

	res := forms.ValidateGeneralInfo(draft)
	if !res.Valid {
		c.observer.ValidationFailed(forms.StepGeneralInfo, res.Failing())
		return res, nil
	}

	c.router.Navigate(navigation.ScreenActivity, navigation.ActivityParams{
		Ledger:      p.Ledger,
		GeneralInfo: draft.Clone(),
	})
	return res, nil
}

// CommitActivity validates the step-2 draft and, when it passes, assembles
// the record, appends it to a new ledger and returns to form selection. The
// returned record is the zero value when validation fails.
func (c *Controller) CommitActivity(draft models.ActivityDetail) (validation.Result, models.Record, error) {
	p, err := expect[navigation.ActivityParams](c, "commit activity")
	if err != nil {
		return validation.Result{}, models.Record{}, err
	}

	res := forms.ValidateActivity(draft)
	if !res.Valid {
		c.observer.ValidationFailed(forms.StepActivity, res.Failing())
		return res, models.Record{}, nil
	}

	rec := c.assembler.Assemble(p.GeneralInfo, draft)
	c.router.ResetTo(navigation.ScreenHome, navigation.HomeParams{Ledger: p.Ledger.Append(rec)})
	c.observer.RecordCommitted(rec)
	return res, rec, nil
}

// Browse moves from form selection to the history list.
func (c *Controller) Browse() error {
	p, err := expect[navigation.HomeParams](c, "browse")
	if err != nil {
		return err
	}
	c.router.Navigate(navigation.ScreenHistory, navigation.HistoryParams{Ledger: p.Ledger})
	return nil
}

// SelectRecord opens the detail view for the record at index.
func (c *Controller) SelectRecord(index int) error {
	p, err := expect[navigation.HistoryParams](c, "select record")
	if err != nil {
		return err
	}
	rec, ok := p.Ledger.At(index)
	if !ok {
		return fmt.Errorf("select record %d of %d: %w", index, p.Ledger.Len(), ErrRecordNotFound)
	}
	c.router.Navigate(navigation.ScreenRecordDetail, navigation.RecordParams{Record: rec})
	return nil
}

// Back returns to the previous screen. Leaving step 2 hands the validated
// step-1 payload back so the first form comes up filled in.
func (c *Controller) Back() error {
	cur := c.router.Current()

	if !c.router.GoBack() {
		return ErrAtRoot
	}

	if p, ok := cur.Params.(navigation.ActivityParams); ok {
		prev := c.router.Current()
		if gp, ok := prev.Params.(navigation.GeneralInfoParams); ok {
			prefill := p.GeneralInfo.Clone()
			gp.Prefill = &prefill
			c.router.SetParams(gp)
		}
	}
	return nil
}

// Ledger returns the ledger carried by the current screen. The detail screen
// carries a single record, so it reports false.
func (c *Controller) Ledger() (models.Ledger, bool) {
	return LedgerOf(c.router.Current().Params)
}

// RecentRecords returns the tail of the ledger visible on the current screen.
func (c *Controller) RecentRecords() []models.Record {
	l, ok := c.Ledger()
	if !ok {
		return nil
	}
	return l.LastN(c.recent)
}

// LedgerOf extracts the ledger from params that carry one.
func LedgerOf(p navigation.Params) (models.Ledger, bool) {
	switch p := p.(type) {
	case navigation.HomeParams:
		return p.Ledger, true
	case navigation.GeneralInfoParams:
		return p.Ledger, true
	case navigation.ActivityParams:
		return p.Ledger, true
	case navigation.HistoryParams:
		return p.Ledger, true
	}
	return models.Ledger{}, false
}

// expect returns the current params when they are of type P, or
// ErrInvalidTransition naming op.
func expect[P navigation.Params](c *Controller, op string) (P, error) {
	cur := c.router.Current()
	p, ok := cur.Params.(P)
	if !ok {
		var zero P
		return zero, fmt.Errorf("%s from %s: %w", op, cur.Screen, ErrInvalidTransition)
	}
	return p, nil
}
