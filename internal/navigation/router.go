// Package navigation defines the screens of the wizard, the typed payload
// each screen receives, and the Router contract used to move between them.
package navigation

import "github.com/bdo-activity/backend/internal/models"

// Screen names a wizard screen.
type Screen string

const (
	ScreenHome         Screen = "home"
	ScreenGeneralInfo  Screen = "general-info"
	ScreenActivity     Screen = "activity"
	ScreenHistory      Screen = "history"
	ScreenRecordDetail Screen = "record-detail"
)

// Params is the payload a screen receives. The set of implementations is
// closed: one struct per screen.
type Params interface {
	Screen() Screen
}

// HomeParams carries the ledger into the form-selection screen.
type HomeParams struct {
	Ledger models.Ledger `json:"ledger"`
}

// GeneralInfoParams carries the ledger into step 1. Prefill holds the last
// validated step-1 payload when the user came back from step 2.
type GeneralInfoParams struct {
	Ledger  models.Ledger       `json:"ledger"`
	Prefill *models.GeneralInfo `json:"prefill,omitempty"`
}

// ActivityParams carries the ledger and the validated step-1 payload into
// step 2.
type ActivityParams struct {
	Ledger      models.Ledger      `json:"ledger"`
	GeneralInfo models.GeneralInfo `json:"generalInfo"`
}

// HistoryParams carries the ledger into the read-only history list.
type HistoryParams struct {
	Ledger models.Ledger `json:"ledger"`
}

// RecordParams carries one record, by value, into the detail screen.
type RecordParams struct {
	Record models.Record `json:"record"`
}

func (HomeParams) Screen() Screen        { return ScreenHome }
func (GeneralInfoParams) Screen() Screen { return ScreenGeneralInfo }
func (ActivityParams) Screen() Screen    { return ScreenActivity }
func (HistoryParams) Screen() Screen     { return ScreenHistory }
func (RecordParams) Screen() Screen      { return ScreenRecordDetail }

// Route is one entry of the navigation history.
type Route struct {
	Screen Screen `json:"screen"`
	Params Params `json:"params"`
}

// Router moves between screens. Implementations own the navigation
// history; the wizard only ever hands them values.
type Router interface {
	// Navigate pushes screen with params on top of the history.
	Navigate(screen Screen, params Params)
	// GoBack pops the current route. It reports false at the root.
	GoBack() bool
	// ResetTo replaces the whole history with a single route.
	ResetTo(screen Screen, params Params)
	// SetParams replaces the params of the current route.
	SetParams(params Params)
	// Current returns the focused route.
	Current() Route
}
