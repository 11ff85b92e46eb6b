// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
	"github.com/bdo-activity/backend/internal/wizard"
)

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// FormHandler serves the step schemas presentations render from
type FormHandler interface {
	HandleListForms(c echo.Context) error
	HandleGetForm(c echo.Context) error
	HandleGetFormSchema(c echo.Context) error
}

// WizardHandler drives a session's wizard
type WizardHandler interface {
	HandleCreateSession(c echo.Context) error
	HandleGetSession(c echo.Context) error
	HandleDeleteSession(c echo.Context) error
	HandleOpenForm(c echo.Context) error
	HandleSubmitGeneralInfo(c echo.Context) error
	HandleCommitActivity(c echo.Context) error
	HandleBrowse(c echo.Context) error
	HandleSelectRecord(c echo.Context) error
	HandleBack(c echo.Context) error
}

// LedgerHandler handles ledger downloads
type LedgerHandler interface {
	HandleExportLedger(c echo.Context) error
}

// EventsHandler streams navigation events
type EventsHandler interface {
	HandleEvents(c echo.Context) error
}

// SessionManager defines the interface for session management
// This allows mocking in tests
type SessionManager interface {
	Create() (models.SessionInfo, error)
	Do(id string, fn func(c *wizard.Controller) error) error
	View(id string) (wizard.View, error)
	Ledger(id string) (models.Ledger, error)
	Info(id string) (models.SessionInfo, error)
	Subscribe(id string) (<-chan navigation.Event, func(), error)
	Delete(id string) bool
	Count() int
}
