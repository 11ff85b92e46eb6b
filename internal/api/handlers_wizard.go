// handlers_wizard.go - Wizard session handlers
package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bdo-activity/backend/internal/assembly"
	"github.com/bdo-activity/backend/internal/forms"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/validation"
	"github.com/bdo-activity/backend/internal/wizard"
)

// WizardHandlerImpl implements the WizardHandler interface
type WizardHandlerImpl struct {
	sessions SessionManager
	bodies   *BodyValidator
	logger   zerolog.Logger
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(sessions SessionManager, bodies *BodyValidator, logger zerolog.Logger) WizardHandler {
	return &WizardHandlerImpl{
		sessions: sessions,
		bodies:   bodies,
		logger:   logger,
	}
}

// stepResponse is returned when a step passes.
type stepResponse struct {
	Valid  bool                `json:"valid"`
	Errors validation.ErrorSet `json:"errors"`
	View   wizard.View         `json:"view"`
}

// commitResponse is returned when a record is committed.
type commitResponse struct {
	Record  models.Record `json:"record"`
	Summary string        `json:"summary"`
	View    wizard.View   `json:"view"`
}

// HandleCreateSession starts a wizard at form selection
func (h *WizardHandlerImpl) HandleCreateSession(c echo.Context) error {
	info, err := h.sessions.Create()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, info)
}

// HandleGetSession returns the current screen of a session
func (h *WizardHandlerImpl) HandleGetSession(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	v, err := h.sessions.View(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// HandleDeleteSession discards a session and its ledger
func (h *WizardHandlerImpl) HandleDeleteSession(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	if !h.sessions.Delete(id) {
		return NewNotFoundError("session", id)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleOpenForm moves from form selection to step 1
func (h *WizardHandlerImpl) HandleOpenForm(c echo.Context) error {
	return h.transition(c, (*wizard.Controller).OpenForm)
}

// HandleBrowse moves from form selection to the history list
func (h *WizardHandlerImpl) HandleBrowse(c echo.Context) error {
	return h.transition(c, (*wizard.Controller).Browse)
}

// HandleBack returns to the previous screen
func (h *WizardHandlerImpl) HandleBack(c echo.Context) error {
	return h.transition(c, (*wizard.Controller).Back)
}

// HandleSelectRecord opens one record of the history list
func (h *WizardHandlerImpl) HandleSelectRecord(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return NewBadRequestError("invalid record index", err)
	}
	return h.transition(c, func(w *wizard.Controller) error {
		return w.SelectRecord(index)
	})
}

// HandleSubmitGeneralInfo validates step 1 and advances on success
func (h *WizardHandlerImpl) HandleSubmitGeneralInfo(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	var draft models.GeneralInfo
	if err := h.decode(c, forms.StepGeneralInfo, &draft); err != nil {
		return err
	}

	var res validation.Result
	var view wizard.View
	err = h.sessions.Do(id, func(w *wizard.Controller) error {
		var err error
		res, err = w.SubmitGeneralInfo(draft)
		view = w.View()
		return err
	})
	if err != nil {
		return err
	}
	if !res.Valid {
		h.logger.Debug().Str("session", id).Strs("failing", res.Failing()).Msg("general info rejected")
		return NewValidationFailure(res)
	}

	return c.JSON(http.StatusOK, stepResponse{Valid: true, Errors: res.Errors, View: view})
}

// HandleCommitActivity validates step 2 and commits the record on success
func (h *WizardHandlerImpl) HandleCommitActivity(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	var draft models.ActivityDetail
	if err := h.decode(c, forms.StepActivity, &draft); err != nil {
		return err
	}

	var res validation.Result
	var rec models.Record
	var view wizard.View
	err = h.sessions.Do(id, func(w *wizard.Controller) error {
		var err error
		res, rec, err = w.CommitActivity(draft)
		view = w.View()
		return err
	})
	if err != nil {
		return err
	}
	if !res.Valid {
		h.logger.Debug().Str("session", id).Strs("failing", res.Failing()).Msg("activity rejected")
		return NewValidationFailure(res)
	}

	h.logger.Info().Str("session", id).Str("registration", rec.RegistrationID).Msg("record committed")
	return c.JSON(http.StatusCreated, commitResponse{
		Record:  rec,
		Summary: assembly.Summary(rec),
		View:    view,
	})
}

func (h *WizardHandlerImpl) transition(c echo.Context, op func(*wizard.Controller) error) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	var view wizard.View
	err = h.sessions.Do(id, func(w *wizard.Controller) error {
		if err := op(w); err != nil {
			return err
		}
		view = w.View()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (h *WizardHandlerImpl) decode(c echo.Context, step string, dst any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return NewBadRequestError("failed to read request body", err)
	}
	return h.bodies.Decode(step, body, dst)
}

func sessionID(c echo.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", NewBadRequestError("missing session id", nil)
	}
	return id, nil
}
