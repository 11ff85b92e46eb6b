// handlers_ledger.go - Ledger download handlers
package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bdo-activity/backend/internal/export"
)

// LedgerHandlerImpl implements the LedgerHandler interface
type LedgerHandlerImpl struct {
	sessions SessionManager
	exporter *export.Exporter
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(sessions SessionManager, exporter *export.Exporter) LedgerHandler {
	return &LedgerHandlerImpl{
		sessions: sessions,
		exporter: exporter,
	}
}

// HandleExportLedger returns the session's ledger as JSON, msgpack or xlsx
func (h *LedgerHandlerImpl) HandleExportLedger(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return NewBadRequestError("invalid format", err)
	}

	ledger, err := h.sessions.Ledger(id)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, ledger, format); err != nil {
		return NewInternalError("failed to export ledger", err)
	}

	if format != export.FormatJSON {
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", format.Filename()))
	}
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
