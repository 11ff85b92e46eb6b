// Package export renders a ledger for download.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/xuri/excelize/v2"

	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/forms"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/validation"
)

// Format is a download encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatXLSX    Format = "xlsx"
)

// SheetName is the worksheet holding the records.
const SheetName = "BDO"

// ParseFormat maps a query value onto a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatMsgpack:
		return FormatMsgpack, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatMsgpack:
		return "application/msgpack"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Filename returns a download name for f.
func (f Format) Filename() string {
	return "bdo." + string(f)
}

// Exporter writes ledgers, formatting times with its clock.
type Exporter struct {
	clock *display.Clock
}

// New creates an exporter.
func New(clock *display.Clock) *Exporter {
	return &Exporter{clock: clock}
}

// Write encodes ledger onto w.
func (e *Exporter) Write(w io.Writer, ledger models.Ledger, f Format) error {
	switch f {
	case FormatJSON:
		return json.NewEncoder(w).Encode(ledger)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(ledger)
	case FormatXLSX:
		return e.writeXLSX(w, ledger)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// Columns returns the spreadsheet header in form order: step 1 then step 2.
// A label both steps use is qualified with the second step's title.
func Columns() []string {
	var cols []string
	seen := make(map[string]bool)
	for _, s := range []validation.Schema{forms.GeneralInfoSchema(), forms.ActivitySchema()} {
		for _, f := range s.Fields {
			label := f.Label
			if seen[label] {
				label = fmt.Sprintf("%s (%s)", label, s.Title)
			}
			seen[label] = true
			cols = append(cols, label)
		}
	}
	return cols
}

// Row returns the spreadsheet cells of rec aligned with Columns.
func (e *Exporter) Row(rec models.Record) []string {
	var row []string
	steps := []struct {
		schema validation.Schema
		values validation.Values
	}{
		{forms.GeneralInfoSchema(), forms.GeneralInfoValues(rec.GeneralInfo)},
		{forms.ActivitySchema(), forms.ActivityValues(rec.ActivityDetail)},
	}
	for _, st := range steps {
		for _, f := range st.schema.Fields {
			v := st.values[f.Name]
			if f.Kind == validation.KindTime {
				row = append(row, e.clock.Format(v.Time))
				continue
			}
			row = append(row, v.Text)
		}
	}
	return row
}

func (e *Exporter) writeXLSX(w io.Writer, ledger models.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cols := Columns()
	if err := f.SetSheetRow(SheetName, "A1", &cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, rec := range ledger.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := e.Row(rec)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
