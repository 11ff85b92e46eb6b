package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/xuri/excelize/v2"

	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/testutil"
)

func sampleLedger() models.Ledger {
	rec := models.Record{
		GeneralInfo:    testutil.GeneralInfo(),
		ActivityDetail: testutil.Activity(),
		FormattedStart: "10:05",
		FormattedEnd:   "10:50",
	}
	return models.NewLedger(rec)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "msgpack": FormatMsgpack, " xlsx ": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	e := New(display.MustClock("pt-BR", "UTC"))

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf, sampleLedger(), FormatJSON))

	var recs []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "123", recs[0]["registrationId"])
	assert.Equal(t, "10:05", recs[0]["formattedStart"])
}

func TestWriteMsgpack(t *testing.T) {
	e := New(display.MustClock("pt-BR", "UTC"))

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf, sampleLedger(), FormatMsgpack))

	var got models.Ledger
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, 1, got.Len())
	rec, _ := got.At(0)
	assert.Equal(t, "Gradagem", rec.Operation)
}

func TestWriteXLSX(t *testing.T) {
	e := New(display.MustClock("pt-BR", "UTC"))

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf, sampleLedger(), FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Columns(), rows[0])

	row := rows[1]
	assert.Equal(t, "123", row[0])
	assert.Contains(t, row, "10:00")
	assert.Contains(t, row, "Gradagem")
	assert.Contains(t, row, "10:50")
}

func TestRowAlignsWithColumns(t *testing.T) {
	e := New(display.MustClock("pt-BR", "UTC"))
	rec, _ := sampleLedger().At(0)
	assert.Len(t, e.Row(rec), len(Columns()))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "application/msgpack", FormatMsgpack.ContentType())
	assert.Equal(t, "bdo.xlsx", FormatXLSX.Filename())
}

func TestColumnsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Columns() {
		assert.False(t, seen[c], c)
		seen[c] = true
	}
	assert.Contains(t, Columns(), "Horário Inicial (Cadastro de Atividades)")
}
