package validation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(i int) string { return strconv.Itoa(i) }

func testSchema() Schema {
	return Schema{
		Step:  "test",
		Title: "Test",
		Fields: []Field{
			{Name: "name", Label: "Nome", Kind: KindText, Required: true},
			{Name: "note", Label: "Nota", Kind: KindText},
			{Name: "from", Label: "Início", Kind: KindTime, Required: true},
			{Name: "to", Label: "Fim", Alert: "Fim (depois do início)", Kind: KindTime, Required: true},
			{Name: "low", Label: "Baixo", Kind: KindNumeric, Numeric: true},
			{Name: "high", Label: "Alto", Kind: KindNumeric, Numeric: true},
		},
		Rules: []Rule{
			TimeOrderRule{Start: "from", End: "to"},
			MeterRangeRule{Start: "low", End: "high"},
		},
	}
}

func TestValidateEveryFieldRepresented(t *testing.T) {
	res := testSchema().Validate(Values{})

	require.Len(t, res.Errors, 6)
	assert.False(t, res.Valid)
	assert.Equal(t, ErrorSet{
		"name": true,
		"note": false,
		"from": true,
		"to":   true,
		"low":  true,
		"high": true,
	}, res.Errors)
}

func TestValidatePasses(t *testing.T) {
	res := testSchema().Validate(Values{
		"name": Text("Ana"),
		"from": Time(at(10, 0)),
		"to":   Time(at(10, 0)),
		"low":  Text("1"),
		"high": Text("2"),
	})

	assert.True(t, res.Valid)
	assert.False(t, res.Errors.Any())
	assert.Empty(t, res.Failing())
	assert.Equal(t, "", res.Message())
}

func TestValidateRuleFlagsOnlyEnd(t *testing.T) {
	res := testSchema().Validate(Values{
		"name": Text("Ana"),
		"from": Time(at(11, 0)),
		"to":   Time(at(10, 0)),
		"low":  Text("5"),
		"high": Text("5"),
	})

	assert.False(t, res.Valid)
	assert.Equal(t, []string{"to", "high"}, res.Failing())
}

func TestMessageFollowsSchemaOrder(t *testing.T) {
	res := testSchema().Validate(Values{
		"from": Time(at(11, 0)),
		"to":   Time(at(10, 0)),
		"low":  Text("x"),
		"high": Text("3"),
	})

	assert.Equal(t,
		"Corrija os seguintes campos:\n"+
			"- Nome\n"+
			"- Fim (depois do início)\n"+
			"- Baixo",
		res.Message())
}

func TestDescribe(t *testing.T) {
	d := testSchema().Describe()

	assert.Equal(t, "test", d.Step)
	require.Len(t, d.Fields, 6)
	assert.Equal(t, "name", d.Fields[0].Name)
	assert.True(t, d.Fields[0].Required)
	assert.Equal(t, KindTime, d.Fields[2].Kind)
}

func TestJSONSchema(t *testing.T) {
	doc, err := testSchema().JSONSchema()
	require.NoError(t, err)

	assert.Contains(t, string(doc), `"$id":"https://bdo.schemas.local/forms/test.schema.json"`)
	assert.Contains(t, string(doc), `"format":"date-time"`)
}

func TestErrorSetHelpers(t *testing.T) {
	e := ErrorSet{"a": false, "b": true}
	c := e.Clone()
	c["a"] = true

	assert.True(t, e.Any())
	assert.True(t, e.Has("b"))
	assert.False(t, e.Has("a"))
	assert.False(t, ErrorSet{"a": false}.Any())
}
