package forms

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/validation"
)

func clock(hour, minute int) *time.Time {
	t := time.Date(2024, 4, 2, hour, minute, 0, 0, time.UTC)
	return &t
}

func validGeneralInfo() models.GeneralInfo {
	return models.GeneralInfo{
		RegistrationID:    "123",
		CoordinatorName:   "Ana",
		AssetTag:          "T1",
		StartTime:         clock(10, 0),
		EndTime:           clock(11, 0),
		StartMeterReading: "100",
		EndMeterReading:   "150",
	}
}

func validActivity() models.ActivityDetail {
	return models.ActivityDetail{
		Operation:     "Plantio",
		StopReason:    "Manutenção",
		Plot:          "T-07",
		ActivityStart: clock(10, 15),
		ActivityEnd:   clock(10, 45),
	}
}

func allFalse(fields ...string) validation.ErrorSet {
	set := validation.ErrorSet{}
	for _, f := range fields {
		set[f] = false
	}
	return set
}

func TestGeneralInfoScenarioPasses(t *testing.T) {
	res := ValidateGeneralInfo(validGeneralInfo())

	assert.True(t, res.Valid)
	assert.Equal(t, allFalse(
		FieldRegistrationID, FieldCoordinatorName, FieldAssetTag,
		FieldStartTime, FieldEndTime, FieldStartMeterReading, FieldEndMeterReading,
	), res.Errors)
}

func TestGeneralInfoEqualMetersFlagsOnlyEnd(t *testing.T) {
	g := validGeneralInfo()
	g.EndMeterReading = "100"

	res := ValidateGeneralInfo(g)

	assert.False(t, res.Valid)
	assert.Equal(t, []string{FieldEndMeterReading}, res.Failing())
	assert.Equal(t,
		"Corrija os seguintes campos:\n- Horímetro Final (verifique se não é menor/igual ao Inicial ou zero)",
		res.Message())
}

func TestGeneralInfoEmptyRegistration(t *testing.T) {
	g := validGeneralInfo()
	g.RegistrationID = ""

	res := ValidateGeneralInfo(g)

	assert.False(t, res.Valid)
	assert.True(t, res.Errors[FieldRegistrationID])
}

func TestGeneralInfoTimeBoundary(t *testing.T) {
	g := validGeneralInfo()
	g.EndTime = clock(10, 0)
	assert.False(t, ValidateGeneralInfo(g).Errors[FieldEndTime])

	g.EndTime = clock(9, 59)
	assert.True(t, ValidateGeneralInfo(g).Errors[FieldEndTime])
}

func TestGeneralInfoZeroEnd(t *testing.T) {
	g := validGeneralInfo()
	g.StartMeterReading = "-10"
	g.EndMeterReading = "0"

	assert.Equal(t, []string{FieldEndMeterReading}, ValidateGeneralInfo(g).Failing())
}

func TestGeneralInfoEmptyPayloadMessage(t *testing.T) {
	res := ValidateGeneralInfo(models.GeneralInfo{})

	assert.False(t, res.Valid)
	assert.Equal(t, "Corrija os seguintes campos:\n"+
		"- Matrícula\n"+
		"- Nome do Coordenador\n"+
		"- Patrimônio\n"+
		"- Horário Inicial\n"+
		"- Horário Final (verifique se não é menor que o Inicial)\n"+
		"- Horímetro Inicial (valor inválido)\n"+
		"- Horímetro Final (verifique se não é menor/igual ao Inicial ou zero)",
		res.Message())
}

func TestActivityScenarioPasses(t *testing.T) {
	res := ValidateActivity(validActivity())

	assert.True(t, res.Valid)
	assert.Len(t, res.Errors, 7)
}

func TestActivityOptionalFieldsNeverFlagged(t *testing.T) {
	res := ValidateActivity(models.ActivityDetail{})

	assert.False(t, res.Errors[FieldImplementAssetTag])
	assert.False(t, res.Errors[FieldCrop])
	assert.Equal(t, "Corrija os seguintes campos:\n"+
		"- Operação\n"+
		"- Motivo\n"+
		"- Talhão\n"+
		"- Horário Inicial\n"+
		"- Horário Final (não pode ser menor que o Inicial)",
		res.Message())
}

func TestActivityEndBeforeStart(t *testing.T) {
	a := validActivity()
	a.ActivityEnd = clock(9, 0)

	res := ValidateActivity(a)
	assert.Equal(t, []string{FieldActivityEnd}, res.Failing())
}

func TestSchemaFor(t *testing.T) {
	s, ok := SchemaFor(StepActivity)
	require.True(t, ok)
	assert.Equal(t, "Cadastro de Atividades", s.Title)

	_, ok = SchemaFor("nope")
	assert.False(t, ok)
	assert.Equal(t, []string{StepGeneralInfo, StepActivity}, Steps())
}

func TestSchemasCoverEveryPayloadField(t *testing.T) {
	for name := range GeneralInfoValues(models.GeneralInfo{}) {
		_, ok := GeneralInfoSchema().Field(name)
		assert.True(t, ok, name)
	}
	for name := range ActivityValues(models.ActivityDetail{}) {
		_, ok := ActivitySchema().Field(name)
		assert.True(t, ok, name)
	}
}

func TestGeneralInfoProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("empty registration is always invalid", prop.ForAll(
		func(name, tag string) bool {
			g := validGeneralInfo()
			g.RegistrationID = ""
			g.CoordinatorName = name
			g.AssetTag = tag
			res := ValidateGeneralInfo(g)
			return !res.Valid && res.Errors[FieldRegistrationID]
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("every schema field is present in the error set", prop.ForAll(
		func(id, start, end string) bool {
			g := models.GeneralInfo{RegistrationID: id, StartMeterReading: start, EndMeterReading: end}
			return len(ValidateGeneralInfo(g).Errors) == len(GeneralInfoSchema().Fields)
		},
		gen.AlphaString(),
		gen.NumString(),
		gen.NumString(),
	))

	properties.TestingRun(t)
}

func TestValuesRoundTrip(t *testing.T) {
	g := validGeneralInfo()
	assert.Equal(t, g, GeneralInfoFromValues(GeneralInfoValues(g)))

	a := validActivity()
	assert.Equal(t, a, ActivityFromValues(ActivityValues(a)))
}
