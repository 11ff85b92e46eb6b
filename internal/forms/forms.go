// Package forms declares the two wizard steps: their field schemas, the
// cross-field rules that apply to them, and the mapping from the typed step
// payloads onto validation values.
package forms

import (
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/validation"
)

// Step names, also used as screen and URL segments.
const (
	StepGeneralInfo = "general-info"
	StepActivity    = "activity"
)

// GeneralInfo field names.
const (
	FieldRegistrationID    = "registrationId"
	FieldCoordinatorName   = "coordinatorName"
	FieldAssetTag          = "assetTag"
	FieldStartTime         = "startTime"
	FieldEndTime           = "endTime"
	FieldStartMeterReading = "startMeterReading"
	FieldEndMeterReading   = "endMeterReading"
)

// ActivityDetail field names.
const (
	FieldImplementAssetTag = "implementAssetTag"
	FieldOperation         = "operation"
	FieldStopReason        = "stopReason"
	FieldPlot              = "plot"
	FieldCrop              = "crop"
	FieldActivityStart     = "activityStart"
	FieldActivityEnd       = "activityEnd"
)

var generalInfoSchema = validation.Schema{
	Step:  StepGeneralInfo,
	Title: "Informações Gerais",
	Fields: []validation.Field{
		{
			Name:        FieldRegistrationID,
			Label:       "Matrícula",
			Hint:        "Matrícula é obrigatória.",
			Placeholder: "Digite a Matrícula",
			Kind:        validation.KindNumeric,
			Required:    true,
		},
		{
			Name:        FieldCoordinatorName,
			Label:       "Nome do Coordenador",
			Hint:        "Nome do Coordenador é obrigatório.",
			Placeholder: "Coordenador",
			Kind:        validation.KindText,
			Required:    true,
		},
		{
			Name:        FieldAssetTag,
			Label:       "Patrimônio",
			Hint:        "Patrimônio é obrigatório.",
			Placeholder: "Digite o Patrimônio",
			Kind:        validation.KindNumeric,
			Required:    true,
		},
		{
			Name:     FieldStartTime,
			Label:    "Horário Inicial",
			Hint:     "Obrigatório.",
			Kind:     validation.KindTime,
			Required: true,
		},
		{
			Name:     FieldEndTime,
			Label:    "Horário Final",
			Alert:    "Horário Final (verifique se não é menor que o Inicial)",
			Hint:     "Obrigatório.",
			Kind:     validation.KindTime,
			Required: true,
		},
		{
			Name:        FieldStartMeterReading,
			Label:       "Horímetro Inicial",
			Alert:       "Horímetro Inicial (valor inválido)",
			Hint:        "Valor inválido.",
			Placeholder: "Horímetro Inicial",
			Kind:        validation.KindNumeric,
			Numeric:     true,
		},
		{
			Name:        FieldEndMeterReading,
			Label:       "Horímetro Final",
			Alert:       "Horímetro Final (verifique se não é menor/igual ao Inicial ou zero)",
			Hint:        "Valor inválido.",
			Placeholder: "Horímetro Final",
			Kind:        validation.KindNumeric,
			Numeric:     true,
		},
	},
	Rules: []validation.Rule{
		validation.TimeOrderRule{Start: FieldStartTime, End: FieldEndTime},
		validation.MeterRangeRule{Start: FieldStartMeterReading, End: FieldEndMeterReading},
	},
}

var activitySchema = validation.Schema{
	Step:  StepActivity,
	Title: "Cadastro de Atividades",
	Fields: []validation.Field{
		{
			Name:        FieldImplementAssetTag,
			Label:       "Patrimônio Implemento",
			Placeholder: "Patrimônio Implemento",
			Kind:        validation.KindText,
		},
		{
			Name:        FieldOperation,
			Label:       "Operação",
			Placeholder: "Operação",
			Kind:        validation.KindText,
			Required:    true,
		},
		{
			Name:        FieldStopReason,
			Label:       "Motivo de Parada",
			Alert:       "Motivo",
			Placeholder: "Motivo",
			Kind:        validation.KindText,
			Required:    true,
		},
		{
			Name:        FieldPlot,
			Label:       "Talhão",
			Placeholder: "Talhão",
			Kind:        validation.KindText,
			Required:    true,
		},
		{
			Name:        FieldCrop,
			Label:       "Cultura",
			Placeholder: "Cultura",
			Kind:        validation.KindText,
		},
		{
			Name:     FieldActivityStart,
			Label:    "Horário Inicial",
			Kind:     validation.KindTime,
			Required: true,
		},
		{
			Name:     FieldActivityEnd,
			Label:    "Horário Final",
			Alert:    "Horário Final (não pode ser menor que o Inicial)",
			Hint:     "Horário Final não pode ser antes do Horário Inicial.",
			Kind:     validation.KindTime,
			Required: true,
		},
	},
	Rules: []validation.Rule{
		validation.TimeOrderRule{Start: FieldActivityStart, End: FieldActivityEnd},
	},
}

// GeneralInfoSchema returns the step-1 schema.
func GeneralInfoSchema() validation.Schema { return generalInfoSchema }

// ActivitySchema returns the step-2 schema.
func ActivitySchema() validation.Schema { return activitySchema }

// SchemaFor returns the schema of a step by name.
func SchemaFor(step string) (validation.Schema, bool) {
	switch step {
	case StepGeneralInfo:
		return generalInfoSchema, true
	case StepActivity:
		return activitySchema, true
	}
	return validation.Schema{}, false
}

// Steps lists the step names in wizard order.
func Steps() []string {
	return []string{StepGeneralInfo, StepActivity}
}

// GeneralInfoValues maps a step-1 payload onto schema field values.
func GeneralInfoValues(g models.GeneralInfo) validation.Values {
	return validation.Values{
		FieldRegistrationID:    validation.Text(g.RegistrationID),
		FieldCoordinatorName:   validation.Text(g.CoordinatorName),
		FieldAssetTag:          validation.Text(g.AssetTag),
		FieldStartTime:         validation.Time(g.StartTime),
		FieldEndTime:           validation.Time(g.EndTime),
		FieldStartMeterReading: validation.Text(g.StartMeterReading),
		FieldEndMeterReading:   validation.Text(g.EndMeterReading),
	}
}

// ActivityValues maps a step-2 payload onto schema field values.
func ActivityValues(a models.ActivityDetail) validation.Values {
	return validation.Values{
		FieldImplementAssetTag: validation.Text(a.ImplementAssetTag),
		FieldOperation:         validation.Text(a.Operation),
		FieldStopReason:        validation.Text(a.StopReason),
		FieldPlot:              validation.Text(a.Plot),
		FieldCrop:              validation.Text(a.Crop),
		FieldActivityStart:     validation.Time(a.ActivityStart),
		FieldActivityEnd:       validation.Time(a.ActivityEnd),
	}
}

// ValidateGeneralInfo validates a step-1 payload.
func ValidateGeneralInfo(g models.GeneralInfo) validation.Result {
	return generalInfoSchema.Validate(GeneralInfoValues(g))
}

// ValidateActivity validates a step-2 payload.
func ValidateActivity(a models.ActivityDetail) validation.Result {
	return activitySchema.Validate(ActivityValues(a))
}

// GeneralInfoFromValues is the inverse of GeneralInfoValues.
func GeneralInfoFromValues(v validation.Values) models.GeneralInfo {
	return models.GeneralInfo{
		RegistrationID:    v[FieldRegistrationID].Text,
		CoordinatorName:   v[FieldCoordinatorName].Text,
		AssetTag:          v[FieldAssetTag].Text,
		StartTime:         v[FieldStartTime].Time,
		EndTime:           v[FieldEndTime].Time,
		StartMeterReading: v[FieldStartMeterReading].Text,
		EndMeterReading:   v[FieldEndMeterReading].Text,
	}
}

// ActivityFromValues is the inverse of ActivityValues.
func ActivityFromValues(v validation.Values) models.ActivityDetail {
	return models.ActivityDetail{
		ImplementAssetTag: v[FieldImplementAssetTag].Text,
		Operation:         v[FieldOperation].Text,
		StopReason:        v[FieldStopReason].Text,
		Plot:              v[FieldPlot].Text,
		Crop:              v[FieldCrop].Text,
		ActivityStart:     v[FieldActivityStart].Time,
		ActivityEnd:       v[FieldActivityEnd].Time,
	}
}
