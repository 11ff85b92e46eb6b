// Package models contains domain types for the BDO field-activity log.
package models

import "time"

// GeneralInfo is the step-1 payload: who operated which asset and for how long.
// Times stay nil until the operator picks them.
type GeneralInfo struct {
	RegistrationID    string     `json:"registrationId" msgpack:"registrationId"`
	CoordinatorName   string     `json:"coordinatorName" msgpack:"coordinatorName"`
	AssetTag          string     `json:"assetTag" msgpack:"assetTag"`
	StartTime         *time.Time `json:"startTime" msgpack:"startTime"`
	EndTime           *time.Time `json:"endTime" msgpack:"endTime"`
	StartMeterReading string     `json:"startMeterReading" msgpack:"startMeterReading"`
	EndMeterReading   string     `json:"endMeterReading" msgpack:"endMeterReading"`
}

// ActivityDetail is the step-2 payload describing the activity itself.
// ImplementAssetTag and Crop are optional.
type ActivityDetail struct {
	ImplementAssetTag string     `json:"implementAssetTag" msgpack:"implementAssetTag"`
	Operation         string     `json:"operation" msgpack:"operation"`
	StopReason        string     `json:"stopReason" msgpack:"stopReason"`
	Plot              string     `json:"plot" msgpack:"plot"`
	Crop              string     `json:"crop" msgpack:"crop"`
	ActivityStart     *time.Time `json:"activityStart" msgpack:"activityStart"`
	ActivityEnd       *time.Time `json:"activityEnd" msgpack:"activityEnd"`
}

// Clone returns a copy that shares no time pointers with g.
func (g GeneralInfo) Clone() GeneralInfo {
	g.StartTime = cloneTime(g.StartTime)
	g.EndTime = cloneTime(g.EndTime)
	return g
}

// Clone returns a copy that shares no time pointers with a.
func (a ActivityDetail) Clone() ActivityDetail {
	a.ActivityStart = cloneTime(a.ActivityStart)
	a.ActivityEnd = cloneTime(a.ActivityEnd)
	return a
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
