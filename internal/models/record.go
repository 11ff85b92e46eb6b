package models

// Record is one committed activity-log entry. It is built once by the
// assembler and never modified afterwards.
type Record struct {
	GeneralInfo
	ActivityDetail

	// Clock times of the activity rendered for display, empty when unset.
	FormattedStart string `json:"formattedStart" msgpack:"formattedStart"`
	FormattedEnd   string `json:"formattedEnd" msgpack:"formattedEnd"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	r.GeneralInfo = r.GeneralInfo.Clone()
	r.ActivityDetail = r.ActivityDetail.Clone()
	return r
}
