package wizard

import "github.com/bdo-activity/backend/internal/navigation"

// State is where the user is in the wizard. Each state is shown by exactly
// one screen.
type State string

const (
	StateSelectingForm       State = "selecting-form"
	StateEnteringGeneralInfo State = "entering-general-info"
	StateEnteringActivity    State = "entering-activity"
	StateBrowsingLedger      State = "browsing-ledger"
	StateViewingRecordDetail State = "viewing-record-detail"
	StateUnknown             State = "unknown"
)

var screenStates = map[navigation.Screen]State{
	navigation.ScreenHome:         StateSelectingForm,
	navigation.ScreenGeneralInfo:  StateEnteringGeneralInfo,
	navigation.ScreenActivity:     StateEnteringActivity,
	navigation.ScreenHistory:      StateBrowsingLedger,
	navigation.ScreenRecordDetail: StateViewingRecordDetail,
}

// StateOf returns the state shown by screen.
func StateOf(screen navigation.Screen) State {
	if s, ok := screenStates[screen]; ok {
		return s
	}
	return StateUnknown
}

// Screen returns the screen showing s.
func (s State) Screen() navigation.Screen {
	for screen, st := range screenStates {
		if st == s {
			return screen
		}
	}
	return ""
}
