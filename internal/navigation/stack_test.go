package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdo-activity/backend/internal/models"
)

func TestStackNavigateAndBack(t *testing.T) {
	s := NewStack(ScreenHome, HomeParams{})

	s.Navigate(ScreenGeneralInfo, GeneralInfoParams{})
	s.Navigate(ScreenActivity, ActivityParams{})

	assert.Equal(t, []Screen{ScreenHome, ScreenGeneralInfo, ScreenActivity}, s.History())
	assert.Equal(t, ScreenActivity, s.Current().Screen)

	require.True(t, s.GoBack())
	require.True(t, s.GoBack())
	assert.False(t, s.GoBack())
	assert.Equal(t, ScreenHome, s.Current().Screen)
	assert.Equal(t, 1, s.Depth())
}

func TestStackResetCollapsesHistory(t *testing.T) {
	s := NewStack(ScreenHome, HomeParams{})
	s.Navigate(ScreenGeneralInfo, GeneralInfoParams{})
	s.Navigate(ScreenActivity, ActivityParams{})

	ledger := models.NewLedger(models.Record{})
	s.ResetTo(ScreenHome, HomeParams{Ledger: ledger})

	assert.Equal(t, []Screen{ScreenHome}, s.History())
	p, ok := s.Current().Params.(HomeParams)
	require.True(t, ok)
	assert.Equal(t, 1, p.Ledger.Len())
}

func TestStackSetParams(t *testing.T) {
	s := NewStack(ScreenHome, HomeParams{})
	s.Navigate(ScreenGeneralInfo, GeneralInfoParams{})

	prefill := models.GeneralInfo{RegistrationID: "9"}
	s.SetParams(GeneralInfoParams{Prefill: &prefill})

	p := s.Current().Params.(GeneralInfoParams)
	require.NotNil(t, p.Prefill)
	assert.Equal(t, "9", p.Prefill.RegistrationID)
}

func TestStackRejectsMismatchedParams(t *testing.T) {
	s := NewStack(ScreenHome, HomeParams{})

	assert.Panics(t, func() { s.Navigate(ScreenActivity, HomeParams{}) })
	assert.Panics(t, func() { s.SetParams(HistoryParams{}) })
	assert.Panics(t, func() { s.ResetTo(ScreenHome, nil) })
}

func TestStackEvents(t *testing.T) {
	s := NewStack(ScreenHome, HomeParams{})

	var events []Event
	unsubscribe := s.Subscribe(func(ev Event) { events = append(events, ev) })

	s.Navigate(ScreenHistory, HistoryParams{})
	s.GoBack()
	s.ResetTo(ScreenHome, HomeParams{})
	unsubscribe()
	s.Navigate(ScreenHistory, HistoryParams{})

	require.Len(t, events, 3)
	assert.Equal(t, EventNavigate, events[0].Kind)
	assert.Equal(t, ScreenHome, events[0].From)
	assert.Equal(t, ScreenHistory, events[0].Route.Screen)
	assert.Equal(t, 2, events[0].Depth)
	assert.Equal(t, EventBack, events[1].Kind)
	assert.Equal(t, EventReset, events[2].Kind)
}

func TestStackRoutesIsACopy(t *testing.T) {
	s := NewStack(ScreenHome, HomeParams{})
	s.Navigate(ScreenHistory, HistoryParams{})

	routes := s.Routes()
	require.Len(t, routes, 2)
	routes[0] = Route{Screen: ScreenActivity, Params: ActivityParams{}}

	assert.Equal(t, []Screen{ScreenHome, ScreenHistory}, s.History())
}
