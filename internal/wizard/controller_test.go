package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdo-activity/backend/internal/assembly"
	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/forms"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
	"github.com/bdo-activity/backend/internal/testutil"
)

type recordingObserver struct {
	failures  map[string][]string
	committed []models.Record
}

func (o *recordingObserver) ValidationFailed(step string, fields []string) {
	if o.failures == nil {
		o.failures = make(map[string][]string)
	}
	o.failures[step] = fields
}

func (o *recordingObserver) RecordCommitted(rec models.Record) {
	o.committed = append(o.committed, rec)
}

func newController(t *testing.T, opts ...Option) (*Controller, *navigation.Stack) {
	t.Helper()
	stack := navigation.NewStack(navigation.ScreenHome, navigation.HomeParams{})
	asm := assembly.New(display.MustClock("pt-BR", "UTC"))
	return New(stack, asm, opts...), stack
}

func TestCommitOntoEmptyLedger(t *testing.T) {
	c, stack := newController(t)

	require.NoError(t, c.OpenForm())
	res, err := c.SubmitGeneralInfo(testutil.GeneralInfo())
	require.NoError(t, err)
	require.True(t, res.Valid)
	assert.Equal(t, StateEnteringActivity, c.State())

	res, rec, err := c.CommitActivity(testutil.Activity())
	require.NoError(t, err)
	require.True(t, res.Valid)

	assert.Equal(t, StateSelectingForm, c.State())
	assert.Equal(t, 1, stack.Depth(), "commit collapses the history")

	ledger, ok := c.Ledger()
	require.True(t, ok)
	require.Equal(t, 1, ledger.Len())

	got, _ := ledger.At(0)
	assert.Equal(t, rec, got)
	assert.Equal(t, "123", got.RegistrationID)
	assert.Equal(t, "Ana", got.CoordinatorName)
	assert.Equal(t, "T1", got.AssetTag)
	assert.Equal(t, "100", got.StartMeterReading)
	assert.Equal(t, "150", got.EndMeterReading)
	assert.Equal(t, "Gradagem", got.Operation)
	assert.Equal(t, "Chuva", got.StopReason)
	assert.Equal(t, "12", got.Plot)
	assert.Equal(t, "10:05", got.FormattedStart)
	assert.Equal(t, "10:50", got.FormattedEnd)
}

func TestCommitLeavesPreviousLedgerUntouched(t *testing.T) {
	c, _ := newController(t)
	before := models.NewLedger(models.Record{})
	c.Start(before)

	require.NoError(t, c.OpenForm())
	_, err := c.SubmitGeneralInfo(testutil.GeneralInfo())
	require.NoError(t, err)
	_, _, err = c.CommitActivity(testutil.Activity())
	require.NoError(t, err)

	after, _ := c.Ledger()
	assert.Equal(t, 1, before.Len())
	assert.Equal(t, 2, after.Len())
}

func TestFailingStepStaysPut(t *testing.T) {
	obs := &recordingObserver{}
	c, stack := newController(t, WithObserver(obs))
	require.NoError(t, c.OpenForm())

	draft := testutil.GeneralInfo()
	draft.EndMeterReading = "100"
	res, err := c.SubmitGeneralInfo(draft)
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, []string{forms.FieldEndMeterReading}, res.Failing())
	assert.Equal(t, StateEnteringGeneralInfo, c.State())
	assert.Equal(t, 2, stack.Depth())
	assert.Equal(t, []string{forms.FieldEndMeterReading}, obs.failures[forms.StepGeneralInfo])

	_, err = c.SubmitGeneralInfo(testutil.GeneralInfo())
	require.NoError(t, err)

	bad := testutil.Activity()
	bad.ActivityEnd = testutil.At(10, 0)
	res, rec, err := c.CommitActivity(bad)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, models.Record{}, rec)
	assert.Equal(t, StateEnteringActivity, c.State())
	assert.Empty(t, obs.committed)
}

func TestWrongStateLeavesRouterUntouched(t *testing.T) {
	router := testutil.NewMockRouter(navigation.ScreenHome, navigation.HomeParams{})
	c := New(router, assembly.New(display.MustClock("pt-BR", "UTC")))

	_, err := c.SubmitGeneralInfo(testutil.GeneralInfo())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, _, err = c.CommitActivity(testutil.Activity())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.ErrorIs(t, c.SelectRecord(0), ErrInvalidTransition)
	assert.Empty(t, router.Calls())

	require.NoError(t, c.OpenForm())
	router.Reset()

	assert.ErrorIs(t, c.OpenForm(), ErrInvalidTransition)
	assert.ErrorIs(t, c.Browse(), ErrInvalidTransition)
	assert.Empty(t, router.Calls())
}

func TestActivityUnreachableWithoutGeneralInfo(t *testing.T) {
	c, _ := newController(t)

	require.NoError(t, c.OpenForm())
	draft := testutil.GeneralInfo()
	draft.RegistrationID = ""
	_, err := c.SubmitGeneralInfo(draft)
	require.NoError(t, err)

	_, _, err = c.CommitActivity(testutil.Activity())
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestBackFromActivityPrefillsGeneralInfo(t *testing.T) {
	c, stack := newController(t)
	require.NoError(t, c.OpenForm())
	_, err := c.SubmitGeneralInfo(testutil.GeneralInfo())
	require.NoError(t, err)

	require.NoError(t, c.Back())
	assert.Equal(t, StateEnteringGeneralInfo, c.State())

	p, ok := stack.Current().Params.(navigation.GeneralInfoParams)
	require.True(t, ok)
	require.NotNil(t, p.Prefill)
	assert.Equal(t, "123", p.Prefill.RegistrationID)

	require.NoError(t, c.Back())
	assert.Equal(t, StateSelectingForm, c.State())
	assert.ErrorIs(t, c.Back(), ErrAtRoot)
}

func TestBrowseAndSelect(t *testing.T) {
	c, _ := newController(t)
	rec := models.Record{GeneralInfo: models.GeneralInfo{RegistrationID: "7"}}
	c.Start(models.NewLedger(models.Record{}, rec))

	require.NoError(t, c.Browse())
	assert.Equal(t, StateBrowsingLedger, c.State())

	err := c.SelectRecord(5)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, StateBrowsingLedger, c.State())

	require.NoError(t, c.SelectRecord(1))
	assert.Equal(t, StateViewingRecordDetail, c.State())

	v := c.View()
	p, ok := v.Params.(navigation.RecordParams)
	require.True(t, ok)
	assert.Equal(t, "7", p.Record.RegistrationID)
	assert.Nil(t, c.RecentRecords())

	_, ok = c.Ledger()
	assert.False(t, ok)

	require.NoError(t, c.Back())
	require.NoError(t, c.Back())
	assert.Equal(t, StateSelectingForm, c.State())
}

func TestRecentRecords(t *testing.T) {
	var recs []models.Record
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		recs = append(recs, models.Record{GeneralInfo: models.GeneralInfo{RegistrationID: id}})
	}

	c, _ := newController(t)
	c.Start(models.NewLedger(recs...))
	require.NoError(t, c.OpenForm())

	got := c.RecentRecords()
	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].RegistrationID)
	assert.Equal(t, "5", got[2].RegistrationID)

	c2, _ := newController(t, WithRecentCount(1))
	c2.Start(models.NewLedger(recs...))
	assert.Len(t, c2.RecentRecords(), 1)
}

func TestViewIncludesFormOnFormScreens(t *testing.T) {
	c, _ := newController(t)

	v := c.View()
	assert.Nil(t, v.Form)
	assert.Equal(t, navigation.ScreenHome, v.Screen)

	require.NoError(t, c.OpenForm())
	v = c.View()
	require.NotNil(t, v.Form)
	assert.Equal(t, forms.StepGeneralInfo, v.Form.Step)
	assert.Equal(t, StateEnteringGeneralInfo, v.State)
}

func TestStateScreenMapping(t *testing.T) {
	for _, s := range []State{
		StateSelectingForm, StateEnteringGeneralInfo, StateEnteringActivity,
		StateBrowsingLedger, StateViewingRecordDetail,
	} {
		assert.Equal(t, s, StateOf(s.Screen()))
	}
	assert.Equal(t, StateUnknown, StateOf("nowhere"))
}
