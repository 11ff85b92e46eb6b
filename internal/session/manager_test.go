package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bdo-activity/backend/internal/assembly"
	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
	"github.com/bdo-activity/backend/internal/testutil"
	"github.com/bdo-activity/backend/internal/wizard"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type countingObserver struct {
	mu          sync.Mutex
	transitions []string
	active      int
	committed   int
}

func (o *countingObserver) ValidationFailed(string, []string) {}

func (o *countingObserver) RecordCommitted(models.Record) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.committed++
}

func (o *countingObserver) Transition(from, to navigation.Screen) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitions = append(o.transitions, string(from)+">"+string(to))
}

func (o *countingObserver) SessionsActive(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = n
}

func newTestManager(cfg Config, opts ...Option) *Manager {
	asm := assembly.New(display.MustClock("pt-BR", "UTC"))
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	return NewManager(cfg, asm, opts...)
}

func commitOne(t *testing.T, m *Manager, id string) {
	t.Helper()
	err := m.Do(id, func(c *wizard.Controller) error {
		if err := c.OpenForm(); err != nil {
			return err
		}
		if _, err := c.SubmitGeneralInfo(testutil.GeneralInfo()); err != nil {
			return err
		}
		_, _, err := c.CommitActivity(testutil.Activity())
		return err
	})
	require.NoError(t, err)
}

func TestCreateStartsAtHome(t *testing.T) {
	m := newTestManager(Config{})

	s, err := m.Create()
	require.NoError(t, err)

	v, err := m.View(s.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StateSelectingForm, v.State)
	assert.Equal(t, 1, m.Count())

	info, err := m.Info(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "home", info.Screen)
	assert.Equal(t, 0, info.RecordCount)
}

func TestUnknownSession(t *testing.T) {
	m := newTestManager(Config{})

	err := m.Do("missing", func(*wizard.Controller) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Ledger("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, _, err = m.Subscribe("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.False(t, m.TouchSession("missing"))
	assert.False(t, m.Delete("missing"))
}

func TestCommitThroughManager(t *testing.T) {
	obs := &countingObserver{}
	m := newTestManager(Config{}, WithObserver(obs))
	s, err := m.Create()
	require.NoError(t, err)

	commitOne(t, m, s.ID)

	l, err := m.Ledger(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, obs.committed)
	assert.Equal(t, []string{
		"home>general-info",
		"general-info>activity",
		"activity>home",
	}, obs.transitions)
}

func TestLedgerVisibleFromRecordDetail(t *testing.T) {
	m := newTestManager(Config{})
	s, _ := m.Create()
	commitOne(t, m, s.ID)

	err := m.Do(s.ID, func(c *wizard.Controller) error {
		if err := c.Browse(); err != nil {
			return err
		}
		return c.SelectRecord(0)
	})
	require.NoError(t, err)

	l, err := m.Ledger(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestMaxSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)}
	m := newTestManager(Config{MaxSessions: 2, IdleTimeout: time.Minute}, WithClock(clock.Now))

	first, err := m.Create()
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	second, err := m.Create()
	require.NoError(t, err)

	_, err = m.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)

	// Once idle, the least recently used session makes room.
	clock.Advance(45 * time.Second)
	_, err = m.Create()
	require.NoError(t, err)
	assert.Equal(t, 2, m.Count())

	_, ok := m.Get(first.ID)
	assert.False(t, ok)
	_, ok = m.Get(second.ID)
	assert.True(t, ok)
}

func TestCleanupOldSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)}
	obs := &countingObserver{}
	m := newTestManager(Config{}, WithClock(clock.Now), WithObserver(obs))

	stale, _ := m.Create()
	fresh, _ := m.Create()

	clock.Advance(20 * time.Minute)
	require.True(t, m.TouchSession(fresh.ID))
	clock.Advance(20 * time.Minute)

	assert.Equal(t, 1, m.CleanupOldSessions(30*time.Minute))

	_, ok := m.Get(stale.ID)
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, obs.active)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	m := newTestManager(Config{})
	s, _ := m.Create()

	events, cancel, err := m.Subscribe(s.ID)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, m.Do(s.ID, func(c *wizard.Controller) error { return c.Browse() }))

	select {
	case ev := <-events:
		assert.Equal(t, navigation.EventNavigate, ev.Kind)
		assert.Equal(t, navigation.ScreenHistory, ev.Route.Screen)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestDeleteClosesSubscribers(t *testing.T) {
	m := newTestManager(Config{})
	s, _ := m.Create()

	events, cancel, err := m.Subscribe(s.ID)
	require.NoError(t, err)

	require.True(t, m.Delete(s.ID))
	_, open := <-events
	assert.False(t, open)

	cancel()

	err = m.Do(s.ID, func(*wizard.Controller) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConcurrentRequestsSameSession(t *testing.T) {
	m := newTestManager(Config{})
	s, _ := m.Create()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(s.ID, func(c *wizard.Controller) error {
				if err := c.Browse(); err != nil {
					return err
				}
				return c.Back()
			})
		}()
	}
	wg.Wait()

	v, err := m.View(s.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StateSelectingForm, v.State)
}

func TestRunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := newTestManager(Config{CleanupInterval: time.Millisecond, IdleTimeout: time.Nanosecond})
	_, err := m.Create()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return m.Count() == 0 }, time.Second, time.Millisecond)

	cancel()
	<-done
}
