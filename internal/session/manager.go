// Package session keeps one wizard per client. Each session owns its own
// navigation history; the manager serializes access per session and evicts
// idle ones.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bdo-activity/backend/internal/assembly"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
	"github.com/bdo-activity/backend/internal/wizard"
)

var (
	// ErrSessionNotFound is returned for an unknown or evicted session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned when MaxSessions are live and none is idle.
	ErrTooManySessions = errors.New("too many sessions")
)

// eventBuffer is the per-subscriber channel capacity. Slow subscribers lose
// events rather than block the wizard.
const eventBuffer = 16

// Config bounds the manager.
type Config struct {
	MaxSessions     int
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
	RecentCount     int
}

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() Config {
	return Config{
		MaxSessions:     100,
		IdleTimeout:     30 * time.Minute,
		CleanupInterval: time.Minute,
		RecentCount:     wizard.DefaultRecentCount,
	}
}

// Observer is told about everything worth counting.
type Observer interface {
	wizard.Observer
	Transition(from, to navigation.Screen)
	SessionsActive(n int)
}

type nopObserver struct{}

func (nopObserver) ValidationFailed(string, []string) {}
func (nopObserver) RecordCommitted(models.Record)     {}
func (nopObserver) Transition(_, _ navigation.Screen) {}
func (nopObserver) SessionsActive(int)                {}

// Option configures a Manager.
type Option func(*Manager)

// WithObserver attaches o to the manager and every wizard it creates.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observer = o
		}
	}
}

// WithLogger replaces the default component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager handles active wizard sessions.
type Manager struct {
	sessions  map[string]*Session
	mu        sync.RWMutex
	cfg       Config
	assembler *assembly.Assembler
	observer  Observer
	logger    zerolog.Logger
	now       func() time.Time
}

// NewManager creates a session manager. Wizards it creates assemble records
// with assembler.
func NewManager(cfg Config, assembler *assembly.Assembler, opts ...Option) *Manager {
	def := DefaultConfig()
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	if cfg.RecentCount <= 0 {
		cfg.RecentCount = def.RecentCount
	}

	m := &Manager{
		sessions:  make(map[string]*Session),
		cfg:       cfg,
		assembler: assembler,
		observer:  nopObserver{},
		logger:    log.With().Str("component", "session").Logger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session at form selection with an empty ledger.
func (m *Manager) Create() (models.SessionInfo, error) {
	m.cleanupOldSessionsIfNeeded()

	id := uuid.New().String()
	now := m.now()
	s := newSession(id, now, m.cfg.RecentCount, m.assembler, m.observer)

	m.mu.Lock()
	if len(m.sessions) >= m.cfg.MaxSessions {
		m.mu.Unlock()
		return models.SessionInfo{}, fmt.Errorf("create session (limit %d): %w", m.cfg.MaxSessions, ErrTooManySessions)
	}
	m.sessions[id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.observer.SessionsActive(n)
	m.logger.Info().Str("session", shortID(id)).Int("active", n).Msg("session created")
	return models.SessionInfo{
		ID:           id,
		Screen:       string(navigation.ScreenHome),
		CreatedAt:    now,
		LastAccessed: now,
	}, nil
}

// Get returns a session by id without touching it.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Do runs fn against the session's wizard while holding the session lock.
// Requests for one session are serialized; different sessions run freely.
func (m *Manager) Do(id string, fn func(c *wizard.Controller) error) error {
	s, ok := m.touch(id)
	if !ok {
		return fmt.Errorf("session %s: %w", shortID(id), ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("session %s: %w", shortID(id), ErrSessionNotFound)
	}
	return fn(s.wizard)
}

// View returns the current screen snapshot of a session.
func (m *Manager) View(id string) (wizard.View, error) {
	var v wizard.View
	err := m.Do(id, func(c *wizard.Controller) error {
		v = c.View()
		return nil
	})
	return v, err
}

// Ledger returns the newest ledger in the session's navigation history.
func (m *Manager) Ledger(id string) (models.Ledger, error) {
	s, ok := m.touch(id)
	if !ok {
		return models.Ledger{}, fmt.Errorf("session %s: %w", shortID(id), ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger(), nil
}

// Info returns session metadata.
func (m *Manager) Info(id string) (models.SessionInfo, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	var last time.Time
	if ok {
		last = s.lastAccessed
	}
	m.mu.RUnlock()
	if !ok {
		return models.SessionInfo{}, fmt.Errorf("session %s: %w", shortID(id), ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionInfo{
		ID:           s.ID,
		Screen:       string(s.stack.Current().Screen),
		RecordCount:  s.ledger().Len(),
		CreatedAt:    s.CreatedAt,
		LastAccessed: last,
	}, nil
}

// Subscribe streams the session's navigation events. The channel closes
// when the session is removed or cancel is called.
func (m *Manager) Subscribe(id string) (<-chan navigation.Event, func(), error) {
	s, ok := m.touch(id)
	if !ok {
		return nil, nil, fmt.Errorf("session %s: %w", shortID(id), ErrSessionNotFound)
	}
	ch, cancel := s.subscribe()
	return ch, cancel, nil
}

// Delete removes a session and closes its subscribers.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	n := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		return false
	}

	s.close()
	m.observer.SessionsActive(n)
	return true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// TouchSession updates the LastAccessed timestamp for a session so the
// janitor keeps it.
func (m *Manager) TouchSession(id string) bool {
	_, ok := m.touch(id)
	return ok
}

func (m *Manager) touch(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastAccessed = m.now()
	return s, true
}

// cleanupOldSessionsIfNeeded evicts the least recently used idle session
// when at capacity.
func (m *Manager) cleanupOldSessionsIfNeeded() {
	m.mu.Lock()
	if len(m.sessions) < m.cfg.MaxSessions {
		m.mu.Unlock()
		return
	}

	cutoff := m.now().Add(-m.cfg.IdleTimeout)
	var oldestID string
	var oldest time.Time
	for id, s := range m.sessions {
		if s.lastAccessed.After(cutoff) {
			continue
		}
		if oldestID == "" || s.lastAccessed.Before(oldest) {
			oldestID, oldest = id, s.lastAccessed
		}
	}
	if oldestID == "" {
		m.mu.Unlock()
		return
	}
	s := m.sessions[oldestID]
	delete(m.sessions, oldestID)
	n := len(m.sessions)
	m.mu.Unlock()

	s.close()
	m.observer.SessionsActive(n)
	m.logger.Info().Str("session", shortID(oldestID)).Msg("evicted idle session to make room")
}

// CleanupOldSessions removes sessions not accessed within maxAge and reports
// how many went.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) int {
	now := m.now()
	cutoff := now.Add(-maxAge)

	m.mu.Lock()
	removed := make(map[*Session]time.Duration)
	for id, s := range m.sessions {
		if s.lastAccessed.Before(cutoff) {
			delete(m.sessions, id)
			removed[s] = now.Sub(s.lastAccessed)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for s, idle := range removed {
		s.close()
		m.logger.Info().
			Str("session", shortID(s.ID)).
			Dur("idle", idle.Round(time.Second)).
			Msg("cleaned up idle session")
	}
	if len(removed) > 0 {
		m.observer.SessionsActive(n)
	}
	return len(removed)
}

// Run evicts idle sessions every CleanupInterval until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CleanupOldSessions(m.cfg.IdleTimeout)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
