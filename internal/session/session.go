package session

import (
	"sync"
	"time"

	"github.com/bdo-activity/backend/internal/assembly"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
	"github.com/bdo-activity/backend/internal/wizard"
)

// Session is one client's wizard. Fields below mu are guarded by it;
// lastAccessed is guarded by the manager lock.
type Session struct {
	ID        string
	CreatedAt time.Time

	lastAccessed time.Time

	mu          sync.Mutex
	stack       *navigation.Stack
	wizard      *wizard.Controller
	subscribers map[int]chan navigation.Event
	nextSub     int
	closed      bool
}

func newSession(id string, now time.Time, recent int, asm *assembly.Assembler, obs Observer) *Session {
	s := &Session{
		ID:           id,
		CreatedAt:    now,
		lastAccessed: now,
		stack:        navigation.NewStack(navigation.ScreenHome, navigation.HomeParams{Ledger: models.NewLedger()}),
		subscribers:  make(map[int]chan navigation.Event),
	}
	s.wizard = wizard.New(s.stack, asm, wizard.WithRecentCount(recent), wizard.WithObserver(obs))

	// Listeners run on the goroutine holding s.mu.
	s.stack.Subscribe(func(ev navigation.Event) {
		if ev.Kind != navigation.EventSetParams {
			obs.Transition(ev.From, ev.Route.Screen)
		}
		s.publish(ev)
	})
	return s
}

// ledger walks the history from the top and returns the first ledger found.
// The detail screen carries only a record, so the history screen below it
// answers.
func (s *Session) ledger() models.Ledger {
	routes := s.stack.Routes()
	for i := len(routes) - 1; i >= 0; i-- {
		if l, ok := wizard.LedgerOf(routes[i].Params); ok {
			return l
		}
	}
	return models.NewLedger()
}

func (s *Session) publish(ev navigation.Event) {
	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Session) subscribe() (<-chan navigation.Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan navigation.Event, eventBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(c)
			}
		})
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}
