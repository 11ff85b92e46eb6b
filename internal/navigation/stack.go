package navigation

import (
	"fmt"
	"sync"
)

// EventKind names what a router did.
type EventKind string

const (
	EventNavigate  EventKind = "navigate"
	EventBack      EventKind = "back"
	EventReset     EventKind = "reset"
	EventSetParams EventKind = "set-params"
)

// Event describes one route change.
type Event struct {
	Kind  EventKind `json:"kind"`
	From  Screen    `json:"from"`
	Route Route     `json:"route"`
	Depth int       `json:"depth"`
}

// Listener observes route changes. Listeners run synchronously on the
// goroutine that changed the route.
type Listener func(Event)

// Stack is an in-memory Router keeping a history of routes. Its zero value
// is not usable; create one with NewStack.
type Stack struct {
	mu        sync.Mutex
	routes    []Route
	listeners map[int]Listener
	nextID    int
}

// NewStack returns a router whose history holds the single root route.
func NewStack(root Screen, params Params) *Stack {
	mustMatch(root, params)
	return &Stack{
		routes:    []Route{{Screen: root, Params: params}},
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers l and returns a function removing it.
func (s *Stack) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Navigate implements Router.
func (s *Stack) Navigate(screen Screen, params Params) {
	mustMatch(screen, params)
	s.mu.Lock()
	from := s.top().Screen
	s.routes = append(s.routes, Route{Screen: screen, Params: params})
	ev := Event{Kind: EventNavigate, From: from, Route: s.top(), Depth: len(s.routes)}
	s.mu.Unlock()
	s.emit(ev)
}

// GoBack implements Router.
func (s *Stack) GoBack() bool {
	s.mu.Lock()
	if len(s.routes) <= 1 {
		s.mu.Unlock()
		return false
	}
	from := s.top().Screen
	s.routes = s.routes[:len(s.routes)-1]
	ev := Event{Kind: EventBack, From: from, Route: s.top(), Depth: len(s.routes)}
	s.mu.Unlock()
	s.emit(ev)
	return true
}

// ResetTo implements Router.
func (s *Stack) ResetTo(screen Screen, params Params) {
	mustMatch(screen, params)
	s.mu.Lock()
	from := s.top().Screen
	s.routes = []Route{{Screen: screen, Params: params}}
	ev := Event{Kind: EventReset, From: from, Route: s.top(), Depth: 1}
	s.mu.Unlock()
	s.emit(ev)
}

// SetParams implements Router.
func (s *Stack) SetParams(params Params) {
	s.mu.Lock()
	cur := s.top()
	mustMatch(cur.Screen, params)
	s.routes[len(s.routes)-1].Params = params
	ev := Event{Kind: EventSetParams, From: cur.Screen, Route: s.top(), Depth: len(s.routes)}
	s.mu.Unlock()
	s.emit(ev)
}

// Current implements Router.
func (s *Stack) Current() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top()
}

// Depth returns the number of routes in the history.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.routes)
}

// History returns the screens from root to top.
func (s *Stack) History() []Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Screen, len(s.routes))
	for i, r := range s.routes {
		out[i] = r.Screen
	}
	return out
}

// Routes returns a copy of the history from root to top.
func (s *Stack) Routes() []Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Route(nil), s.routes...)
}

func (s *Stack) top() Route {
	return s.routes[len(s.routes)-1]
}

func (s *Stack) emit(ev Event) {
	s.mu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	for _, l := range ls {
		l(ev)
	}
}

// mustMatch rejects a payload meant for another screen. Mixing them up is a
// programming error, not a runtime condition.
func mustMatch(screen Screen, params Params) {
	if params == nil || params.Screen() != screen {
		panic(fmt.Sprintf("navigation: params for %v sent to screen %q", paramsScreen(params), screen))
	}
}

func paramsScreen(p Params) any {
	if p == nil {
		return nil
	}
	return p.Screen()
}
