// mock_router.go - Recording router and fixtures for testing
package testutil

import (
	"sync"
	"time"

	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
)

// Call is one recorded router invocation.
type Call struct {
	Method string
	Screen navigation.Screen
	Params navigation.Params
}

// MockRouter implements navigation.Router on a plain slice and records every
// mutating call.
type MockRouter struct {
	routes []navigation.Route
	calls  []Call
	mu     sync.Mutex
}

// NewMockRouter creates a router whose history holds one route.
func NewMockRouter(screen navigation.Screen, params navigation.Params) *MockRouter {
	return &MockRouter{
		routes: []navigation.Route{{Screen: screen, Params: params}},
	}
}

func (m *MockRouter) Navigate(screen navigation.Screen, params navigation.Params) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: "Navigate", Screen: screen, Params: params})
	m.routes = append(m.routes, navigation.Route{Screen: screen, Params: params})
}

func (m *MockRouter) GoBack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: "GoBack"})
	if len(m.routes) <= 1 {
		return false
	}
	m.routes = m.routes[:len(m.routes)-1]
	return true
}

func (m *MockRouter) ResetTo(screen navigation.Screen, params navigation.Params) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: "ResetTo", Screen: screen, Params: params})
	m.routes = []navigation.Route{{Screen: screen, Params: params}}
}

func (m *MockRouter) SetParams(params navigation.Params) {
	m.mu.Lock()
	defer m.mu.Unlock()
	top := &m.routes[len(m.routes)-1]
	m.calls = append(m.calls, Call{Method: "SetParams", Screen: top.Screen, Params: params})
	top.Params = params
}

func (m *MockRouter) Current() navigation.Route {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routes[len(m.routes)-1]
}

// Ensure MockRouter implements navigation.Router
var _ navigation.Router = (*MockRouter)(nil)

// Test Helper Methods

// Calls returns the recorded mutating calls.
func (m *MockRouter) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Depth returns the history length.
func (m *MockRouter) Depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.routes)
}

// Reset forgets recorded calls.
func (m *MockRouter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Fixtures

// At returns a pointer to hour:minute on a fixed UTC day.
func At(hour, minute int) *time.Time {
	t := time.Date(2024, 4, 2, hour, minute, 0, 0, time.UTC)
	return &t
}

// GeneralInfo returns a step-1 payload that passes validation.
func GeneralInfo() models.GeneralInfo {
	return models.GeneralInfo{
		RegistrationID:    "123",
		CoordinatorName:   "Ana",
		AssetTag:          "T1",
		StartTime:         At(10, 0),
		EndTime:           At(11, 0),
		StartMeterReading: "100",
		EndMeterReading:   "150",
	}
}

// Activity returns a step-2 payload that passes validation.
func Activity() models.ActivityDetail {
	return models.ActivityDetail{
		Operation:     "Gradagem",
		StopReason:    "Chuva",
		Plot:          "12",
		ActivityStart: At(10, 5),
		ActivityEnd:   At(10, 50),
	}
}
