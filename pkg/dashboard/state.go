package dashboard

import (
	"sync"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

// ViewState is the mutable state shared by the controller's handlers: the
// appointment open in the modal, the calendar's visible window and the actions
// with a request outstanding. It is safe for concurrent use.
type ViewState struct {
	mu       sync.Mutex
	current  appointment.ID
	window   appointment.Range
	inflight map[string]struct{}
}

// NewViewState returns an empty state.
func NewViewState() *ViewState {
	return &ViewState{inflight: make(map[string]struct{})}
}

// CurrentID returns the appointment open in the modal.
func (s *ViewState) CurrentID() (appointment.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, !s.current.IsZero()
}

// Window returns the calendar's visible range.
func (s *ViewState) Window() appointment.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Pending reports whether key has a request outstanding.
func (s *ViewState) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[key]
	return ok
}

func (s *ViewState) setCurrent(id appointment.ID) {
	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
}

func (s *ViewState) clearCurrent() {
	s.setCurrent(0)
}

func (s *ViewState) setWindow(window appointment.Range) {
	s.mu.Lock()
	s.window = window
	s.mu.Unlock()
}

// begin marks key in flight; it returns false if it already was.
func (s *ViewState) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inflight[key]; ok {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *ViewState) end(key string) {
	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
}

// Action keys used for in-flight tracking.
const actionSave = "save"

func actionKey(action string, id appointment.ID) string {
	return action + ":" + id.String()
}
