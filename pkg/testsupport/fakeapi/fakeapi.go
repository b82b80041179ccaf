// Package fakeapi is an in-memory implementation of the booking backend used by
// tests and local demos. It mirrors the reference server's messages, role
// rules and overlap detection, records every call it receives and can be told
// to reject or drop the next matching request.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

// Messages returned by the fake backend.
const (
	MsgCreated      = "Cita creada exitosamente"
	MsgUpdated      = "Cita actualizada exitosamente"
	MsgDeleted      = "Cita eliminada exitosamente"
	MsgCompleted    = "Cita completada exitosamente"
	MsgCancelled    = "Cita cancelada exitosamente"
	MsgOverlap      = "La cita se solapa con otra cita existente"
	MsgUnauthorized = "No autorizado"
	MsgNotFound     = "Cita no encontrada"
	MsgNotScheduled = "La cita no está programada"
	MsgInvalidBody  = "Datos de la cita inválidos"
)

const (
	statusScheduled = "Programada"
	statusCompleted = "Completada"
	statusCancelled = "Cancelada"

	colorScheduled = "#0d6efd"
	colorCompleted = "#198754"
	colorCancelled = "#dc3545"
)

// Record is a stored appointment.
type Record struct {
	ID                 int64
	PatientName        string
	Start              string
	End                string
	Status             string
	Notes              string
	Professional       string
	ClientID           *int64
	CancellationReason string
	CancelledAt        string
}

// Call is a request received by the server.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// String renders the call as "METHOD /path".
func (c Call) String() string {
	return c.Method + " " + c.Path
}

type failure struct {
	status  int
	message string
	drop    bool
}

// Server is the fake backend. Its zero value is not usable; call New.
type Server struct {
	mu       sync.Mutex
	role     appointment.Role
	nextID   int64
	records  map[int64]*Record
	clients  []appointment.Client
	users    int
	calls    []Call
	failures map[string][]failure
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithRole sets the role of the simulated session.
func WithRole(role appointment.Role) Option {
	return func(s *Server) {
		s.role = role
	}
}

// WithClients seeds the assignable clients.
func WithClients(clients ...appointment.Client) Option {
	return func(s *Server) {
		s.clients = append(s.clients, clients...)
	}
}

// WithClock overrides the clock used for cancellation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds an empty fake backend.
func New(opts ...Option) *Server {
	s := &Server{
		role:     appointment.RoleProfessional,
		nextID:   1,
		records:  make(map[int64]*Record),
		failures: make(map[string][]failure),
		users:    3,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SetRole switches the simulated session role.
func (s *Server) SetRole(role appointment.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
}

// Seed stores a record and returns its id. A zero ID is assigned.
func (s *Server) Seed(rec Record) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == 0 {
		rec.ID = s.nextID
	}
	if rec.ID >= s.nextID {
		s.nextID = rec.ID + 1
	}
	if rec.Status == "" {
		rec.Status = statusScheduled
	}
	if rec.Professional == "" {
		rec.Professional = "doctor"
	}
	stored := rec
	s.records[rec.ID] = &stored
	return rec.ID
}

// Record returns a copy of a stored record.
func (s *Server) Record(id int64) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Fail makes the next request matching method and path answer with status and
// a structured error. An empty message produces an unstructured body.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.failures[key] = append(s.failures[key], failure{status: status, message: message})
}

// Drop makes the next request matching method and path abort without a
// response, simulating a network failure.
func (s *Server) Drop(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.failures[key] = append(s.failures[key], failure{drop: true})
}

// Calls returns every request received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallLog returns the received requests rendered as "METHOD /path".
func (s *Server) CallLog() []string {
	calls := s.Calls()
	out := make([]string, 0, len(calls))
	for _, call := range calls {
		out = append(out, call.String())
	}
	return out
}

// ResetCalls forgets the recorded requests.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// Handler exposes the API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recordCall, s.injectFailures)
	r.Route("/api", func(r chi.Router) {
		r.Get("/clients", s.listClients)
		r.Get("/stats", s.stats)
		r.Get("/appointments", s.listAppointments)
		r.Post("/appointments", s.createAppointment)
		r.Get("/appointments/cancelled", s.listCancelled)
		r.Put("/appointments/{id}", s.updateAppointment)
		r.Delete("/appointments/{id}", s.deleteAppointment)
		r.Post("/appointments/{id}/complete", s.completeAppointment)
		r.Post("/appointments/{id}/cancel", s.cancelAppointment)
	})
	return r
}

func (s *Server) recordCall(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		queue := s.failures[key]
		var pending *failure
		if len(queue) > 0 {
			first := queue[0]
			pending = &first
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if pending == nil {
			next.ServeHTTP(w, r)
			return
		}
		if pending.drop {
			panic(http.ErrAbortHandler)
		}
		if pending.message == "" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(pending.status)
			_, _ = w.Write([]byte(http.StatusText(pending.status)))
			return
		}
		writeError(w, pending.status, pending.message)
	})
}

func (s *Server) listClients(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.role.CanSchedule() {
		writeError(w, http.StatusForbidden, MsgUnauthorized)
		return
	}
	out := make([]appointment.Client, len(s.clients))
	copy(out, s.clients)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int{}
	for _, rec := range s.records {
		counts[rec.Status]++
	}
	total := len(s.records)
	var out map[string]int
	switch s.role {
	case appointment.RoleAdmin:
		out = map[string]int{
			"total_users":         s.users,
			"total_appointments":  total,
			"active_appointments": counts[statusScheduled],
		}
	case appointment.RoleProfessional:
		out = map[string]int{
			"my_appointments": total,
			"pending":         counts[statusScheduled],
			"completed":       counts[statusCompleted],
		}
	default:
		out = map[string]int{
			"my_appointments": total,
			"upcoming":        counts[statusScheduled],
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	if raw := r.URL.Query().Get("start"); raw != "" {
		from, _ = appointment.ParseInstant(raw, time.UTC)
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		to, _ = appointment.ParseInstant(raw, time.UTC)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]appointment.Event, 0, len(s.records))
	for _, rec := range s.sortedLocked() {
		start, end := s.spanLocked(rec)
		if !from.IsZero() && !end.After(from) {
			continue
		}
		if !to.IsZero() && !start.Before(to) {
			continue
		}
		events = append(events, s.eventLocked(rec))
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) listCancelled(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.role.CanSchedule() {
		writeError(w, http.StatusForbidden, MsgUnauthorized)
		return
	}
	out := make([]appointment.Cancelled, 0)
	for _, rec := range s.sortedLocked() {
		if rec.Status != statusCancelled {
			continue
		}
		out = append(out, appointment.Cancelled{
			ID:                 appointment.ID(rec.ID),
			PatientName:        rec.PatientName,
			StartDatetime:      rec.Start,
			EndDatetime:        rec.End,
			Status:             appointment.Status(rec.Status),
			CancellationReason: rec.CancellationReason,
			CancelledAt:        rec.CancelledAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSave(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.role.CanSchedule() {
		writeError(w, http.StatusForbidden, "Solo profesionales pueden crear citas")
		return
	}
	rec := &Record{
		PatientName:  req.PatientName,
		Start:        req.StartDatetime,
		End:          req.EndDatetime,
		Status:       statusScheduled,
		Notes:        req.Notes,
		Professional: "doctor",
		ClientID:     req.ClientID,
	}
	if s.overlapsLocked(rec, 0) {
		writeError(w, http.StatusBadRequest, MsgOverlap)
		return
	}
	rec.ID = s.nextID
	s.nextID++
	s.records[rec.ID] = rec
	writeJSON(w, http.StatusCreated, appointment.MessageResponse{Message: MsgCreated, ID: appointment.ID(rec.ID)})
}

func (s *Server) updateAppointment(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSave(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookupLocked(w, r)
	if !ok {
		return
	}
	if !s.role.CanSchedule() {
		writeError(w, http.StatusForbidden, MsgUnauthorized)
		return
	}
	candidate := *rec
	candidate.PatientName = req.PatientName
	candidate.Start = req.StartDatetime
	candidate.End = req.EndDatetime
	candidate.Notes = req.Notes
	candidate.ClientID = req.ClientID
	if s.overlapsLocked(&candidate, rec.ID) {
		writeError(w, http.StatusBadRequest, MsgOverlap)
		return
	}
	*rec = candidate
	writeJSON(w, http.StatusOK, appointment.MessageResponse{Message: MsgUpdated})
}

func (s *Server) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookupLocked(w, r)
	if !ok {
		return
	}
	if !s.role.CanSchedule() {
		writeError(w, http.StatusForbidden, MsgUnauthorized)
		return
	}
	delete(s.records, rec.ID)
	writeJSON(w, http.StatusOK, appointment.MessageResponse{Message: MsgDeleted})
}

func (s *Server) completeAppointment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookupLocked(w, r)
	if !ok {
		return
	}
	if !s.role.CanSchedule() {
		writeError(w, http.StatusForbidden, MsgUnauthorized)
		return
	}
	if rec.Status != statusScheduled {
		writeError(w, http.StatusBadRequest, MsgNotScheduled)
		return
	}
	rec.Status = statusCompleted
	writeJSON(w, http.StatusOK, appointment.MessageResponse{Message: MsgCompleted})
}

func (s *Server) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointment.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookupLocked(w, r)
	if !ok {
		return
	}
	if rec.Status != statusScheduled {
		writeError(w, http.StatusBadRequest, MsgNotScheduled)
		return
	}
	rec.Status = statusCancelled
	rec.CancellationReason = req.Reason
	rec.CancelledAt = appointment.FormatISO(s.now())
	writeJSON(w, http.StatusOK, appointment.MessageResponse{Message: MsgCancelled})
}

func decodeSave(w http.ResponseWriter, r *http.Request) (appointment.SaveRequest, bool) {
	var req appointment.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return req, false
	}
	if strings.TrimSpace(req.PatientName) == "" {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return req, false
	}
	start, errStart := appointment.ParseInstant(req.StartDatetime, time.UTC)
	end, errEnd := appointment.ParseInstant(req.EndDatetime, time.UTC)
	if errStart != nil || errEnd != nil || !end.After(start) {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return req, false
	}
	return req, true
}

func (s *Server) lookupLocked(w http.ResponseWriter, r *http.Request) (*Record, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, MsgNotFound)
		return nil, false
	}
	rec, ok := s.records[id]
	if !ok {
		writeError(w, http.StatusNotFound, MsgNotFound)
		return nil, false
	}
	return rec, true
}

func (s *Server) overlapsLocked(candidate *Record, self int64) bool {
	start, end := s.spanLocked(candidate)
	for id, rec := range s.records {
		if id == self || rec.Status != statusScheduled {
			continue
		}
		otherStart, otherEnd := s.spanLocked(rec)
		if start.Before(otherEnd) && otherStart.Before(end) {
			return true
		}
	}
	return false
}

func (s *Server) spanLocked(rec *Record) (time.Time, time.Time) {
	start, _ := appointment.ParseInstant(rec.Start, time.UTC)
	end, err := appointment.ParseInstant(rec.End, time.UTC)
	if err != nil {
		end = start
	}
	return start, end
}

func (s *Server) sortedLocked() []*Record {
	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Server) eventLocked(rec *Record) appointment.Event {
	color := colorScheduled
	switch rec.Status {
	case statusCompleted:
		color = colorCompleted
	case statusCancelled:
		color = colorCancelled
	}
	client := appointment.NoClientLabel
	if rec.ClientID != nil {
		for _, c := range s.clients {
			if c.ID == *rec.ClientID {
				client = c.Username
				break
			}
		}
	}
	scheduled := rec.Status == statusScheduled
	return appointment.Event{
		ID:              appointment.ID(rec.ID),
		Title:           rec.PatientName,
		Start:           rec.Start,
		End:             rec.End,
		BackgroundColor: color,
		BorderColor:     color,
		ExtendedProps: appointment.ExtendedProps{
			PatientName:  rec.PatientName,
			Status:       appointment.Status(rec.Status),
			Notes:        rec.Notes,
			Professional: rec.Professional,
			Client:       client,
			ClientID:     rec.ClientID,
			CanComplete:  scheduled && s.role.CanSchedule(),
			CanCancel:    scheduled,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, appointment.ErrorResponse{Error: message})
}
