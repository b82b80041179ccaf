package appointment

import (
	"strconv"
	"strings"
	"time"
)

// ID identifies an appointment. Zero means "not assigned yet".
type ID int64

// String renders the identifier as used in URL paths.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsZero reports whether the identifier has not been assigned by the server.
func (id ID) IsZero() bool {
	return id == 0
}

// ParseID converts a path or form value into an ID.
func ParseID(raw string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// Status is the lifecycle state reported by the server.
type Status string

const (
	StatusScheduled Status = "programada"
	StatusCompleted Status = "completada"
	StatusCancelled Status = "cancelada"
)

// Normalize lowercases and trims a status; the backend capitalises values.
func (s Status) Normalize() Status {
	return Status(strings.ToLower(strings.TrimSpace(string(s))))
}

// Is compares two statuses ignoring case.
func (s Status) Is(other Status) bool {
	return s.Normalize() == other.Normalize()
}

// Event is the calendar-shaped appointment returned by GET /api/appointments.
type Event struct {
	ID              ID            `json:"id"`
	Title           string        `json:"title"`
	Start           string        `json:"start"`
	End             string        `json:"end,omitempty"`
	BackgroundColor string        `json:"backgroundColor,omitempty"`
	BorderColor     string        `json:"borderColor,omitempty"`
	ExtendedProps   ExtendedProps `json:"extendedProps"`
}

// ExtendedProps carries the appointment fields the calendar does not model.
type ExtendedProps struct {
	PatientName  string `json:"patient_name"`
	Status       Status `json:"status"`
	Notes        string `json:"notes"`
	Professional string `json:"professional,omitempty"`
	Client       string `json:"client,omitempty"`
	ClientID     *int64 `json:"client_id"`
	CanComplete  bool   `json:"can_complete"`
	CanCancel    bool   `json:"can_cancel"`
}

// NoClientLabel is the display name the server uses when no client is assigned.
const NoClientLabel = "N/A"

// ClientLabel returns the assigned client's display name, or "" when none.
func (e Event) ClientLabel() string {
	name := strings.TrimSpace(e.ExtendedProps.Client)
	if name == "" || name == NoClientLabel {
		return ""
	}
	return name
}

// Schedulable reports whether the appointment can still transition.
func (e Event) Schedulable() bool {
	return e.ExtendedProps.Status.Is(StatusScheduled)
}

// Completable reports whether the viewer may mark the appointment completed.
func (e Event) Completable() bool {
	return e.Schedulable() && e.ExtendedProps.CanComplete
}

// Cancellable reports whether the viewer may cancel the appointment.
func (e Event) Cancellable() bool {
	return e.Schedulable() && e.ExtendedProps.CanCancel
}

// Span resolves the event's start and end instants in loc. Events without an
// end collapse to their start, matching how the calendar treats them.
func (e Event) Span(loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseInstant(e.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if strings.TrimSpace(e.End) == "" {
		return start, start, nil
	}
	end, err := ParseInstant(e.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Cancelled is a row of GET /api/appointments/cancelled.
type Cancelled struct {
	ID                 ID     `json:"id"`
	PatientName        string `json:"patient_name"`
	StartDatetime      string `json:"start_datetime"`
	EndDatetime        string `json:"end_datetime,omitempty"`
	Status             Status `json:"status,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
	CancelledAt        string `json:"cancelled_at"`
}

// Client is an assignable client account.
type Client struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Label renders the dropdown label for the client.
func (c Client) Label() string {
	if strings.TrimSpace(c.Email) == "" {
		return c.Username
	}
	return c.Username + " (" + c.Email + ")"
}

// Stats is the role-shaped summary returned by GET /api/stats. Keys absent
// from the payload decode as zero.
type Stats struct {
	TotalUsers         int `json:"total_users"`
	TotalAppointments  int `json:"total_appointments"`
	ActiveAppointments int `json:"active_appointments"`
	MyAppointments     int `json:"my_appointments"`
	Pending            int `json:"pending"`
	Completed          int `json:"completed"`
	Upcoming           int `json:"upcoming"`
}

// SaveRequest is the body of create and full-update calls.
type SaveRequest struct {
	PatientName   string `json:"patient_name"`
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
	Notes         string `json:"notes"`
	ClientID      *int64 `json:"client_id,omitempty"`
}

// CancelRequest is the body of the cancel transition.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// MessageResponse is the success envelope of mutation endpoints.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	ID      ID     `json:"id,omitempty"`
}

// ErrorResponse is the structured error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Range is the visible window of the calendar or the selection of a gesture.
type Range struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether the range carries no instants.
func (r Range) Empty() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
