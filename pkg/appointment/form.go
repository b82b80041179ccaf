package appointment

import (
	"strconv"
	"strings"
	"time"
)

// Form holds the raw values of the create/edit modal. Start and End use
// LocalLayout; ClientID is the selected option value ("" when unassigned).
type Form struct {
	PatientName string
	Start       string
	End         string
	Notes       string
	ClientID    string
}

// Validation messages shown to the user.
const (
	MsgPatientRequired = "El nombre del paciente es requerido"
	MsgDatesRequired   = "Las fechas de inicio y fin son requeridas"
	MsgEndBeforeStart  = "La fecha de fin debe ser posterior a la fecha de inicio"
	MsgInvalidClient   = "El cliente seleccionado no es válido"
)

// ValidationError is a user-correctable form problem detected before any
// request is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the form and builds the request body in one pass. Instants
// are read in loc and emitted in ISOLayout.
func (f Form) Validate(loc *time.Location) (SaveRequest, error) {
	name := strings.TrimSpace(f.PatientName)
	if name == "" {
		return SaveRequest{}, &ValidationError{Field: "patient_name", Message: MsgPatientRequired}
	}
	if strings.TrimSpace(f.Start) == "" || strings.TrimSpace(f.End) == "" {
		return SaveRequest{}, &ValidationError{Field: "start_datetime", Message: MsgDatesRequired}
	}

	start, err := ParseInstant(f.Start, loc)
	if err != nil {
		return SaveRequest{}, &ValidationError{Field: "start_datetime", Message: MsgDatesRequired}
	}
	end, err := ParseInstant(f.End, loc)
	if err != nil {
		return SaveRequest{}, &ValidationError{Field: "end_datetime", Message: MsgDatesRequired}
	}
	if !end.After(start) {
		return SaveRequest{}, &ValidationError{Field: "end_datetime", Message: MsgEndBeforeStart}
	}

	req := SaveRequest{
		PatientName:   name,
		StartDatetime: FormatISO(start),
		EndDatetime:   FormatISO(end),
		Notes:         f.Notes,
	}
	if raw := strings.TrimSpace(f.ClientID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return SaveRequest{}, &ValidationError{Field: "client_id", Message: MsgInvalidClient}
		}
		req.ClientID = &id
	}
	return req, nil
}

// FormFromEvent populates a form from a calendar event, rendering instants in loc.
func FormFromEvent(event Event, loc *time.Location) (Form, error) {
	start, end, err := event.Span(loc)
	if err != nil {
		return Form{}, err
	}
	form := Form{
		PatientName: event.ExtendedProps.PatientName,
		Start:       FormatLocal(start, loc),
		End:         FormatLocal(end, loc),
		Notes:       event.ExtendedProps.Notes,
	}
	if event.ExtendedProps.ClientID != nil {
		form.ClientID = strconv.FormatInt(*event.ExtendedProps.ClientID, 10)
	}
	return form, nil
}

// RescheduleRequest builds the full-update body for a dragged or resized event
// using the event's current coordinates.
func RescheduleRequest(event Event, loc *time.Location) (SaveRequest, error) {
	start, end, err := event.Span(loc)
	if err != nil {
		return SaveRequest{}, err
	}
	req := SaveRequest{
		PatientName:   event.ExtendedProps.PatientName,
		StartDatetime: FormatISO(start),
		EndDatetime:   FormatISO(end),
		Notes:         event.ExtendedProps.Notes,
	}
	if event.ExtendedProps.ClientID != nil {
		id := *event.ExtendedProps.ClientID
		req.ClientID = &id
	}
	return req, nil
}
