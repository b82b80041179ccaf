package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func lima(t *testing.T) *time.Location {
	t.Helper()
	return time.FixedZone("America/Lima", -5*60*60)
}

func TestFormValidate_RejectsBeforeBuildingRequest(t *testing.T) {
	loc := lima(t)
	cases := []struct {
		name    string
		form    Form
		message string
	}{
		{
			name:    "blank patient",
			form:    Form{PatientName: "   ", Start: "2024-06-01T10:00", End: "2024-06-01T11:00"},
			message: MsgPatientRequired,
		},
		{
			name:    "missing end",
			form:    Form{PatientName: "Ana", Start: "2024-06-01T10:00"},
			message: MsgDatesRequired,
		},
		{
			name:    "end before start",
			form:    Form{PatientName: "Juan Perez", Start: "2024-06-01T10:00", End: "2024-06-01T09:00"},
			message: MsgEndBeforeStart,
		},
		{
			name:    "end equals start",
			form:    Form{PatientName: "Juan Perez", Start: "2024-06-01T10:00", End: "2024-06-01T10:00"},
			message: MsgEndBeforeStart,
		},
		{
			name:    "non numeric client",
			form:    Form{PatientName: "Ana", Start: "2024-06-01T10:00", End: "2024-06-01T11:00", ClientID: "abc"},
			message: MsgInvalidClient,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.form.Validate(loc)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Message != tc.message {
				t.Fatalf("message: want %q, got %q", tc.message, verr.Message)
			}
		})
	}
}

func TestFormValidate_BuildsISORequest(t *testing.T) {
	form := Form{
		PatientName: "  Juan Perez ",
		Start:       "2024-06-01T10:00",
		End:         "2024-06-01T10:30",
		Notes:       "control",
		ClientID:    "7",
	}
	got, err := form.Validate(lima(t))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	clientID := int64(7)
	want := SaveRequest{
		PatientName:   "Juan Perez",
		StartDatetime: "2024-06-01T15:00:00.000Z",
		EndDatetime:   "2024-06-01T15:30:00.000Z",
		Notes:         "control",
		ClientID:      &clientID,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestFormValidate_OmitsUnassignedClient(t *testing.T) {
	got, err := Form{PatientName: "Ana", Start: "2024-06-01T10:00", End: "2024-06-01T11:00"}.Validate(lima(t))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.ClientID != nil {
		t.Fatalf("expected no client id, got %d", *got.ClientID)
	}
}

func TestFormFromEvent(t *testing.T) {
	clientID := int64(3)
	event := Event{
		ID:    9,
		Title: "Ana",
		Start: "2024-06-01T15:00:00.000Z",
		ExtendedProps: ExtendedProps{
			PatientName: "Ana",
			Notes:       "primera visita",
			ClientID:    &clientID,
		},
	}
	got, err := FormFromEvent(event, lima(t))
	if err != nil {
		t.Fatalf("form from event: %v", err)
	}
	want := Form{
		PatientName: "Ana",
		Start:       "2024-06-01T10:00",
		End:         "2024-06-01T10:00",
		Notes:       "primera visita",
		ClientID:    "3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestRescheduleRequest_KeepsEventFields(t *testing.T) {
	event := Event{
		ID:    4,
		Start: "2024-06-02T09:00",
		End:   "2024-06-02T10:00",
		ExtendedProps: ExtendedProps{
			PatientName: "Luis",
		},
	}
	got, err := RescheduleRequest(event, lima(t))
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	want := SaveRequest{
		PatientName:   "Luis",
		StartDatetime: "2024-06-02T14:00:00.000Z",
		EndDatetime:   "2024-06-02T15:00:00.000Z",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}
