package appointment

import (
	"errors"
	"testing"
	"time"
)

func TestParseInstant(t *testing.T) {
	loc := time.FixedZone("America/Lima", -5*60*60)
	want := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

	inputs := []string{
		"2024-06-01T15:00:00.000Z",
		"2024-06-01T15:00:00Z",
		"2024-06-01T10:00:00-05:00",
		"2024-06-01T10:00:00",
		"2024-06-01T10:00:00.000",
		"2024-06-01T10:00",
		"2024-06-01 10:00",
	}
	for _, input := range inputs {
		got, err := ParseInstant(input, loc)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q: want %s, got %s", input, want, got.UTC())
		}
	}
}

func TestParseInstant_Invalid(t *testing.T) {
	for _, input := range []string{"", "mañana", "2024-13-01T10:00"} {
		_, err := ParseInstant(input, nil)
		var ierr *InstantError
		if !errors.As(err, &ierr) {
			t.Fatalf("parse %q: expected InstantError, got %v", input, err)
		}
	}
}

func TestFormatRoundTripThroughForm(t *testing.T) {
	loc := time.FixedZone("America/Lima", -5*60*60)
	instant := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	if got := FormatLocal(instant, loc); got != "2024-06-01T10:00" {
		t.Fatalf("local: got %q", got)
	}
	if got := FormatISO(instant.In(loc)); got != "2024-06-01T15:00:00.000Z" {
		t.Fatalf("iso: got %q", got)
	}
}

func TestRoleAndStatusHelpers(t *testing.T) {
	if ParseRole(" Admin ") != RoleAdmin {
		t.Fatalf("expected admin")
	}
	if ParseRole("profesional") != RoleProfessional || !RoleProfessional.CanSchedule() {
		t.Fatalf("expected professional to schedule")
	}
	if ParseRole("") != RoleClient || RoleClient.CanSchedule() {
		t.Fatalf("expected unknown role to fall back to client")
	}
	event := Event{ExtendedProps: ExtendedProps{Status: "Programada", CanComplete: true}}
	if !event.Completable() || event.Cancellable() {
		t.Fatalf("unexpected gating: %+v", event.ExtendedProps)
	}
	if (Event{ExtendedProps: ExtendedProps{Client: "N/A"}}).ClientLabel() != "" {
		t.Fatalf("N/A client should render empty")
	}
}
