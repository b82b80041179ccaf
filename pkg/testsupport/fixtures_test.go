package testsupport

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEvents(t *testing.T) {
	events := MustLoadEvents(t, filepath.Join("testdata", "events.json"))
	if len(events) != 2 {
		t.Fatalf("expected two events, got %d", len(events))
	}
	if events[0].ExtendedProps.PatientName != "Ana" || !events[0].Completable() {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].ClientLabel() != "" {
		t.Fatalf("N/A client should have no label, got %q", events[1].ClientLabel())
	}
}

func TestLoadEvents_Errors(t *testing.T) {
	if _, err := LoadEvents(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadEvents(filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatalf("expected error for missing fixture")
	}
}

func TestCaptureOutput(t *testing.T) {
	result, written := CaptureOutput(t, func(w io.Writer) (string, error) {
		_, err := io.WriteString(w, "hola")
		return "hola", err
	})
	if result != written || !strings.EqualFold(result, "HOLA") {
		t.Fatalf("unexpected capture: %q %q", result, written)
	}
}
