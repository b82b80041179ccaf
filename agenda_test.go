package agenda

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-agenda/internal/config"
	"github.com/goliatone/go-agenda/pkg/appointment"
	"github.com/goliatone/go-agenda/pkg/renderers/tui"
	"github.com/goliatone/go-agenda/pkg/testsupport/fakeapi"
)

type quitDriver struct {
	lines []string
}

func (d *quitDriver) Input(context.Context, tui.InputConfig) (string, error) {
	return "", tui.ErrAborted
}
func (d *quitDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error)     { return false, nil }
func (d *quitDriver) Select(context.Context, tui.SelectConfig) (int, error)        { return 0, tui.ErrAborted }
func (d *quitDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) { return "", nil }
func (d *quitDriver) Info(_ context.Context, msg string) error {
	d.lines = append(d.lines, msg)
	return nil
}

func newBackend(t *testing.T, role appointment.Role) (*fakeapi.Server, *Config) {
	t.Helper()
	backend := fakeapi.New(fakeapi.WithRole(role))
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	env := map[string]string{
		"AGENDA_BASE_URL":     srv.URL,
		"AGENDA_ROLE":         string(role),
		"AGENDA_SHOW_HISTORY": "true",
	}
	cfg, err := LoadConfig(config.WithLookup(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return backend, cfg
}

func TestNewHTMLDashboard_Bootstrap(t *testing.T) {
	backend, cfg := newBackend(t, appointment.RoleAdmin)
	backend.Seed(fakeapi.Record{PatientName: "Ana", Start: "2024-06-01T15:00:00.000Z", End: "2024-06-01T16:00:00.000Z"})

	log, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	client, err := NewClient(cfg, log)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	doc, ctrl, err := NewHTMLDashboard(cfg, client, log, nil)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if err := ctrl.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	want := []string{
		"GET /api/appointments",
		"GET /api/stats",
		"GET /api/clients",
		"GET /api/appointments",
		"GET /api/appointments/cancelled",
	}
	if diff := cmp.Diff(want, backend.CallLog()); diff != "" {
		t.Fatalf("bootstrap calls mismatch (-want +got):\n%s", diff)
	}

	page, err := doc.Page(ctrl.Role())
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	for _, needle := range []string{`data-role="admin"`, "Ana", "PROGRAMADA"} {
		if !strings.Contains(page, needle) {
			t.Fatalf("expected %q in page:\n%s", needle, page)
		}
	}
}

func TestNewHTMLDashboard_UnknownVariant(t *testing.T) {
	_, cfg := newBackend(t, appointment.RoleProfessional)
	cfg.ThemeVariant = "neon"
	if _, _, err := NewHTMLDashboard(cfg, nil, nil, nil); err == nil {
		t.Fatal("expected unknown variant error")
	}
}

func TestNewTerminalSession_QuitsOnAbort(t *testing.T) {
	backend, cfg := newBackend(t, appointment.RoleClient)
	client, err := NewClient(cfg, nil)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	driver := &quitDriver{}
	var counter bytes.Buffer
	session, err := NewTerminalSession(cfg, client, nil, &counter, tui.WithPromptDriver(driver), tui.WithCounterOutput(&counter, 1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"GET /api/appointments", "GET /api/stats"}
	if diff := cmp.Diff(want, backend.CallLog()); diff != "" {
		t.Fatalf("client bootstrap calls mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(counter.String(), "Mis Citas: 0") {
		t.Fatalf("expected counter output, got %q", counter.String())
	}
}
