package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(WithLookup(lookupFrom(map[string]string{"AGENDA_BASE_URL": "http://localhost:5000"})))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.BaseURL = "http://localhost:5000"
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "America/Lima" {
		t.Fatalf("unexpected location %v %v", loc, err)
	}
	if cfg.Timeout() != 15*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Timeout())
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, "agenda.yaml", `
base_url: http://clinic.test
role: admin
request_timeout: 5s
show_history: true
theme_variant: dark
`)
	cfg, err := Load(WithFile(path), WithLookup(lookupFrom(map[string]string{
		"AGENDA_ROLE":         "cliente",
		"AGENDA_RANGE_FILTER": "true",
	})))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://clinic.test" || cfg.Timeout() != 5*time.Second || !cfg.ShowHistory || cfg.ThemeVariant != "dark" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.ViewerRole() != appointment.RoleClient || !cfg.RangeFilter {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeFile(t, ".env", "AGENDA_BASE_URL=http://from-dotenv.test\n")
	t.Setenv("AGENDA_BASE_URL", "")
	os.Unsetenv("AGENDA_BASE_URL")

	cfg, err := Load(WithEnvFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://from-dotenv.test" {
		t.Fatalf("dotenv value not applied: %q", cfg.BaseURL)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	_, err := Load(
		WithEnvFile(filepath.Join(t.TempDir(), "missing.env")),
		WithLookup(lookupFrom(map[string]string{"AGENDA_BASE_URL": "http://x.test"})),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		file string
		env  map[string]string
		want string
	}{
		{name: "missing base url", env: map[string]string{}, want: "base_url is required"},
		{name: "bad timezone", env: map[string]string{"AGENDA_BASE_URL": "http://x", "AGENDA_TIMEZONE": "Mars/Olympus"}, want: "timezone"},
		{name: "bad bool", env: map[string]string{"AGENDA_BASE_URL": "http://x", "AGENDA_SHOW_HISTORY": "quizas"}, want: "AGENDA_SHOW_HISTORY"},
		{name: "bad timeout", env: map[string]string{"AGENDA_BASE_URL": "http://x", "AGENDA_REQUEST_TIMEOUT": "0s"}, want: "request_timeout must be positive"},
		{name: "unknown key", file: "base_url: http://x\nbase_ur1: typo\n", env: map[string]string{}, want: "base_ur1"},
		{name: "bad duration", file: "base_url: http://x\nrequest_timeout: soon\n", env: map[string]string{}, want: "line 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := []Option{WithLookup(lookupFrom(tc.env))}
			if tc.file != "" {
				opts = append(opts, WithFile(writeFile(t, "agenda.yaml", tc.file)))
			}
			_, err := Load(opts...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
