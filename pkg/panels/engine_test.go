package panels

import (
	"embed"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-agenda/pkg/testsupport"
)

//go:embed testdata/templates/*.html
var testTemplates embed.FS

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	sub, err := fs.Sub(testTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := NewEngine(append([]EngineOption{WithTemplatesFS(sub)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newTestEngine(t)

	result, written := testsupport.CaptureOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("greeting", map[string]any{"name": "Ana"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "greeting.golden"))
	if result != want || written != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q / %q", want, result, written)
	}
}

func TestEngine_GlobalData(t *testing.T) {
	engine := newTestEngine(t, WithGlobalData(map[string]any{"clinic": "Clinica Lima"}))

	result, err := engine.RenderTemplate("use-global.html", struct {
		Name string `json:"name"`
	}{Name: "Ana"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "use-global.golden"), result)
}

func TestEngine_RenderStringEscapes(t *testing.T) {
	engine := newTestEngine(t)
	result, err := engine.RenderString("<p>{{ name }}</p>", map[string]any{"name": "<b>Ana</b>"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if strings.Contains(result, "<b>") {
		t.Fatalf("expected autoescaped output, got %q", result)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestEngine_EmbeddedTemplates(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.RenderTemplate("placeholder", map[string]any{
		"state":             "empty",
		"message":           "No hay citas programadas",
		"placeholder_class": "text-muted",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `data-state="empty"`) || !strings.Contains(out, "No hay citas programadas") {
		t.Fatalf("unexpected placeholder: %q", out)
	}
}
