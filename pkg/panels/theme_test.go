package panels

import (
	"io/fs"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

func selectTheme(t *testing.T, manifest *theme.Manifest, variant string) *theme.RendererConfig {
	t.Helper()
	provider, err := Registry(manifest)
	if err != nil {
		t.Fatalf("register manifest: %v", err)
	}
	selection, err := Select(provider, "", variant)
	if err != nil {
		t.Fatalf("select theme: %v", err)
	}
	return RendererConfig(selection)
}

func TestRendererConfig_Base(t *testing.T) {
	cfg := selectTheme(t, Manifest(), "")
	if cfg.Theme != ThemeName || cfg.Variant != "" {
		t.Fatalf("unexpected identity: %s/%s", cfg.Theme, cfg.Variant)
	}
	want := map[string]string{"--brand": "#667eea", "--surface": "#ffffff", "--text": "#212529"}
	if diff := cmp.Diff(want, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultPartials(), cfg.Partials); diff != "" {
		t.Fatalf("partials mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/static/themes/agenda/dashboard.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset should resolve empty, got %q", got)
	}
}

func TestRendererConfig_Variant(t *testing.T) {
	cfg := selectTheme(t, Manifest(), VariantDark)
	if cfg.Tokens["color.surface"] != "#1f2933" || cfg.Tokens["badge.programada"] != "badge bg-primary" {
		t.Fatalf("variant tokens not merged: %+v", cfg.Tokens)
	}
	if cfg.CSSVars["--surface"] != "#1f2933" {
		t.Fatalf("variant css vars not applied: %+v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/static/themes/agenda/dashboard.dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
}

func TestSelect_Errors(t *testing.T) {
	provider, err := Registry(Manifest())
	if err != nil {
		t.Fatalf("register manifest: %v", err)
	}
	if _, err := Select(provider, "", "sepia"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
	if _, err := Select(theme.NewRegistry(), "", ""); err == nil {
		t.Fatalf("expected error for empty registry")
	}
	if _, err := Registry(&theme.Manifest{Name: "broken"}); err == nil {
		t.Fatalf("expected error for manifest without version")
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := cssVarsStyle(map[string]string{"--text": "#000", "--brand": "#fff"})
	if diff := cmp.Diff("--brand: #fff; --text: #000;", got); diff != "" {
		t.Fatalf("style mismatch (-want +got):\n%s", diff)
	}
}

// templatesWith copies the embedded templates and adds extra files.
func templatesWith(t *testing.T, extra map[string]string) fs.FS {
	t.Helper()
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		t.Fatalf("embedded templates: %v", err)
	}
	files := fstest.MapFS{}
	entries, err := fs.ReadDir(sub, ".")
	if err != nil {
		t.Fatalf("read templates: %v", err)
	}
	for _, entry := range entries {
		data, err := fs.ReadFile(sub, entry.Name())
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		files[entry.Name()] = &fstest.MapFile{Data: data}
	}
	for name, content := range extra {
		files[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return files
}
