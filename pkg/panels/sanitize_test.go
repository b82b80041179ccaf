package panels

import (
	"strings"
	"testing"
)

func TestMessageHTML(t *testing.T) {
	got := MessageHTML("Línea uno\n<script>alert(1)</script>Línea dos")
	if strings.Contains(got, "<script") {
		t.Fatalf("script survived: %q", got)
	}
	if !strings.Contains(got, "Línea uno<br>") {
		t.Fatalf("newline not converted: %q", got)
	}
}

func TestSanitizeFragment(t *testing.T) {
	raw := `<div class="card" data-id="3" onclick="steal()"><iframe src="x"></iframe><span class="badge">OK</span></div>`
	got := SanitizeFragment(raw)
	if strings.Contains(got, "onclick") || strings.Contains(got, "iframe") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
	for _, want := range []string{`class="card"`, `data-id="3"`, `<span class="badge">OK</span>`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if SanitizeFragment("   ") != "" {
		t.Fatalf("blank input should stay blank")
	}
}
