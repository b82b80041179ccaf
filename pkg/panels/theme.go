package panels

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme identity.
const (
	ThemeName    = "agenda"
	ThemeVersion = "1.0.0"
	VariantDark  = "dark"
)

const (
	colorTokenPrefix = "color."
	cssVarPrefix     = "--"
	partialPrefix    = "panels."
)

var templateNames = []string{"calendar", "modal", "list", "history", "stats", "toasts", "page", "placeholder"}

// Manifest describes the default look of the panels. Tokens map view states to
// CSS classes; "color." tokens are also exposed as CSS custom properties.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: ThemeVersion,
		Tokens: map[string]string{
			"color.brand":         "#667eea",
			"color.surface":       "#ffffff",
			"color.text":          "#212529",
			"badge.programada":    "badge bg-primary",
			"badge.completada":    "badge bg-success",
			"badge.cancelada":     "badge bg-danger",
			"alert.success":       "alert alert-success",
			"alert.danger":        "alert alert-danger",
			"alert.warning":       "alert alert-warning",
			"alert.info":          "alert alert-info",
			"placeholder.loading": "text-center py-3",
			"placeholder.empty":   "text-center text-muted py-4",
			"placeholder.error":   "text-center text-danger py-3",
			"button.complete":     "btn btn-success btn-sm",
			"button.cancel":       "btn btn-danger btn-sm",
			"button.delete":       "btn btn-outline-danger",
			"button.save":         "btn btn-primary",
			"stat.card":           "stat-card",
		},
		Templates: map[string]string{
			"panels.list":        "list.html",
			"panels.history":     "history.html",
			"panels.stats":       "stats.html",
			"panels.toasts":      "toasts.html",
			"panels.modal":       "modal.html",
			"panels.calendar":    "calendar.html",
			"panels.page":        "page.html",
			"panels.placeholder": "placeholder.html",
		},
		Assets: theme.Assets{
			Prefix: "/static/themes/agenda",
			Files: map[string]string{
				"stylesheet": "dashboard.css",
			},
		},
		Variants: map[string]theme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					"color.brand":       "#8b9cf7",
					"color.surface":     "#1f2933",
					"color.text":        "#f5f7fa",
					"placeholder.empty": "text-center text-secondary py-4",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"stylesheet": "dashboard.dark.css",
					},
				},
			},
		},
	}
}

// Registry returns a go-theme provider holding manifest. Registration also
// rejects malformed manifests.
func Registry(manifest *theme.Manifest) (theme.ThemeProvider, error) {
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("panels: register theme %q: %w", manifest.Name, err)
	}
	return registry, nil
}

// Select resolves name and variant through provider. An empty name selects
// the agenda theme; a variant the manifest does not declare is an error.
func Select(provider theme.ThemeProvider, name, variant string) (*theme.Selection, error) {
	selector := theme.Selector{Registry: provider, DefaultTheme: ThemeName}
	selection, err := selector.Select(name, strings.TrimSpace(variant))
	if err != nil {
		return nil, fmt.Errorf("panels: select theme: %w", err)
	}
	if selection.Variant != "" {
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			return nil, fmt.Errorf("panels: unknown theme variant %q", selection.Variant)
		}
	}
	return selection, nil
}

// RendererConfig builds the renderer view of selection. Partials fall back to
// the embedded templates and only "color." tokens become CSS variables.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	cfg := selection.RendererTheme(DefaultPartials())
	cfg.CSSVars = colorVars(selection.CSSVariables(cssVarPrefix))
	return &cfg
}

// DefaultPartials maps every template key to its embedded file.
func DefaultPartials() map[string]string {
	out := make(map[string]string, len(templateNames))
	for _, name := range templateNames {
		out[partialKey(name)] = name + ".html"
	}
	return out
}

func partialKey(name string) string {
	return partialPrefix + name
}

// colorVars keeps the color tokens, renamed "--color.brand" to "--brand".
func colorVars(vars map[string]string) map[string]string {
	out := make(map[string]string)
	for key, value := range vars {
		if name, ok := strings.CutPrefix(key, cssVarPrefix+colorTokenPrefix); ok {
			out[cssVarPrefix+name] = value
		}
	}
	return out
}

// cssVarsStyle renders vars as an inline declaration list in key order.
func cssVarsStyle(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s; ", key, vars[key])
	}
	return strings.TrimSpace(b.String())
}
