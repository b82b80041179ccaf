package panels

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-agenda/pkg/appointment"
	"github.com/goliatone/go-agenda/pkg/dashboard"
	"github.com/goliatone/go-agenda/pkg/logger"
)

// Region names a part of the page.
type Region string

const (
	RegionCalendar Region = "calendar"
	RegionModal    Region = "modal"
	RegionList     Region = "list"
	RegionHistory  Region = "history"
	RegionStats    Region = "stats"
	RegionToasts   Region = "toasts"
)

// Option configures a Document.
type Option func(*Document)

// WithEngine replaces the template engine.
func WithEngine(engine *Engine) Option {
	return func(d *Document) {
		if engine != nil {
			d.engine = engine
		}
	}
}

// WithTheme registers manifest and selects variant for classes, CSS
// variables and templates.
func WithTheme(manifest *theme.Manifest, variant string) Option {
	return func(d *Document) {
		d.manifest = manifest
		d.themeName = ""
		if manifest != nil {
			d.themeName = manifest.Name
		}
		d.variant = variant
	}
}

// WithThemeProvider selects name and variant from an existing registry.
func WithThemeProvider(provider theme.ThemeProvider, name, variant string) Option {
	return func(d *Document) {
		d.provider = provider
		d.themeName = name
		d.variant = variant
	}
}

// WithHistoryVisible shows the cancelled-history panel.
func WithHistoryVisible(visible bool) Option {
	return func(d *Document) {
		d.historyVisible = visible
	}
}

// WithLogger sets the logger used for rendering failures.
func WithLogger(l *zap.Logger) Option {
	return func(d *Document) {
		d.logger = logger.OrNop(l)
	}
}

// WithLocation sets the zone used to display calendar instants.
func WithLocation(loc *time.Location) Option {
	return func(d *Document) {
		if loc != nil {
			d.loc = loc
		}
	}
}

// WithMaxToasts bounds how many notifications the toast region keeps.
func WithMaxToasts(n int) Option {
	return func(d *Document) {
		if n > 0 {
			d.maxToasts = n
		}
	}
}

// Document holds the latest markup of every region. Its port adapters are safe
// for concurrent use.
type Document struct {
	mu sync.RWMutex

	engine         *Engine
	manifest       *theme.Manifest
	provider       theme.ThemeProvider
	themeName      string
	variant        string
	config         *theme.RendererConfig
	classes        map[string]string
	logger         *zap.Logger
	loc            *time.Location
	historyVisible bool
	maxToasts      int

	regions map[Region]string
	toasts  []dashboard.Notification
	modal   modalState
}

type modalState struct {
	open    bool
	view    dashboard.ModalView
	saving  bool
	options []dashboard.SelectOption
}

// NewDocument builds an empty page. Rendering errors are logged and leave the
// region's previous markup in place.
func NewDocument(opts ...Option) (*Document, error) {
	d := &Document{
		logger:    zap.NewNop(),
		loc:       time.UTC,
		maxToasts: 5,
		regions:   make(map[Region]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.provider == nil {
		if d.manifest == nil {
			d.manifest = Manifest()
		}
		provider, err := Registry(d.manifest)
		if err != nil {
			return nil, err
		}
		d.provider = provider
	}
	selection, err := Select(d.provider, d.themeName, d.variant)
	if err != nil {
		return nil, err
	}
	cfg := RendererConfig(selection)
	d.config = cfg
	d.classes = classNames(cfg.Tokens)
	if d.engine == nil {
		engine, err := NewEngine()
		if err != nil {
			return nil, err
		}
		d.engine = engine
	}
	return d, nil
}

// Region returns the latest markup of r.
func (d *Document) Region(r Region) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.regions[r]
}

// ThemeConfig returns the resolved theme.
func (d *Document) ThemeConfig() *theme.RendererConfig {
	return d.config
}

// Calendar returns the calendar port.
func (d *Document) Calendar() dashboard.Calendar { return calendarPort{d} }

// Modal returns the modal port.
func (d *Document) Modal() dashboard.Modal { return modalPort{d} }

// List returns the appointment list port.
func (d *Document) List() dashboard.ListView { return listPort{d} }

// History returns the cancelled-history port.
func (d *Document) History() dashboard.HistoryView { return historyPort{d} }

// Stats returns the statistics port.
func (d *Document) Stats() dashboard.StatsView { return statsPort{d} }

// Notify implements dashboard.Notifier. The newest toast is rendered first.
func (d *Document) Notify(n dashboard.Notification) {
	d.mu.Lock()
	d.toasts = append([]dashboard.Notification{n}, d.toasts...)
	if len(d.toasts) > d.maxToasts {
		d.toasts = d.toasts[:d.maxToasts]
	}
	toasts := make([]map[string]any, 0, len(d.toasts))
	for _, t := range d.toasts {
		toasts = append(toasts, map[string]any{
			"class":       d.classes["alert_"+string(t.Level)],
			"level":       string(t.Level),
			"duration_ms": strconv.FormatInt(t.Duration.Milliseconds(), 10),
			"html":        MessageHTML(t.Message),
		})
	}
	d.mu.Unlock()

	d.render(RegionToasts, "toasts", map[string]any{"toasts": toasts})
}

// Toasts returns the notifications currently shown, newest first.
func (d *Document) Toasts() []dashboard.Notification {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]dashboard.Notification, len(d.toasts))
	copy(out, d.toasts)
	return out
}

// ClearToasts dismisses every notification.
func (d *Document) ClearToasts() {
	d.mu.Lock()
	d.toasts = nil
	d.mu.Unlock()
	d.render(RegionToasts, "toasts", map[string]any{})
}

// Page renders the full document for role.
func (d *Document) Page(role appointment.Role) (string, error) {
	d.mu.RLock()
	regions := make(map[string]any, len(d.regions))
	for region, markup := range d.regions {
		regions[string(region)] = markup
	}
	visible := d.historyVisible
	d.mu.RUnlock()

	return d.engine.RenderTemplate(d.template("page"), map[string]any{
		"role":            string(role),
		"theme":           d.config.Theme,
		"variant":         d.config.Variant,
		"css_vars":        cssVarsStyle(d.config.CSSVars),
		"stylesheet":      d.config.AssetURL("stylesheet"),
		"history_visible": visible,
		"regions":         regions,
	})
}

// template resolves the file for a template key through the theme partials.
func (d *Document) template(name string) string {
	if file := d.config.Partials[partialKey(name)]; file != "" {
		return file
	}
	return name
}

func (d *Document) render(region Region, name string, data map[string]any) {
	data["classes"] = d.classes
	data["placeholder_template"] = d.template("placeholder")
	markup, err := d.engine.RenderTemplate(d.template(name), data)
	if err != nil {
		d.logger.Error("render panel", zap.String("region", string(region)), zap.Error(err))
		return
	}
	markup = SanitizeFragment(markup)
	d.mu.Lock()
	d.regions[region] = markup
	d.mu.Unlock()
}

func (d *Document) placeholder(region Region, name, state, message string) {
	d.render(region, name, map[string]any{
		"state":             state,
		"message":           message,
		"placeholder_class": d.classes["placeholder_"+state],
	})
}

// classNames flattens tokens into template-friendly keys ("badge.programada"
// becomes "badge_programada").
func classNames(tokens map[string]string) map[string]string {
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out[strings.ReplaceAll(key, ".", "_")] = value
	}
	return out
}

type calendarPort struct{ d *Document }

func (p calendarPort) SetEvents(events []appointment.Event) {
	items := make([]map[string]any, 0, len(events))
	for _, event := range events {
		item := map[string]any{
			"id":     event.ID.String(),
			"title":  event.Title,
			"start":  event.Start,
			"end":    event.End,
			"color":  event.BackgroundColor,
			"status": string(event.ExtendedProps.Status.Normalize()),
		}
		when := event.Start
		if start, end, err := event.Span(p.d.loc); err == nil {
			item["start"] = appointment.FormatLocal(start, p.d.loc)
			item["end"] = appointment.FormatLocal(end, p.d.loc)
			when = start.In(p.d.loc).Format(tooltipLayout)
		}
		item["tooltip"] = strings.Join([]string{event.Title, string(event.ExtendedProps.Status), when}, "\n")
		items = append(items, item)
	}
	p.d.render(RegionCalendar, "calendar", map[string]any{"events": items})
}

// tooltipLayout is the local start shown in event tooltips.
const tooltipLayout = "2/1/2006, 15:04:05"

type modalPort struct{ d *Document }

func (p modalPort) Show(view dashboard.ModalView) {
	p.d.mu.Lock()
	p.d.modal.open = true
	p.d.modal.view = view
	p.d.modal.saving = false
	p.d.mu.Unlock()
	p.rerender()
}

func (p modalPort) Hide() {
	p.d.mu.Lock()
	p.d.modal.open = false
	p.d.modal.saving = false
	p.d.mu.Unlock()
	p.rerender()
}

func (p modalPort) SetSaving(saving bool) {
	p.d.mu.Lock()
	p.d.modal.saving = saving
	p.d.mu.Unlock()
	p.rerender()
}

func (p modalPort) SetClientOptions(options []dashboard.SelectOption) {
	p.d.mu.Lock()
	p.d.modal.options = append([]dashboard.SelectOption(nil), options...)
	p.d.mu.Unlock()
	p.rerender()
}

func (p modalPort) rerender() {
	p.d.mu.RLock()
	state := p.d.modal
	p.d.mu.RUnlock()

	options := make([]map[string]any, 0, len(state.options))
	for _, option := range state.options {
		options = append(options, map[string]any{"value": option.Value, "label": option.Label})
	}
	id := ""
	if !state.view.ID.IsZero() {
		id = state.view.ID.String()
	}
	p.d.render(RegionModal, "modal", map[string]any{
		"open":        state.open,
		"mode":        string(state.view.Mode),
		"id":          id,
		"title":       state.view.Title,
		"show_delete": state.view.ShowDelete,
		"saving":      state.saving,
		"options":     options,
		"form": map[string]any{
			"patient_name": state.view.Form.PatientName,
			"start":        state.view.Form.Start,
			"end":          state.view.Form.End,
			"notes":        state.view.Form.Notes,
			"client_id":    state.view.Form.ClientID,
		},
	})
}

type listPort struct{ d *Document }

func (p listPort) ShowLoading(message string) {
	p.d.placeholder(RegionList, "list", "loading", message)
}

func (p listPort) ShowEmpty(message string) {
	p.d.placeholder(RegionList, "list", "empty", message)
}

func (p listPort) ShowError(message string) {
	p.d.placeholder(RegionList, "list", "error", message)
}

func (p listPort) ShowRows(rows []dashboard.ListRow) {
	items := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		items = append(items, map[string]any{
			"id":           row.ID.String(),
			"title":        row.Title,
			"date":         row.Date,
			"time":         row.Time,
			"client":       row.Client,
			"status_label": row.StatusLabel,
			"badge":        p.d.badgeClass(row),
			"can_complete": row.CanComplete,
			"can_cancel":   row.CanCancel,
		})
	}
	p.d.render(RegionList, "list", map[string]any{"state": "rows", "rows": items})
}

// badgeClass mirrors the list colouring: completed rows are green, everything
// else uses the scheduled badge.
func (d *Document) badgeClass(row dashboard.ListRow) string {
	if row.Completed {
		return d.classes["badge_completada"]
	}
	return d.classes["badge_programada"]
}

type historyPort struct{ d *Document }

func (p historyPort) Visible() bool {
	p.d.mu.RLock()
	defer p.d.mu.RUnlock()
	return p.d.historyVisible
}

func (p historyPort) ShowLoading(message string) {
	p.d.placeholder(RegionHistory, "history", "loading", message)
}

func (p historyPort) ShowEmpty(message string) {
	p.d.placeholder(RegionHistory, "history", "empty", message)
}

func (p historyPort) ShowError(message string) {
	p.d.placeholder(RegionHistory, "history", "error", message)
}

func (p historyPort) ShowRows(rows []dashboard.HistoryRow) {
	items := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		items = append(items, map[string]any{
			"id":           row.ID.String(),
			"patient_name": row.PatientName,
			"scheduled":    row.Scheduled,
			"cancelled_at": row.CancelledAt,
			"reason":       row.Reason,
		})
	}
	p.d.render(RegionHistory, "history", map[string]any{"state": "rows", "rows": items})
}

type statsPort struct{ d *Document }

// ShowStats renders the final counter values; animation is left to the page.
func (p statsPort) ShowStats(cards []dashboard.StatCard) {
	items := make([]map[string]any, 0, len(cards))
	for _, card := range cards {
		items = append(items, map[string]any{
			"label": card.Label,
			"value": strconv.Itoa(card.Value),
		})
	}
	p.d.render(RegionStats, "stats", map[string]any{"cards": items})
}

// SetHistoryVisible toggles the cancelled-history panel.
func (d *Document) SetHistoryVisible(visible bool) {
	d.mu.Lock()
	d.historyVisible = visible
	d.mu.Unlock()
}

var _ dashboard.Notifier = (*Document)(nil)

// ParseRegion validates a region name.
func ParseRegion(raw string) (Region, error) {
	switch r := Region(strings.TrimSpace(raw)); r {
	case RegionCalendar, RegionModal, RegionList, RegionHistory, RegionStats, RegionToasts:
		return r, nil
	default:
		return "", fmt.Errorf("panels: unknown region %q", raw)
	}
}
