package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/appointment"
	"github.com/goliatone/go-agenda/pkg/dashboard"
)

// Terminal is the text frontend of the dashboard. It implements the view
// ports by printing through its PromptDriver and remembers what it last
// showed so menus can offer it for selection.
type Terminal struct {
	mu sync.Mutex

	driver          PromptDriver
	theme           Theme
	logger          *zap.Logger
	counterOut      io.Writer
	counterInterval time.Duration
	historyVisible  bool

	events  []appointment.Event
	rows    []dashboard.ListRow
	options []dashboard.SelectOption
	modal   *dashboard.ModalView
	saving  bool
}

// New builds a terminal frontend. Without WithPromptDriver it talks to the
// real terminal through survey.
func New(options ...Option) *Terminal {
	t := &Terminal{
		theme:  DefaultTheme,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	if t.driver == nil {
		t.driver = NewSurveyDriver(nil)
	}
	return t
}

func (t *Terminal) info(msg string) {
	if err := t.driver.Info(context.Background(), msg); err != nil {
		t.logger.Warn("terminal output failed", zap.Error(err))
	}
}

// SetEvents implements dashboard.Calendar.
func (t *Terminal) SetEvents(events []appointment.Event) {
	t.mu.Lock()
	t.events = append([]appointment.Event(nil), events...)
	t.mu.Unlock()
}

// Events returns the events of the last calendar refresh.
func (t *Terminal) Events() []appointment.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]appointment.Event(nil), t.events...)
}

// PrintCalendar lists the calendar's events in loc.
func (t *Terminal) PrintCalendar(loc *time.Location) {
	events := t.Events()
	if len(events) == 0 {
		t.info(dashboard.MsgNoAppointments)
		return
	}
	for _, event := range events {
		t.info(EventLabel(event, loc))
	}
}

// EventLabel renders one calendar line.
func EventLabel(event appointment.Event, loc *time.Location) string {
	when := event.Start
	if start, end, err := event.Span(loc); err == nil {
		when = start.In(loc).Format("02/01/2006 15:04") + "-" + end.In(loc).Format("15:04")
	}
	label := fmt.Sprintf("#%s %s %s [%s]", event.ID, when, event.Title, strings.ToUpper(string(event.ExtendedProps.Status)))
	if client := event.ClientLabel(); client != "" {
		label += " " + client
	}
	return label
}

// Show implements dashboard.Modal.
func (t *Terminal) Show(view dashboard.ModalView) {
	t.mu.Lock()
	t.modal = &view
	t.saving = false
	t.mu.Unlock()
	t.info("== " + view.Title + " ==")
}

// Hide implements dashboard.Modal.
func (t *Terminal) Hide() {
	t.mu.Lock()
	t.modal = nil
	t.saving = false
	t.mu.Unlock()
}

// SetSaving implements dashboard.Modal.
func (t *Terminal) SetSaving(saving bool) {
	t.mu.Lock()
	t.saving = saving
	t.mu.Unlock()
	if saving {
		t.info("Guardando...")
	}
}

// SetClientOptions implements dashboard.Modal.
func (t *Terminal) SetClientOptions(options []dashboard.SelectOption) {
	t.mu.Lock()
	t.options = append([]dashboard.SelectOption(nil), options...)
	t.mu.Unlock()
}

// OpenModal returns the view currently open, if any.
func (t *Terminal) OpenModal() (dashboard.ModalView, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.modal == nil {
		return dashboard.ModalView{}, false
	}
	return *t.modal, true
}

// Saving reports whether a save is pending.
func (t *Terminal) Saving() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saving
}

// CollectForm prompts for every field of view, offering its current values as
// defaults. The client question is asked only when assignment options exist.
func (t *Terminal) CollectForm(ctx context.Context, view dashboard.ModalView) (appointment.Form, error) {
	form := view.Form
	var err error
	if form.PatientName, err = t.driver.Input(ctx, InputConfig{Message: "Nombre del paciente", Default: form.PatientName}); err != nil {
		return form, err
	}
	if form.Start, err = t.driver.Input(ctx, InputConfig{Message: "Inicio (AAAA-MM-DDTHH:MM)", Default: form.Start}); err != nil {
		return form, err
	}
	if form.End, err = t.driver.Input(ctx, InputConfig{Message: "Fin (AAAA-MM-DDTHH:MM)", Default: form.End}); err != nil {
		return form, err
	}
	if form.Notes, err = t.driver.TextArea(ctx, TextAreaConfig{Message: "Notas", Default: form.Notes}); err != nil {
		return form, err
	}

	t.mu.Lock()
	options := append([]dashboard.SelectOption(nil), t.options...)
	t.mu.Unlock()
	if len(options) == 0 {
		return form, nil
	}
	labels := make([]string, len(options))
	current := 0
	for i, option := range options {
		labels[i] = option.Label
		if option.Value == form.ClientID {
			current = i
		}
	}
	idx, err := t.driver.Select(ctx, SelectConfig{Message: "Cliente", Options: labels, DefaultIndex: current})
	if err != nil {
		return form, err
	}
	if idx >= 0 && idx < len(options) {
		form.ClientID = options[idx].Value
	}
	return form, nil
}

// Notify implements dashboard.Notifier.
func (t *Terminal) Notify(n dashboard.Notification) {
	t.info(t.prefix(n.Level) + " " + n.Message)
}

func (t *Terminal) prefix(level dashboard.Level) string {
	switch level {
	case dashboard.LevelSuccess:
		return t.theme.SuccessPrefix
	case dashboard.LevelDanger:
		return t.theme.DangerPrefix
	case dashboard.LevelWarning:
		return t.theme.WarningPrefix
	default:
		return t.theme.InfoPrefix
	}
}

// Confirm implements dashboard.Prompter. An interrupted prompt counts as a
// refusal.
func (t *Terminal) Confirm(ctx context.Context, message string) (bool, error) {
	ok, err := t.driver.Confirm(ctx, ConfirmConfig{Message: message})
	if errors.Is(err, ErrAborted) {
		return false, nil
	}
	return ok, err
}

// Prompt implements dashboard.Prompter. Interrupting the prompt dismisses it;
// an empty answer is still an answer.
func (t *Terminal) Prompt(ctx context.Context, message string) (string, bool, error) {
	answer, err := t.driver.Input(ctx, InputConfig{Message: message})
	if errors.Is(err, ErrAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}

// ShowLoading implements dashboard.ListView.
func (t *Terminal) ShowLoading(message string) {}

// ShowRows implements dashboard.ListView.
func (t *Terminal) ShowRows(rows []dashboard.ListRow) {
	t.mu.Lock()
	t.rows = append([]dashboard.ListRow(nil), rows...)
	t.mu.Unlock()
	for _, row := range rows {
		t.info(RowLabel(row))
	}
}

// ShowEmpty implements dashboard.ListView.
func (t *Terminal) ShowEmpty(message string) {
	t.mu.Lock()
	t.rows = nil
	t.mu.Unlock()
	t.info(message)
}

// ShowError implements dashboard.ListView.
func (t *Terminal) ShowError(message string) {
	t.info(t.theme.DangerPrefix + " " + message)
}

// Rows returns the rows of the last list refresh.
func (t *Terminal) Rows() []dashboard.ListRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]dashboard.ListRow(nil), t.rows...)
}

// RowLabel renders one list line.
func RowLabel(row dashboard.ListRow) string {
	label := fmt.Sprintf("#%s %s %s %s [%s]", row.ID, row.Date, row.Time, row.Title, row.StatusLabel)
	if row.Client != "" {
		label += " " + row.Client
	}
	return label
}

// History returns the cancelled-history port.
func (t *Terminal) History() dashboard.HistoryView { return historyView{t} }

// SetHistoryVisible toggles the cancelled-history panel.
func (t *Terminal) SetHistoryVisible(visible bool) {
	t.mu.Lock()
	t.historyVisible = visible
	t.mu.Unlock()
}

type historyView struct{ t *Terminal }

func (h historyView) Visible() bool {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	return h.t.historyVisible
}

func (h historyView) ShowLoading(string) {}

func (h historyView) ShowRows(rows []dashboard.HistoryRow) {
	h.t.info("== Historial de cancelaciones ==")
	for _, row := range rows {
		line := fmt.Sprintf("#%s %s programada %s, cancelada %s", row.ID, row.PatientName, row.Scheduled, row.CancelledAt)
		if row.Reason != "" {
			line += ": " + row.Reason
		}
		h.t.info(line)
	}
}

func (h historyView) ShowEmpty(message string) {
	h.t.info(message)
}

func (h historyView) ShowError(message string) {
	h.t.info(h.t.theme.DangerPrefix + " " + message)
}

// ShowStats implements dashboard.StatsView. With a counter output configured
// each value counts up from zero before the summary line is printed.
func (t *Terminal) ShowStats(cards []dashboard.StatCard) {
	if t.counterOut != nil {
		for _, card := range cards {
			err := dashboard.Animate(context.Background(), card.Value, t.counterInterval, func(v int) {
				fmt.Fprintf(t.counterOut, "\r%s: %d", card.Label, v)
			})
			if err != nil {
				t.logger.Warn("counter animation stopped", zap.Error(err))
			}
			fmt.Fprintln(t.counterOut)
		}
	}
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = fmt.Sprintf("%s: %d", card.Label, card.Value)
	}
	t.info(strings.Join(parts, " | "))
}

var (
	_ dashboard.Calendar  = (*Terminal)(nil)
	_ dashboard.Modal     = (*Terminal)(nil)
	_ dashboard.Notifier  = (*Terminal)(nil)
	_ dashboard.Prompter  = (*Terminal)(nil)
	_ dashboard.ListView  = (*Terminal)(nil)
	_ dashboard.StatsView = (*Terminal)(nil)
)
