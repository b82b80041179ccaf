package dashboard

import (
	"context"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

// Backend is the remote appointment collection. *api.Client satisfies it.
type Backend interface {
	ListAppointments(ctx context.Context, window *appointment.Range) ([]appointment.Event, error)
	ListCancelled(ctx context.Context) ([]appointment.Cancelled, error)
	ListClients(ctx context.Context) ([]appointment.Client, error)
	Stats(ctx context.Context) (appointment.Stats, error)
	Create(ctx context.Context, req appointment.SaveRequest) (appointment.MessageResponse, error)
	Update(ctx context.Context, id appointment.ID, req appointment.SaveRequest) (appointment.MessageResponse, error)
	Delete(ctx context.Context, id appointment.ID) (appointment.MessageResponse, error)
	Complete(ctx context.Context, id appointment.ID) (appointment.MessageResponse, error)
	Cancel(ctx context.Context, id appointment.ID, reason string) (appointment.MessageResponse, error)
}

// Calendar is the calendar widget. It receives the full event list whenever the
// controller re-reads the collection.
type Calendar interface {
	SetEvents(events []appointment.Event)
}

// ModalMode distinguishes the create and edit flows of the modal.
type ModalMode string

const (
	ModeCreate ModalMode = "create"
	ModeEdit   ModalMode = "edit"
)

// ModalView is what the modal shows when opened.
type ModalView struct {
	Mode       ModalMode
	Title      string
	ID         appointment.ID
	Form       appointment.Form
	ShowDelete bool
}

// SelectOption is an entry of the client assignment dropdown.
type SelectOption struct {
	Value string
	Label string
}

// Modal is the create/edit dialog.
type Modal interface {
	Show(view ModalView)
	Hide()
	// SetSaving toggles the pending state of the save action.
	SetSaving(saving bool)
	SetClientOptions(options []SelectOption)
}

// Notifier shows toasts.
type Notifier interface {
	Notify(n Notification)
}

// Prompter asks blocking questions.
type Prompter interface {
	Confirm(ctx context.Context, message string) (bool, error)
	// Prompt returns ok=false when the user dismissed the prompt entirely.
	Prompt(ctx context.Context, message string) (answer string, ok bool, err error)
}

// ListRow is one entry of the appointment list.
type ListRow struct {
	ID          appointment.ID
	Title       string
	Date        string
	Time        string
	Client      string
	Status      appointment.Status
	StatusLabel string
	Completed   bool
	CanComplete bool
	CanCancel   bool
}

// ListView is the appointment list container.
type ListView interface {
	ShowLoading(message string)
	ShowRows(rows []ListRow)
	ShowEmpty(message string)
	ShowError(message string)
}

// HistoryRow is one entry of the cancelled-history panel.
type HistoryRow struct {
	ID          appointment.ID
	PatientName string
	Scheduled   string
	CancelledAt string
	Reason      string
}

// HistoryView is the cancelled-history container. Hidden panels are not
// refreshed.
type HistoryView interface {
	Visible() bool
	ShowLoading(message string)
	ShowRows(rows []HistoryRow)
	ShowEmpty(message string)
	ShowError(message string)
}

// StatCard is one counter of the statistics panel.
type StatCard struct {
	Label string
	Value int
}

// StatsView is the statistics panel.
type StatsView interface {
	ShowStats(cards []StatCard)
}
