package dashboard

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

const (
	rowDateLayout = "2/1/2006"
	rowTimeLayout = "15:04"
)

// LoadClients fills the modal's assignment dropdown. Only schedulers see it;
// failures are logged and leave the dropdown untouched.
func (c *Controller) LoadClients(ctx context.Context) error {
	if !c.role.CanSchedule() || c.modal == nil {
		return nil
	}
	clients, err := c.backend.ListClients(ctx)
	if err != nil {
		c.logger.Error("load clients", zap.Error(err))
		return err
	}
	c.modal.SetClientOptions(ClientOptions(clients))
	return nil
}

// ClientOptions builds the dropdown entries, led by the unassigned option.
func ClientOptions(clients []appointment.Client) []SelectOption {
	options := make([]SelectOption, 0, len(clients)+1)
	options = append(options, SelectOption{Value: "", Label: UnassignedClientText})
	for _, client := range clients {
		options = append(options, SelectOption{
			Value: strconv.FormatInt(client.ID, 10),
			Label: client.Label(),
		})
	}
	return options
}

// LoadList renders the appointment list for schedulers.
func (c *Controller) LoadList(ctx context.Context) error {
	if !c.role.CanSchedule() || c.list == nil {
		return nil
	}
	c.list.ShowLoading(MsgLoading)

	events, err := c.backend.ListAppointments(ctx, nil)
	if err != nil {
		c.logger.Error("load appointment list", zap.Error(err))
		c.list.ShowError(MsgListFailed)
		return err
	}
	if len(events) == 0 {
		c.list.ShowEmpty(MsgNoAppointments)
		return nil
	}
	c.list.ShowRows(ListRows(events, c.loc))
	return nil
}

// ListRows maps events to list entries in loc. Events whose start cannot be
// read keep empty date and time columns.
func ListRows(events []appointment.Event, loc *time.Location) []ListRow {
	rows := make([]ListRow, 0, len(events))
	for _, event := range events {
		row := ListRow{
			ID:          event.ID,
			Title:       event.Title,
			Client:      event.ClientLabel(),
			Status:      event.ExtendedProps.Status.Normalize(),
			StatusLabel: strings.ToUpper(string(event.ExtendedProps.Status)),
			Completed:   event.ExtendedProps.Status.Is(appointment.StatusCompleted),
			CanComplete: event.Completable(),
			CanCancel:   event.Cancellable(),
		}
		if start, err := appointment.ParseInstant(event.Start, loc); err == nil {
			start = start.In(loc)
			row.Date = start.Format(rowDateLayout)
			row.Time = start.Format(rowTimeLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

// LoadCancelled renders the cancelled history when its panel is visible.
func (c *Controller) LoadCancelled(ctx context.Context) error {
	if !c.role.CanSchedule() || c.history == nil || !c.history.Visible() {
		return nil
	}
	c.history.ShowLoading(MsgLoading)

	cancelled, err := c.backend.ListCancelled(ctx)
	if err != nil {
		c.logger.Error("load cancelled appointments", zap.Error(err))
		c.history.ShowError(MsgHistoryFailed)
		return err
	}
	if len(cancelled) == 0 {
		c.history.ShowEmpty(MsgNoCancelled)
		return nil
	}
	c.history.ShowRows(HistoryRows(cancelled, c.loc))
	return nil
}

// HistoryRows maps cancelled appointments to history entries in loc.
func HistoryRows(cancelled []appointment.Cancelled, loc *time.Location) []HistoryRow {
	rows := make([]HistoryRow, 0, len(cancelled))
	for _, item := range cancelled {
		rows = append(rows, HistoryRow{
			ID:          item.ID,
			PatientName: item.PatientName,
			Scheduled:   displayInstant(item.StartDatetime, loc),
			CancelledAt: displayInstant(item.CancelledAt, loc),
			Reason:      strings.TrimSpace(item.CancellationReason),
		})
	}
	return rows
}

func displayInstant(raw string, loc *time.Location) string {
	t, err := appointment.ParseInstant(raw, loc)
	if err != nil {
		return raw
	}
	return t.In(loc).Format(rowDateLayout + " " + rowTimeLayout)
}
