package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/api"
	"github.com/goliatone/go-agenda/pkg/appointment"
)

// Events is the calendar's event source. The window is forwarded to the
// backend only when range filtering is enabled.
func (c *Controller) Events(ctx context.Context, window appointment.Range) ([]appointment.Event, error) {
	var filter *appointment.Range
	if c.rangeFilter && !window.Empty() {
		filter = &window
	}
	events, err := c.backend.ListAppointments(ctx, filter)
	if err != nil {
		c.logger.Error("fetch appointments", zap.Error(err))
		c.notify(MsgLoadFailed, LevelDanger)
		return nil, err
	}
	return events, nil
}

// SetVisibleRange records the calendar's window and reloads its events.
func (c *Controller) SetVisibleRange(ctx context.Context, window appointment.Range) error {
	c.state.setWindow(window)
	return c.RefetchEvents(ctx)
}

// RefetchEvents replaces the calendar's events with a fresh fetch. On failure
// the calendar keeps what it had.
func (c *Controller) RefetchEvents(ctx context.Context) error {
	events, err := c.Events(ctx, c.state.Window())
	if err != nil {
		return err
	}
	if c.calendar != nil {
		c.calendar.SetEvents(events)
	}
	return nil
}

// Select handles a range selection on the calendar.
func (c *Controller) Select(ctx context.Context, window appointment.Range) error {
	if !c.role.CanSchedule() {
		c.notify(MsgCreateNotAllowed, LevelWarning)
		return ErrNotAllowed
	}
	c.OpenCreate(window.Start, window.End)
	return nil
}

// EventClick opens the clicked event for editing.
func (c *Controller) EventClick(ctx context.Context, event appointment.Event) error {
	return c.OpenEdit(event)
}

// EventDrop persists an event the widget already moved.
func (c *Controller) EventDrop(ctx context.Context, event appointment.Event) error {
	return c.reschedule(ctx, event)
}

// EventResize persists an event the widget already resized.
func (c *Controller) EventResize(ctx context.Context, event appointment.Event) error {
	return c.reschedule(ctx, event)
}

// reschedule never trusts the widget's local move: any failure, including a
// move dropped while the previous one is pending, reloads the calendar from
// the server.
func (c *Controller) reschedule(ctx context.Context, event appointment.Event) error {
	key := actionKey("reschedule", event.ID)
	if !c.state.begin(key) {
		c.notify(MsgRescheduleBusy, LevelInfo)
		_ = c.RefetchEvents(ctx)
		return ErrInFlight
	}
	defer c.state.end(key)

	req, err := appointment.RescheduleRequest(event, c.loc)
	if err != nil {
		c.logger.Error("reschedule: read event", zap.Int64("id", int64(event.ID)), zap.Error(err))
		c.notify(MsgUpdateFailed, LevelDanger)
		_ = c.RefetchEvents(ctx)
		return err
	}

	if _, err := c.backend.Update(ctx, event.ID, req); err != nil {
		c.logger.Error("reschedule appointment", zap.Int64("id", int64(event.ID)), zap.Error(err))
		_ = c.RefetchEvents(ctx)
		if api.IsOverlapConflict(err) {
			msg, _ := api.ServerMessage(err)
			c.notify(OverlapPrefix+msg, LevelDanger)
		} else {
			c.notify(MsgUpdateFailed, LevelDanger)
		}
		return err
	}

	c.notify(MsgRescheduled, LevelSuccess)
	c.refreshViews(ctx, true)
	return nil
}
