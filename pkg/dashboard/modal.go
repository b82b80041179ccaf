package dashboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

// OpenCreate starts a creation flow prefilled with the given instants. The
// current appointment is cleared first so the save cannot be routed to an
// update of whatever was open before.
func (c *Controller) OpenCreate(start, end time.Time) {
	c.state.clearCurrent()
	if c.modal == nil {
		return
	}
	c.modal.Show(ModalView{
		Mode:  ModeCreate,
		Title: TitleCreate,
		Form: appointment.Form{
			Start: appointment.FormatLocal(start, c.loc),
			End:   appointment.FormatLocal(end, c.loc),
		},
	})
}

// OpenNew starts a creation flow for the next hour.
func (c *Controller) OpenNew() {
	now := c.now()
	c.OpenCreate(now, now.Add(time.Hour))
}

// OpenEdit opens an existing event in the modal and makes it current.
func (c *Controller) OpenEdit(event appointment.Event) error {
	form, err := appointment.FormFromEvent(event, c.loc)
	if err != nil {
		c.logger.Error("open appointment", zap.Int64("id", int64(event.ID)), zap.Error(err))
		c.notify(MsgOpenFailed, LevelDanger)
		return err
	}
	c.state.setCurrent(event.ID)
	if c.modal == nil {
		return nil
	}
	c.modal.Show(ModalView{
		Mode:       ModeEdit,
		Title:      TitleEdit,
		ID:         event.ID,
		Form:       form,
		ShowDelete: c.role.IsAdmin(),
	})
	return nil
}

// Save validates the form and creates or updates the current appointment.
// Validation failures send nothing.
func (c *Controller) Save(ctx context.Context, form appointment.Form) error {
	if !c.state.begin(actionSave) {
		return ErrInFlight
	}
	defer c.state.end(actionSave)

	req, err := form.Validate(c.loc)
	if err != nil {
		var verr *appointment.ValidationError
		if errors.As(err, &verr) {
			c.notify(verr.Message, LevelWarning)
		}
		return err
	}

	c.setSaving(true)
	defer c.setSaving(false)

	var resp appointment.MessageResponse
	id, editing := c.state.CurrentID()
	if editing {
		resp, err = c.backend.Update(ctx, id, req)
	} else {
		resp, err = c.backend.Create(ctx, req)
	}
	if err != nil {
		c.logger.Error("save appointment", zap.Bool("editing", editing), zap.Int64("id", int64(id)), zap.Error(err))
		c.notifyFailure(err, MsgSaveFailed, LevelWarning)
		return err
	}

	c.hideModal()
	c.state.clearCurrent()
	c.refreshViews(ctx, true)
	c.notify(messageOr(resp.Message, MsgSaved), LevelSuccess)
	return nil
}

// Delete permanently removes the current appointment after confirmation.
func (c *Controller) Delete(ctx context.Context) error {
	if !c.role.IsAdmin() {
		return ErrNotAllowed
	}
	id, ok := c.state.CurrentID()
	if !ok {
		return ErrNoSelection
	}
	key := actionKey("delete", id)
	if !c.state.begin(key) {
		return ErrInFlight
	}
	defer c.state.end(key)

	if err := c.confirm(ctx, MsgConfirmDelete); err != nil {
		return err
	}

	resp, err := c.backend.Delete(ctx, id)
	if err != nil {
		c.logger.Error("delete appointment", zap.Int64("id", int64(id)), zap.Error(err))
		c.notifyFailure(err, MsgDeleteFailed, LevelDanger)
		return err
	}

	c.hideModal()
	c.state.clearCurrent()
	c.refreshViews(ctx, true)
	c.notify(messageOr(resp.Message, MsgDeleted), LevelSuccess)
	return nil
}

func (c *Controller) setSaving(saving bool) {
	if c.modal != nil {
		c.modal.SetSaving(saving)
	}
}

func (c *Controller) hideModal() {
	if c.modal != nil {
		c.modal.Hide()
	}
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
