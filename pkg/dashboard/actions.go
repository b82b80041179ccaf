package dashboard

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

// Complete marks an appointment completed after confirmation. The dedicated
// endpoint is used instead of a full update so fields the viewer cannot see
// are left untouched.
func (c *Controller) Complete(ctx context.Context, id appointment.ID) error {
	key := actionKey("complete", id)
	if !c.state.begin(key) {
		return ErrInFlight
	}
	defer c.state.end(key)

	if err := c.confirm(ctx, MsgConfirmComplete); err != nil {
		return err
	}

	if _, err := c.backend.Complete(ctx, id); err != nil {
		c.logger.Error("complete appointment", zap.Int64("id", int64(id)), zap.Error(err))
		c.notifyFailure(err, MsgCompleteFailed, LevelDanger)
		return err
	}

	c.refreshViews(ctx, false)
	c.notify(MsgCompleted, LevelSuccess)
	return nil
}

// Cancel asks for a reason and cancels the appointment. Dismissing the prompt
// aborts; an empty answer proceeds with DefaultCancelReason.
func (c *Controller) Cancel(ctx context.Context, id appointment.ID, label string) error {
	key := actionKey("cancel", id)
	if !c.state.begin(key) {
		return ErrInFlight
	}
	defer c.state.end(key)

	if c.prompter == nil {
		c.logger.Warn("cancel requested without a prompter")
		return ErrDismissed
	}
	reason, ok, err := c.prompter.Prompt(ctx, fmt.Sprintf(MsgCancelPromptFmt, label))
	if err != nil {
		return err
	}
	if !ok {
		return ErrDismissed
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancelReason
	}

	if _, err := c.backend.Cancel(ctx, id, reason); err != nil {
		c.logger.Error("cancel appointment", zap.Int64("id", int64(id)), zap.Error(err))
		c.notifyFailure(err, MsgCancelFailed, LevelDanger)
		return err
	}

	c.refreshViews(ctx, true)
	c.notify(MsgCancelled, LevelSuccess)
	return nil
}
