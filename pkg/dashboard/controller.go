package dashboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/api"
	"github.com/goliatone/go-agenda/pkg/appointment"
	"github.com/goliatone/go-agenda/pkg/logger"
)

// Controller keeps the dashboard views consistent with the remote collection.
type Controller struct {
	backend     Backend
	role        appointment.Role
	loc         *time.Location
	state       *ViewState
	logger      *zap.Logger
	now         func() time.Time
	rangeFilter bool

	calendar Calendar
	modal    Modal
	notifier Notifier
	prompter Prompter
	list     ListView
	history  HistoryView
	stats    StatsView
}

// Option configures a Controller.
type Option func(*Controller)

// WithCalendar attaches the calendar widget.
func WithCalendar(calendar Calendar) Option {
	return func(c *Controller) {
		c.calendar = calendar
	}
}

// WithModal attaches the create/edit modal.
func WithModal(modal Modal) Option {
	return func(c *Controller) {
		c.modal = modal
	}
}

// WithNotifier attaches the toast sink.
func WithNotifier(notifier Notifier) Option {
	return func(c *Controller) {
		c.notifier = notifier
	}
}

// WithPrompter attaches the confirmation/prompt provider. Without one, every
// confirmation counts as declined.
func WithPrompter(prompter Prompter) Option {
	return func(c *Controller) {
		c.prompter = prompter
	}
}

// WithListView attaches the appointment list panel.
func WithListView(view ListView) Option {
	return func(c *Controller) {
		c.list = view
	}
}

// WithHistoryView attaches the cancelled-history panel.
func WithHistoryView(view HistoryView) Option {
	return func(c *Controller) {
		c.history = view
	}
}

// WithStatsView attaches the statistics panel.
func WithStatsView(view StatsView) Option {
	return func(c *Controller) {
		c.stats = view
	}
}

// WithLocation sets the zone used for form fields and zone-less instants.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.OrNop(l)
	}
}

// WithClock overrides the clock used by OpenNew.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRangeFilter sends the calendar's visible window with every event fetch.
func WithRangeFilter(enabled bool) Option {
	return func(c *Controller) {
		c.rangeFilter = enabled
	}
}

// New builds a controller for a viewer with the given role.
func New(backend Backend, role appointment.Role, opts ...Option) (*Controller, error) {
	if backend == nil {
		return nil, errors.New("dashboard: backend is required")
	}
	c := &Controller{
		backend: backend,
		role:    role,
		loc:     time.UTC,
		state:   NewViewState(),
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Role returns the viewer's role.
func (c *Controller) Role() appointment.Role {
	return c.role
}

// Location returns the dashboard zone.
func (c *Controller) Location() *time.Location {
	return c.loc
}

// State exposes the view state for inspection.
func (c *Controller) State() *ViewState {
	return c.state
}

// Bootstrap loads every view, as on page start.
func (c *Controller) Bootstrap(ctx context.Context) error {
	return errors.Join(
		c.RefetchEvents(ctx),
		c.LoadStatistics(ctx),
		c.LoadClients(ctx),
		c.LoadList(ctx),
		c.LoadCancelled(ctx),
	)
}

// refreshViews re-reads server truth into the calendar, statistics and list,
// plus the cancelled history when withHistory is set and the panel is visible.
// Failures are reported by each loader and do not stop the others.
func (c *Controller) refreshViews(ctx context.Context, withHistory bool) {
	_ = c.RefetchEvents(ctx)
	_ = c.LoadStatistics(ctx)
	_ = c.LoadList(ctx)
	if withHistory {
		_ = c.LoadCancelled(ctx)
	}
}

func (c *Controller) notify(message string, level Level) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(NewNotification(message, level))
}

// notifyFailure surfaces a mutation failure: overlap conflicts are emphasised,
// other structured rejections are shown verbatim with structuredLevel, and
// anything else falls back to the generic text.
func (c *Controller) notifyFailure(err error, generic string, structuredLevel Level) {
	if msg, ok := api.ServerMessage(err); ok {
		if api.IsOverlapConflict(err) {
			c.notify(OverlapPrefix+msg, LevelDanger)
			return
		}
		c.notify(msg, structuredLevel)
		return
	}
	c.notify(generic, LevelDanger)
}

func (c *Controller) confirm(ctx context.Context, message string) error {
	if c.prompter == nil {
		c.logger.Warn("confirmation requested without a prompter")
		return ErrDismissed
	}
	ok, err := c.prompter.Confirm(ctx, message)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDismissed
	}
	return nil
}
