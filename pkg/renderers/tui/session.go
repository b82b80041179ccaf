package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/appointment"
	"github.com/goliatone/go-agenda/pkg/dashboard"
)

// Action is a menu entry of the interactive session.
type Action string

const (
	ActionCalendar   Action = "Ver calendario"
	ActionRefresh    Action = "Actualizar"
	ActionCreate     Action = "Nueva cita"
	ActionEdit       Action = "Editar cita"
	ActionReschedule Action = "Mover cita"
	ActionComplete   Action = "Completar cita"
	ActionCancel     Action = "Cancelar cita"
	ActionDelete     Action = "Eliminar cita"
	ActionHistory    Action = "Mostrar/ocultar historial"
	ActionQuit       Action = "Salir"
)

// Actions lists the menu entries offered to role.
func Actions(role appointment.Role) []Action {
	if !role.CanSchedule() {
		return []Action{ActionCalendar, ActionRefresh, ActionQuit}
	}
	actions := []Action{
		ActionCalendar, ActionRefresh, ActionCreate, ActionEdit, ActionReschedule,
		ActionComplete, ActionCancel,
	}
	if role.IsAdmin() {
		actions = append(actions, ActionDelete)
	}
	return append(actions, ActionHistory, ActionQuit)
}

// Session drives a dashboard controller from the terminal menu.
type Session struct {
	ctrl *dashboard.Controller
	term *Terminal
}

// NewSession binds a controller to the terminal it was built with.
func NewSession(ctrl *dashboard.Controller, term *Terminal) *Session {
	return &Session{ctrl: ctrl, term: term}
}

// Run bootstraps the views and serves the menu until the user quits or
// interrupts it. Action failures are reported by the controller and do not end
// the session.
func (s *Session) Run(ctx context.Context) error {
	if err := s.ctrl.Bootstrap(ctx); err != nil {
		s.term.logger.Warn("bootstrap incomplete", zap.Error(err))
	}
	actions := Actions(s.ctrl.Role())
	labels := make([]string, len(actions))
	for i, action := range actions {
		labels[i] = string(action)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx, err := s.term.driver.Select(ctx, SelectConfig{Message: "¿Qué deseas hacer?", Options: labels})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}
		if actions[idx] == ActionQuit {
			return nil
		}
		if err := s.Do(ctx, actions[idx]); err != nil {
			s.term.logger.Debug("menu action ended", zap.String("action", string(actions[idx])), zap.Error(err))
		}
	}
}

// Do performs one menu action.
func (s *Session) Do(ctx context.Context, action Action) error {
	switch action {
	case ActionCalendar:
		s.term.PrintCalendar(s.ctrl.Location())
		return nil
	case ActionRefresh:
		return s.ctrl.Bootstrap(ctx)
	case ActionCreate:
		s.ctrl.OpenNew()
		return s.submitModal(ctx)
	case ActionEdit:
		event, err := s.pickEvent(ctx, "Cita a editar", nil)
		if err != nil {
			return err
		}
		if err := s.ctrl.EventClick(ctx, event); err != nil {
			return err
		}
		return s.submitModal(ctx)
	case ActionReschedule:
		return s.reschedule(ctx)
	case ActionComplete:
		row, err := s.pickRow(ctx, "Cita a completar", func(r dashboard.ListRow) bool { return r.CanComplete })
		if err != nil {
			return err
		}
		return s.ctrl.Complete(ctx, row.ID)
	case ActionCancel:
		row, err := s.pickRow(ctx, "Cita a cancelar", func(r dashboard.ListRow) bool { return r.CanCancel })
		if err != nil {
			return err
		}
		return s.ctrl.Cancel(ctx, row.ID, row.Title)
	case ActionDelete:
		event, err := s.pickEvent(ctx, "Cita a eliminar", nil)
		if err != nil {
			return err
		}
		if err := s.ctrl.EventClick(ctx, event); err != nil {
			return err
		}
		return s.ctrl.Delete(ctx)
	case ActionHistory:
		visible := !s.term.History().Visible()
		s.term.SetHistoryVisible(visible)
		if visible {
			return s.ctrl.LoadCancelled(ctx)
		}
		return nil
	default:
		return nil
	}
}

func (s *Session) submitModal(ctx context.Context) error {
	view, ok := s.term.OpenModal()
	if !ok {
		return nil
	}
	form, err := s.term.CollectForm(ctx, view)
	if err != nil {
		s.term.Hide()
		return err
	}
	return s.ctrl.Save(ctx, form)
}

// reschedule moves an event the way a calendar drag would: the new instants
// are applied locally and the controller persists them.
func (s *Session) reschedule(ctx context.Context) error {
	event, err := s.pickEvent(ctx, "Cita a mover", func(e appointment.Event) bool { return e.Schedulable() })
	if err != nil {
		return err
	}
	loc := s.ctrl.Location()
	form, err := appointment.FormFromEvent(event, loc)
	if err != nil {
		return err
	}
	start, err := s.term.driver.Input(ctx, InputConfig{Message: "Nuevo inicio (AAAA-MM-DDTHH:MM)", Default: form.Start})
	if err != nil {
		return err
	}
	end, err := s.term.driver.Input(ctx, InputConfig{Message: "Nuevo fin (AAAA-MM-DDTHH:MM)", Default: form.End})
	if err != nil {
		return err
	}
	moved, err := movedEvent(event, start, end, loc)
	if err != nil {
		s.term.Notify(dashboard.NewNotification(dashboard.MsgUpdateFailed, dashboard.LevelDanger))
		return err
	}
	return s.ctrl.EventDrop(ctx, moved)
}

func movedEvent(event appointment.Event, start, end string, loc *time.Location) (appointment.Event, error) {
	from, err := appointment.ParseInstant(start, loc)
	if err != nil {
		return event, err
	}
	to, err := appointment.ParseInstant(end, loc)
	if err != nil {
		return event, err
	}
	event.Start = appointment.FormatISO(from)
	event.End = appointment.FormatISO(to)
	return event, nil
}

func (s *Session) pickEvent(ctx context.Context, message string, keep func(appointment.Event) bool) (appointment.Event, error) {
	loc := s.ctrl.Location()
	var candidates []appointment.Event
	var labels []string
	for _, event := range s.term.Events() {
		if keep != nil && !keep(event) {
			continue
		}
		candidates = append(candidates, event)
		labels = append(labels, EventLabel(event, loc))
	}
	idx, err := s.pick(ctx, message, labels)
	if err != nil {
		return appointment.Event{}, err
	}
	return candidates[idx], nil
}

func (s *Session) pickRow(ctx context.Context, message string, keep func(dashboard.ListRow) bool) (dashboard.ListRow, error) {
	var candidates []dashboard.ListRow
	var labels []string
	for _, row := range s.term.Rows() {
		if !keep(row) {
			continue
		}
		candidates = append(candidates, row)
		labels = append(labels, RowLabel(row))
	}
	idx, err := s.pick(ctx, message, labels)
	if err != nil {
		return dashboard.ListRow{}, err
	}
	return candidates[idx], nil
}

func (s *Session) pick(ctx context.Context, message string, labels []string) (int, error) {
	if len(labels) == 0 {
		s.term.info(dashboard.MsgNoAppointments)
		return -1, ErrNothingToSelect
	}
	idx, err := s.term.driver.Select(ctx, SelectConfig{Message: message, Options: labels, PageSize: 10})
	if err != nil {
		return -1, err
	}
	if idx < 0 || idx >= len(labels) {
		return -1, errors.New("tui: selection out of range: " + strconv.Itoa(idx))
	}
	return idx, nil
}
