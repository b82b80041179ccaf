// Package agenda wires the appointment dashboard from a loaded configuration:
// the REST client, the controller and one of the two frontends.
package agenda

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/internal/config"
	"github.com/goliatone/go-agenda/pkg/api"
	"github.com/goliatone/go-agenda/pkg/dashboard"
	"github.com/goliatone/go-agenda/pkg/logger"
	"github.com/goliatone/go-agenda/pkg/panels"
	"github.com/goliatone/go-agenda/pkg/renderers/tui"
)

// Config is the loaded client configuration.
type Config = config.Config

// ConfigOption configures LoadConfig.
type ConfigOption = config.Option

// LoadConfig reads and validates the configuration.
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	return config.Load(opts...)
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	return logger.New(logger.Options{Level: cfg.LogLevel, Environment: cfg.Environment})
}

// NewClient builds the REST client described by cfg.
func NewClient(cfg *Config, log *zap.Logger) (*api.Client, error) {
	return api.New(api.Config{
		BaseURL:       cfg.BaseURL,
		Token:         cfg.Token,
		SessionCookie: cfg.SessionCookie,
		Timeout:       cfg.Timeout(),
		Logger:        log,
	})
}

// NewController builds a controller over backend using the role, timezone
// and range filter of cfg. Extra options attach the views.
func NewController(cfg *Config, backend dashboard.Backend, log *zap.Logger, opts ...dashboard.Option) (*dashboard.Controller, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	base := []dashboard.Option{
		dashboard.WithLocation(loc),
		dashboard.WithLogger(log),
		dashboard.WithRangeFilter(cfg.RangeFilter),
	}
	return dashboard.New(backend, cfg.ViewerRole(), append(base, opts...)...)
}

// NewTerminalSession builds the interactive frontend. Stats count up on
// counterOut when it is not nil.
func NewTerminalSession(cfg *Config, backend dashboard.Backend, log *zap.Logger, counterOut io.Writer, opts ...tui.Option) (*tui.Session, error) {
	base := []tui.Option{
		tui.WithLogger(log),
		tui.WithHistoryVisible(cfg.ShowHistory),
	}
	if counterOut != nil {
		base = append(base, tui.WithCounterOutput(counterOut, 0))
	}
	term := tui.New(append(base, opts...)...)

	ctrl, err := NewController(cfg, backend, log,
		dashboard.WithCalendar(term),
		dashboard.WithModal(term),
		dashboard.WithNotifier(term),
		dashboard.WithPrompter(term),
		dashboard.WithListView(term),
		dashboard.WithHistoryView(term.History()),
		dashboard.WithStatsView(term),
	)
	if err != nil {
		return nil, err
	}
	return tui.NewSession(ctrl, term), nil
}

// NewHTMLDashboard builds the HTML panel document and a controller that
// renders into it. Prompts are answered by prompter, which may be nil when
// the caller only needs read flows.
func NewHTMLDashboard(cfg *Config, backend dashboard.Backend, log *zap.Logger, prompter dashboard.Prompter) (*panels.Document, *dashboard.Controller, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	doc, err := panels.NewDocument(
		panels.WithTheme(panels.Manifest(), cfg.ThemeVariant),
		panels.WithHistoryVisible(cfg.ShowHistory),
		panels.WithLocation(loc),
		panels.WithLogger(log),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("agenda: build panels: %w", err)
	}

	opts := []dashboard.Option{
		dashboard.WithCalendar(doc.Calendar()),
		dashboard.WithModal(doc.Modal()),
		dashboard.WithNotifier(doc),
		dashboard.WithListView(doc.List()),
		dashboard.WithHistoryView(doc.History()),
		dashboard.WithStatsView(doc.Stats()),
	}
	if prompter != nil {
		opts = append(opts, dashboard.WithPrompter(prompter))
	}
	ctrl, err := NewController(cfg, backend, log, opts...)
	if err != nil {
		return nil, nil, err
	}
	return doc, ctrl, nil
}
