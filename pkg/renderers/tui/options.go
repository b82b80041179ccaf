package tui

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/logger"
)

// Theme captures the prefixes printed in front of messages.
type Theme struct {
	SuccessPrefix string
	DangerPrefix  string
	WarningPrefix string
	InfoPrefix    string
}

// DefaultTheme is used when WithTheme is not given.
var DefaultTheme = Theme{
	SuccessPrefix: "[ok]",
	DangerPrefix:  "[error]",
	WarningPrefix: "[aviso]",
	InfoPrefix:    "[info]",
}

// Option configures the terminal frontend.
type Option func(*Terminal)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(t *Terminal) {
		if driver != nil {
			t.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(t *Terminal) {
		t.theme = theme
	}
}

// WithCounterOutput enables the statistics count-up animation, drawing frames
// on w every interval.
func WithCounterOutput(w io.Writer, interval time.Duration) Option {
	return func(t *Terminal) {
		t.counterOut = w
		t.counterInterval = interval
	}
}

// WithHistoryVisible shows the cancelled-history panel from the start.
func WithHistoryVisible(visible bool) Option {
	return func(t *Terminal) {
		t.historyVisible = visible
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Terminal) {
		t.logger = logger.OrNop(l)
	}
}
