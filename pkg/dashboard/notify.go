package dashboard

import (
	"time"
	"unicode/utf8"
)

// Level is the styling of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelDanger  Level = "danger"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

const (
	shortToast       = 3 * time.Second
	longToast        = 6 * time.Second
	longToastMinimum = 100
)

// Notification is a transient toast.
type Notification struct {
	Message  string
	Level    Level
	Duration time.Duration
}

// NewNotification builds a toast; long messages stay on screen longer.
func NewNotification(message string, level Level) Notification {
	duration := shortToast
	if utf8.RuneCountInString(message) > longToastMinimum {
		duration = longToast
	}
	if level == "" {
		level = LevelInfo
	}
	return Notification{Message: message, Level: level, Duration: duration}
}
