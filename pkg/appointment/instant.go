package appointment

import (
	"fmt"
	"strings"
	"time"
)

const (
	// ISOLayout is the wire format for instants sent to the server: UTC with
	// millisecond precision.
	ISOLayout = "2006-01-02T15:04:05.000Z"
	// LocalLayout is the form-field format (minute precision, no zone).
	LocalLayout = "2006-01-02T15:04"
)

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// Fractional seconds after the seconds field are accepted by time.Parse even
// when the layout does not mention them.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	LocalLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// InstantError reports a value that could not be read as an instant.
type InstantError struct {
	Value string
}

func (e *InstantError) Error() string {
	return fmt.Sprintf("appointment: invalid instant %q", e.Value)
}

// ParseInstant reads an instant as produced by the backend or a form field.
// Values without a zone are interpreted in loc (UTC when loc is nil).
func ParseInstant(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, &InstantError{Value: raw}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InstantError{Value: raw}
}

// FormatISO renders t in the wire format.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// FormatLocal renders t as a form-field value in loc.
func FormatLocal(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(LocalLayout)
}
