// Package alerts provides status lines for operator-facing output.
package alerts

import "fmt"

// Alert is one status line with optional indented details and a cause.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

func newAlert(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewError creates an error alert.
func NewError(message string) *Alert { return newAlert(LevelError, message) }

// NewWarning creates a warning alert.
func NewWarning(message string) *Alert { return newAlert(LevelWarning, message) }

// NewInfo creates an info alert.
func NewInfo(message string) *Alert { return newAlert(LevelInfo, message) }

// NewSuccess creates a success alert.
func NewSuccess(message string) *Alert { return newAlert(LevelSuccess, message) }

// Errorf creates an error alert with a formatted message.
func Errorf(format string, args ...any) *Alert {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError records the cause, printed after the message.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails appends lines printed under the message.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert as one line: icon, message and cause.
func (a *Alert) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s %s: %v", a.Level.Icon(), a.Message, a.Err)
	}
	return a.Level.Icon() + " " + a.Message
}

// Writer handles alert output.
type Writer interface {
	WriteAlert(alert *Alert) error
}
