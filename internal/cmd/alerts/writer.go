package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/usersweep/internal/cmd/output"
)

// FormatWriter writes alerts in the format chosen for command output, so
// status lines of a JSON run stay machine readable.
type FormatWriter struct {
	writer io.Writer
	format output.Format
	color  bool
}

// NewFormatWriter creates a new FormatWriter for the specified format.
// Color is enabled when w is a terminal.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{
		writer: w,
		format: format,
		color:  isTerminal(w),
	}
}

// WithColor forces color on or off.
func (fw *FormatWriter) WithColor(enabled bool) *FormatWriter {
	fw.color = enabled
	return fw
}

// alertData represents alert data for structured output.
type alertData struct {
	Level   string   `json:"level" yaml:"level"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// WriteAlert writes an alert in the configured format.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	switch fw.format {
	case output.FormatJSON, output.FormatYAML:
		data := alertData{
			Level:   alert.Level.String(),
			Message: alert.Message,
			Details: alert.Details,
		}
		if alert.Err != nil {
			data.Error = alert.Err.Error()
		}
		return output.NewFormatter(fw.format).Format(fw.writer, data)
	default:
		return fw.writePlain(alert)
	}
}

func (fw *FormatWriter) writePlain(alert *Alert) error {
	message := alert.String()
	if fw.color {
		message = alert.Level.Color() + message + resetColor
	}
	if _, err := fmt.Fprintln(fw.writer, message); err != nil {
		return err
	}
	for _, detail := range alert.Details {
		if _, err := fmt.Fprintf(fw.writer, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
